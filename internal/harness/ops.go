package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/seqkit/internal/ir"
	"github.com/roach88/seqkit/internal/seq"
)

// OpSpec describes the arguments an operation takes and which engines
// support it.
type OpSpec struct {
	NeedsPos   bool
	NeedsValue bool
	LinkedOnly bool
}

// Ops is the table of operations a scenario step may name.
var Ops = map[string]OpSpec{
	// List contract, both engines.
	"append": {NeedsValue: true},
	"insert": {NeedsPos: true, NeedsValue: true},
	"get":    {NeedsPos: true},
	"set":    {NeedsPos: true, NeedsValue: true},
	"remove": {NeedsPos: true},
	"clear":  {},
	"size":   {},
	"trim":   {},

	// Linked engine end operations.
	"push_front": {NeedsValue: true, LinkedOnly: true},
	"push_back":  {NeedsValue: true, LinkedOnly: true},
	"peek_first": {LinkedOnly: true},
	"peek_last":  {LinkedOnly: true},
	"pop_front":  {LinkedOnly: true},
	"pop_last":   {LinkedOnly: true},

	// Queue contract.
	"enqueue": {NeedsValue: true, LinkedOnly: true},
	"dequeue": {LinkedOnly: true},
	"peek":    {LinkedOnly: true},

	// Deque contract.
	"push":        {NeedsValue: true, LinkedOnly: true},
	"pop":         {LinkedOnly: true},
	"remove_last": {LinkedOnly: true},
	"get_last":    {LinkedOnly: true},
}

// Outcome values recorded on trace events besides error codes.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
)

// container is one engine under test. deque is nil for the array engine.
type container struct {
	name  string
	list  seq.List[ir.IRValue]
	array *seq.ArrayList[ir.IRValue]
	deque *seq.LinkedList[ir.IRValue]
}

func newContainer(name string) (*container, error) {
	switch name {
	case EngineArray:
		a := seq.NewArrayList[ir.IRValue]()
		return &container{name: name, list: a, array: a}, nil
	case EngineLinked:
		l := seq.NewLinkedList[ir.IRValue]()
		return &container{name: name, list: l, deque: l}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}

// stepOutcome is what a single operation produced.
type stepOutcome struct {
	outcome string
	result  ir.IRValue
}

// apply runs one operation against c. Range errors become outcomes; any
// other error means the op could not be dispatched at all.
func (c *container) apply(op string, pos int, v ir.IRValue) (stepOutcome, error) {
	switch op {
	case "append":
		c.list.Append(v)
		return ok(nil), nil
	case "insert":
		return fromErr(nil, c.list.InsertAt(pos, v))
	case "get":
		return fromErr(c.list.Get(pos))
	case "set":
		return fromErr(c.list.Set(pos, v))
	case "remove":
		return fromErr(c.list.RemoveAt(pos))
	case "clear":
		c.list.Clear()
		return ok(nil), nil
	case "size":
		return ok(ir.IRInt(c.list.Len())), nil
	case "trim":
		if c.array != nil {
			c.array.Trim()
		}
		return ok(nil), nil
	}

	if c.deque == nil {
		return stepOutcome{}, fmt.Errorf("op %q is not supported by the %s engine", op, c.name)
	}

	switch op {
	case "push_front":
		c.deque.PushFront(v)
		return ok(nil), nil
	case "push_back":
		c.deque.PushBack(v)
		return ok(nil), nil
	case "enqueue":
		c.deque.Enqueue(v)
		return ok(nil), nil
	case "push":
		c.deque.Push(v)
		return ok(nil), nil
	case "peek_first":
		return fromOpt(c.deque.PeekFirst())
	case "peek_last":
		return fromOpt(c.deque.PeekLast())
	case "pop_front":
		return fromOpt(c.deque.PopFront())
	case "pop_last":
		return fromOpt(c.deque.PopLast())
	case "dequeue":
		return fromOpt(c.deque.Dequeue())
	case "peek":
		return fromOpt(c.deque.Peek())
	case "pop":
		return fromOpt(c.deque.Pop())
	case "remove_last":
		return fromOpt(c.deque.RemoveLast())
	case "get_last":
		return fromOpt(c.deque.GetLast())
	}

	return stepOutcome{}, fmt.Errorf("unknown op %q", op)
}

func ok(v ir.IRValue) stepOutcome {
	return stepOutcome{outcome: OutcomeOK, result: v}
}

func fromErr(v ir.IRValue, err error) (stepOutcome, error) {
	if err == nil {
		return ok(v), nil
	}
	var rerr *seq.RangeError
	if errors.As(err, &rerr) {
		return stepOutcome{outcome: string(rerr.Code())}, nil
	}
	return stepOutcome{}, err
}

func fromOpt(v ir.IRValue, present bool) (stepOutcome, error) {
	if !present {
		return stepOutcome{outcome: OutcomeAbsent}, nil
	}
	return ok(v), nil
}
