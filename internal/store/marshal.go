package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/seqkit/internal/ir"
)

// marshalErrors converts a run's failure messages to canonical JSON TEXT.
func marshalErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	data, err := ir.MarshalCanonical(errs)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(data), nil
}

// unmarshalErrors parses the errors column. Returns an empty slice, not nil.
func unmarshalErrors(data string) ([]string, error) {
	errs := []string{}
	if data == "" {
		return errs, nil
	}
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}

func joinEngines(engines []string) string {
	return strings.Join(engines, ",")
}

func splitEngines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// marshalDetail stores the optional parts of an event as canonical JSON,
// keeping an explicit null element apart from a missing one.
func marshalDetail(ev EventRecord) (string, error) {
	m := map[string]any{}
	if ev.Pos != nil {
		m["pos"] = *ev.Pos
	}
	if ev.Value != nil {
		m["value"] = ev.Value
	}
	if ev.Result != nil {
		m["result"] = ev.Result
	}
	data, err := ir.MarshalCanonical(m)
	if err != nil {
		return "", fmt.Errorf("marshal detail: %w", err)
	}
	return string(data), nil
}

// unmarshalDetail fills the optional parts of ev from the detail column.
func unmarshalDetail(data string, ev *EventRecord) error {
	if data == "" || data == "{}" {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return fmt.Errorf("unmarshal detail: %w", err)
	}

	if p, ok := raw["pos"]; ok {
		var pos int
		if err := json.Unmarshal(p, &pos); err != nil {
			return fmt.Errorf("unmarshal detail pos: %w", err)
		}
		ev.Pos = &pos
	}
	if v, ok := raw["value"]; ok {
		val, err := unmarshalValue(v)
		if err != nil {
			return fmt.Errorf("unmarshal detail value: %w", err)
		}
		ev.Value = val
	}
	if r, ok := raw["result"]; ok {
		val, err := unmarshalValue(r)
		if err != nil {
			return fmt.Errorf("unmarshal detail result: %w", err)
		}
		ev.Result = val
	}
	return nil
}

// unmarshalValue decodes one scalar element. Integers go through
// json.Number so values above 2^53 keep their precision.
func unmarshalValue(data json.RawMessage) (ir.IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch val := v.(type) {
	case nil:
		return ir.IRNull{}, nil
	case string:
		return ir.IRString(val), nil
	case bool:
		return ir.IRBool(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s", val)
		}
		return ir.IRInt(n), nil
	default:
		return nil, fmt.Errorf("unsupported element %T", v)
	}
}
