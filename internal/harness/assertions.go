package harness

import (
	"fmt"
	"strconv"

	"github.com/roach88/seqkit/internal/seq"
)

// AssertionError is returned when an assertion does not hold for an engine.
type AssertionError struct {
	Type     string // assertion type
	Engine   string // engine the assertion failed on
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %s failed on %s: expected %s, got %s",
		e.Type, e.Engine, e.Expected, e.Actual)
}

// evaluateAssertions checks every assertion against every engine's final
// container and returns the failures in assertion order.
func evaluateAssertions(assertions []Assertion, engines []*container) []error {
	var errs []error
	for _, a := range assertions {
		switch a.Type {
		case AssertEnginesAgree:
			errs = append(errs, assertEnginesAgree(engines)...)
		default:
			for _, c := range engines {
				if err := assertFinal(a, c); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	return errs
}

func assertFinal(a Assertion, c *container) error {
	switch a.Type {
	case AssertRender:
		if got := c.list.String(); got != a.Expect {
			return &AssertionError{Type: a.Type, Engine: c.name, Expected: a.Expect, Actual: got}
		}
	case AssertSize:
		if got := c.list.Len(); got != *a.Count {
			return &AssertionError{
				Type:     a.Type,
				Engine:   c.name,
				Expected: strconv.Itoa(*a.Count),
				Actual:   strconv.Itoa(got),
			}
		}
	case AssertHash:
		if got := int64(c.list.HashCode()); got != *a.Hash {
			return &AssertionError{
				Type:     a.Type,
				Engine:   c.name,
				Expected: strconv.FormatInt(*a.Hash, 10),
				Actual:   strconv.FormatInt(got, 10),
			}
		}
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
	return nil
}

// assertEnginesAgree compares every engine with the first one by
// element-wise equality and by hash.
func assertEnginesAgree(engines []*container) []error {
	if len(engines) < 2 {
		return nil
	}
	first := engines[0]
	var errs []error
	for _, c := range engines[1:] {
		if !seq.Equal(first.list, c.list) {
			errs = append(errs, &AssertionError{
				Type:     AssertEnginesAgree,
				Engine:   c.name,
				Expected: fmt.Sprintf("%s (as %s)", first.list, first.name),
				Actual:   c.list.String(),
			})
			continue
		}
		if first.list.HashCode() != c.list.HashCode() {
			errs = append(errs, &AssertionError{
				Type:     AssertEnginesAgree,
				Engine:   c.name,
				Expected: fmt.Sprintf("hash %d (as %s)", first.list.HashCode(), first.name),
				Actual:   fmt.Sprintf("hash %d", c.list.HashCode()),
			})
		}
	}
	return errs
}
