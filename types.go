package natsort

import (
	"fmt"
	"strings"
)

// OverflowPolicy decides what happens to a digit run longer than the key width.
type OverflowPolicy int

const (
	// Split normalizes the first width digits of an oversized run as a complete
	// run and emits the next digit as a literal; scanning then resumes, so any
	// digits after it start a new run. No error is reported. The resulting key
	// does not order the value correctly.
	Split OverflowPolicy = iota
	// Warn builds the same key as Split but also returns a *RunOverflowError
	// next to it.
	Warn
	// Reject returns a *RunOverflowError and no key.
	Reject
)

func (p OverflowPolicy) String() string {
	switch p {
	case Split:
		return "split"
	case Warn:
		return "warn"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses the name returned by OverflowPolicy.String.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(s) {
	case "split", "":
		return Split, nil
	case "warn":
		return Warn, nil
	case "reject":
		return Reject, nil
	}
	return Split, &ConfigError{Field: "Overflow", Value: s, Reason: "expected split, warn or reject"}
}

// Stats describes a single key computation.
type Stats struct {
	// Runs is the number of digit runs that were padded.
	Runs int
	// Overflows counts digit runs that were longer than the width and got split.
	Overflows int
	// FirstOverflow is the input offset of the first oversized run, or -1.
	FirstOverflow int
	// Truncated is set when the key hit the length limit.
	Truncated bool
	// TruncatedAt is the input offset of the first byte that did not fully fit, or -1.
	TruncatedAt int
}
