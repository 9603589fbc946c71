package natsort

import (
	"errors"
	"slices"
	"strings"
)

// Encoder computes natural sort keys with a fixed configuration.
// It is immutable and safe for concurrent use.
type Encoder struct {
	width    int
	maxLen   int
	overflow OverflowPolicy
	workers  int
}

// New returns an Encoder for config. A nil config, or unset fields, use the
// values of DefaultConfig.
func New(config *Config) *Encoder {
	c := mergeConfig(config)
	return &Encoder{
		width:    c.Width,
		maxLen:   c.MaxLen,
		overflow: c.Overflow,
		workers:  c.NumWorkers,
	}
}

// Width returns the digit width every run is padded to.
func (e *Encoder) Width() int {
	return e.width
}

// AppendKey appends the key of s to dst and returns the extended buffer.
// The overflow policy is not applied; inspect the returned Stats instead.
func (e *Encoder) AppendKey(dst []byte, s string) ([]byte, Stats) {
	return scan(slices.Grow(dst, sizeHint(s, e.width, e.maxLen)), s, e.width, e.maxLen)
}

// Key returns the natural sort key of s.
//
// Under Reject an oversized digit run yields a *RunOverflowError and an empty
// key. Under Warn the key is returned together with that error. A key cut by
// MaxLen is returned together with a *TruncatedError. Errors that come with a
// key are joined, so use errors.As and errors.Is to inspect them.
func (e *Encoder) Key(s string) (string, error) {
	out, st := e.AppendKey(nil, s)
	var errs []error
	if st.Overflows > 0 && e.overflow != Split {
		overflow := &RunOverflowError{
			Offset: st.FirstOverflow,
			Digits: runLength(s, st.FirstOverflow),
			Width:  e.width,
		}
		if e.overflow == Reject {
			return "", overflow
		}
		errs = append(errs, overflow)
	}
	if st.Truncated {
		errs = append(errs, &TruncatedError{MaxLen: e.maxLen, Offset: st.TruncatedAt})
	}
	return string(out), errors.Join(errs...)
}

// Compare orders a and b by their keys. Values with equal keys, such as "a01"
// and "a1", are ordered bytewise so the result is a total order.
func (e *Encoder) Compare(a, b string) int {
	ka, _ := e.AppendKey(nil, a)
	kb, _ := e.AppendKey(nil, b)
	return compareRecords(record{key: string(ka), value: a}, record{key: string(kb), value: b})
}

// Sort sorts values in natural order, computing each key once.
// It fails, leaving values untouched, only under Reject.
func (e *Encoder) Sort(values []string) error {
	recs := make([]record, len(values))
	for i, v := range values {
		r, err := e.record(v)
		if err != nil {
			return err
		}
		recs[i] = r
	}
	slices.SortFunc(recs, compareRecords)
	for i, r := range recs {
		values[i] = r.value
	}
	return nil
}

// record is a value paired with its key.
type record struct {
	key   string
	value string
}

// record keys v. Truncated keys are kept: ties are broken on the value.
func (e *Encoder) record(v string) (record, error) {
	k, err := e.Key(v)
	var overflow *RunOverflowError
	if e.overflow == Reject && errors.As(err, &overflow) {
		return record{}, &RecordError{Value: v, Err: err}
	}
	return record{key: k, value: v}, nil
}

func compareRecords(a, b record) int {
	if c := strings.Compare(a.key, b.key); c != 0 {
		return c
	}
	return strings.Compare(a.value, b.value)
}
