package natsort

import "slices"

// Compare returns an integer comparing a and b in natural order using
// DefaultWidth keys: negative if a sorts first, zero only if a == b, positive
// otherwise. It can be passed to slices.SortFunc.
func Compare(a, b string) int {
	ka := Key(a, DefaultWidth)
	kb := Key(b, DefaultWidth)
	return compareRecords(record{key: ka, value: a}, record{key: kb, value: b})
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts values in natural order using DefaultWidth keys.
func Sort(values []string) {
	recs := make([]record, len(values))
	for i, v := range values {
		recs[i] = record{key: Key(v, DefaultWidth), value: v}
	}
	slices.SortFunc(recs, compareRecords)
	for i, r := range recs {
		values[i] = r.value
	}
}

// IsSorted reports whether values are in natural order.
func IsSorted(values []string) bool {
	for i := 1; i < len(values); i++ {
		if Less(values[i], values[i-1]) {
			return false
		}
	}
	return true
}
