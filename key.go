// Package natsort computes natural sort keys: copies of a string in which every
// run of ASCII digits is left padded with zeros to a fixed width, so that
// comparing keys byte by byte orders embedded numbers by value.
//
//	Key("img12.png", 5) == "img00012.png"
//
// The package also provides natural ordering helpers built on those keys and
// an external sorter for string streams that do not fit in memory.
package natsort

import "fmt"

const (
	// DefaultWidth is the digit width used when none, or an invalid one, is given.
	DefaultWidth = 75
	// MaxWidth is the largest accepted digit width.
	MaxWidth = 150
	// LegacyMaxLen is the output ceiling of the PostgreSQL natural_sort_order function.
	// Set Config.MaxLen to it to reproduce that truncation.
	LegacyMaxLen = 10000
)

// NormalizeWidth returns width if it is in (0, MaxWidth], and DefaultWidth otherwise.
func NormalizeWidth(width int) int {
	if width <= 0 || width > MaxWidth {
		return DefaultWidth
	}
	return width
}

// Key returns the natural sort key of s, padding each digit run to width.
// An invalid width is replaced by DefaultWidth. Digit runs longer than the
// width are split at the width boundary (see Split), and the key is never
// truncated.
func Key(s string, width int) string {
	width = NormalizeWidth(width)
	out, _ := scan(make([]byte, 0, sizeHint(s, width, 0)), s, width, 0)
	return string(out)
}

// scanState is the state of the key scanner.
type scanState int

const (
	outside scanState = iota // no digit run in progress
	inRun                    // accumulating a digit run
)

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scanner appends a key to out. When limit > 0 the key part of out (the bytes
// after base) never grows beyond limit bytes.
type scanner struct {
	out   []byte
	base  int
	limit int
	width int
	stats Stats
	full  bool
}

func (sc *scanner) room() int {
	if sc.limit <= 0 {
		return -1
	}
	return sc.limit - (len(sc.out) - sc.base)
}

func (sc *scanner) truncate(at int) {
	sc.full = true
	sc.stats.Truncated = true
	sc.stats.TruncatedAt = at
}

// literal copies c, which came from input offset at.
func (sc *scanner) literal(c byte, at int) {
	if sc.room() == 0 {
		sc.truncate(at)
		return
	}
	sc.out = append(sc.out, c)
}

// flush emits the padded form of run, which started at input offset at.
func (sc *scanner) flush(run string, at int) {
	sc.stats.Runs++
	room := sc.room()
	if room < 0 || room >= sc.width {
		sc.out = normalize(sc.out, run, sc.width)
		return
	}
	// only a prefix of the padded run fits
	zeros := sc.width - len(run)
	for i := 0; i < room; i++ {
		if i < zeros {
			sc.out = append(sc.out, '0')
		} else {
			sc.out = append(sc.out, run[i-zeros])
		}
	}
	sc.truncate(at)
}

// scan appends the key of s to dst. width must already be normalized.
// limit <= 0 means the key is unbounded.
func scan(dst []byte, s string, width, limit int) ([]byte, Stats) {
	sc := scanner{
		out:   dst,
		base:  len(dst),
		limit: limit,
		width: width,
		stats: Stats{FirstOverflow: -1, TruncatedAt: -1},
	}
	state := outside
	start := 0
	for i := 0; i < len(s) && !sc.full; i++ {
		c := s[i]
		switch state {
		case outside:
			if isDigit(c) {
				start = i
				state = inRun
				continue
			}
			sc.literal(c, i)
		case inRun:
			if isDigit(c) && i-start < width {
				continue
			}
			sc.flush(s[start:i], start)
			if isDigit(c) {
				// the run is longer than width, c goes out as a literal
				sc.stats.Overflows++
				if sc.stats.FirstOverflow < 0 {
					sc.stats.FirstOverflow = start
				}
			}
			state = outside
			if !sc.full {
				sc.literal(c, i)
			}
		}
	}
	if state == inRun && !sc.full {
		sc.flush(s[start:], start)
	}
	return sc.out, sc.stats
}

// normalize appends run left padded with '0' to exactly width bytes.
func normalize(dst []byte, run string, width int) []byte {
	n := len(run)
	if n == 0 || n > width {
		panic(fmt.Sprintf("natsort: digit run of length %d does not fit width %d", n, width))
	}
	for i := n; i < width; i++ {
		dst = append(dst, '0')
	}
	return append(dst, run...)
}

// sizeHint returns the length of the key of s when no digit run exceeds
// width, capped at limit when limit > 0.
func sizeHint(s string, width, limit int) int {
	n := len(s)
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		k := runLength(s, i)
		if k < width {
			n += width - k
		}
		i += k
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// runLength returns the length of the digit run starting at s[at].
func runLength(s string, at int) int {
	i := at
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i - at
}
