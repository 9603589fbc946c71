package natsort

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func pad0(n int) string {
	return strings.Repeat("0", n)
}

func TestKeyScenarios(t *testing.T) {
	for _, test := range []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"empty", "", 75, ""},
		{"no digits", "alpha", 75, "alpha"},
		{"image", "img12.png", 75, "img" + pad0(73) + "12" + ".png"},
		{"track10", "track10", 3, "track010"},
		{"track9", "track9", 3, "track009"},
		{"only digits", "42", 4, "0042"},
		{"leading run", "7up", 2, "07up"},
		{"several runs", "a1b22c333", 3, "a001b022c333"},
		{"run equals width", "x123y", 3, "x123y"},
		{"zero", "0", 3, "000"},
		{"leading zeros kept", "007", 5, "00007"},
		{"sign and dot are literals", "-1.5", 2, "-01.05"},
		{"non ascii digits are literals", "٣x1", 2, "٣x01"},
		// after a full run of 5 the next digit "0" is a literal and the
		// remaining digits start a new run, so this is not "v10000000000"
		{"run longer than width", "v1000000", 5, "v" + "10000" + "0" + "00000"},
		{"run longer than width at end", "123456", 5, "12345" + "6"},
		{"run longer than width then text", "1234567x", 3, "123" + "4" + "567" + "x"},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := Key(test.in, test.width); got != test.want {
				t.Errorf("Key(%q, %d) = %q, want %q", test.in, test.width, got, test.want)
			}
		})
	}
}

func TestKeyDefaultWidth(t *testing.T) {
	in := "file7-rev12.tar"
	want := Key(in, DefaultWidth)
	for _, width := range []int{0, -1, -75, MaxWidth + 1, 1 << 20} {
		if got := Key(in, width); got != want {
			t.Errorf("Key(%q, %d) = %q, want the width %d key", in, width, got, DefaultWidth)
		}
	}
	if got := Key("1", MaxWidth); got != pad0(MaxWidth-1)+"1" {
		t.Errorf("MaxWidth is a valid width, got key of length %d", len(got))
	}
}

func TestNormalizeWidth(t *testing.T) {
	for in, want := range map[int]int{
		-1:  DefaultWidth,
		0:   DefaultWidth,
		1:   1,
		75:  75,
		150: 150,
		151: DefaultWidth,
	} {
		if got := NormalizeWidth(in); got != want {
			t.Errorf("NormalizeWidth(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalizePadding(t *testing.T) {
	const width = 20
	digits := "98765432109876543210"
	for n := 1; n <= width; n++ {
		run := digits[:n]
		got := string(normalize(nil, run, width))
		if len(got) != width {
			t.Fatalf("normalize(%q) has length %d, want %d", run, len(got), width)
		}
		if want := pad0(width-n) + run; got != want {
			t.Errorf("normalize(%q) = %q, want %q", run, got, want)
		}
	}
}

func TestNormalizeAppends(t *testing.T) {
	got := string(normalize([]byte("abc"), "12", 4))
	if got != "abc0012" {
		t.Errorf("normalize appended %q, want %q", got, "abc0012")
	}
}

func TestNormalizePanicsOnLongRun(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("normalize accepted a run longer than width")
		}
	}()
	normalize(nil, "1234", 3)
}

func TestKeyOrderPreservation(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const width = 19
	for i := 0; i < 10000; i++ {
		a := r.Int63n(1 << uint(r.Intn(62)+1))
		b := r.Int63n(1 << uint(r.Intn(62)+1))
		ka := Key("n"+strconv.FormatInt(a, 10), width)
		kb := Key("n"+strconv.FormatInt(b, 10), width)
		if (a < b) != (ka < kb) || (a == b) != (ka == kb) {
			t.Fatalf("order of %d and %d not preserved: %q %q", a, b, ka, kb)
		}
	}
}

func TestKeyLiteralPassThrough(t *testing.T) {
	dropDigits := func(s string) string {
		return strings.Map(func(r rune) rune {
			if '0' <= r && r <= '9' {
				return -1
			}
			return r
		}, s)
	}
	for _, in := range []string{"", "abc", "a1b2c3", "10-20.30", "résumé 2 final 10", "\x00\xff9"} {
		if got, want := dropDigits(Key(in, 8)), dropDigits(in); got != want {
			t.Errorf("literals of %q changed: %q, want %q", in, got, want)
		}
	}
}

func TestKeyIdempotent(t *testing.T) {
	for _, in := range []string{"", "alpha", "img12.png", "a1b22c333", "9 lives, 10 tries", "000"} {
		for _, width := range []int{3, 10, 75} {
			once := Key(in, width)
			if twice := Key(once, width); twice != once {
				t.Errorf("Key(Key(%q, %d)) = %q, want %q", in, width, twice, once)
			}
		}
	}
}

func TestKeyLength(t *testing.T) {
	in := "ab12cd3e456"
	width := 6
	// 5 literals plus 3 runs of width bytes
	if got := len(Key(in, width)); got != 5+3*width {
		t.Errorf("len(Key(%q, %d)) = %d, want %d", in, width, got, 5+3*width)
	}
}

func TestScanStats(t *testing.T) {
	for _, test := range []struct {
		in            string
		width         int
		runs          int
		overflows     int
		firstOverflow int
	}{
		{"", 3, 0, 0, -1},
		{"abc", 3, 0, 0, -1},
		{"a1b22", 3, 2, 0, -1},
		{"x1234", 3, 1, 1, 1},
		{"12 34567 8901234", 3, 5, 2, 3},
	} {
		_, st := scan(nil, test.in, test.width, 0)
		if st.Runs != test.runs || st.Overflows != test.overflows || st.FirstOverflow != test.firstOverflow {
			t.Errorf("scan(%q, %d) stats = %+v, want runs %d overflows %d first %d",
				test.in, test.width, st, test.runs, test.overflows, test.firstOverflow)
		}
		if st.Truncated || st.TruncatedAt != -1 {
			t.Errorf("scan(%q) without limit reported truncation: %+v", test.in, st)
		}
	}
}

func TestScanLimitIsPrefix(t *testing.T) {
	for _, in := range []string{"abc", "img12.png", "12", "a1234567b", "1-2-3"} {
		const width = 4
		full := Key(in, width)
		for limit := 1; limit <= len(full)+2; limit++ {
			t.Run(fmt.Sprintf("%s/%d", in, limit), func(t *testing.T) {
				out, st := scan(make([]byte, 0, limit), in, width, limit)
				want := full
				if limit < len(full) {
					want = full[:limit]
				}
				if string(out) != want {
					t.Errorf("scan limited to %d = %q, want %q", limit, out, want)
				}
				if st.Truncated != (limit < len(full)) {
					t.Errorf("Truncated = %v with limit %d and full length %d", st.Truncated, limit, len(full))
				}
				if cap(out) != limit {
					t.Errorf("buffer grew from %d to %d", limit, cap(out))
				}
			})
		}
	}
}

func TestScanLimitAfterPrefix(t *testing.T) {
	// the limit applies to the appended key, not to dst
	out, st := scan([]byte("prefix:"), "a12", 3, 2)
	if string(out) != "prefix:a0" || !st.Truncated || st.TruncatedAt != 1 {
		t.Errorf("scan = %q %+v", out, st)
	}
}

func TestLegacyMaxLen(t *testing.T) {
	in := strings.Repeat("x1", 200) // 200 runs, 200*76 bytes unbounded
	key, err := New(&Config{MaxLen: LegacyMaxLen}).Key(in)
	if len(key) != LegacyMaxLen {
		t.Fatalf("key length %d, want %d", len(key), LegacyMaxLen)
	}
	if err == nil {
		t.Fatal("expected a truncation error")
	}
	if want := Key(in, DefaultWidth)[:LegacyMaxLen]; key != want {
		t.Error("truncated key is not a prefix of the full key")
	}
}

func TestSizeHint(t *testing.T) {
	for _, in := range []string{"", "abc", "a1b22c333", "1", "12 34"} {
		if got, want := sizeHint(in, 5, 0), len(Key(in, 5)); got != want {
			t.Errorf("sizeHint(%q) = %d, key length %d", in, got, want)
		}
	}
	if got := sizeHint("1 2 3", 10, 7); got != 7 {
		t.Errorf("sizeHint capped = %d, want 7", got)
	}
}

func BenchmarkKey(b *testing.B) {
	in := "photos/2019/IMG_20190704_153012-edit-3.jpeg"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Key(in, DefaultWidth)
	}
}

func BenchmarkAppendKey(b *testing.B) {
	in := "photos/2019/IMG_20190704_153012-edit-3.jpeg"
	enc := New(nil)
	buf := make([]byte, 0, 512)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf, _ = enc.AppendKey(buf[:0], in)
	}
}
