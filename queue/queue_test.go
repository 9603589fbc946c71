package queue_test

import (
	"cmp"
	"strings"
	"testing"

	"github.com/lanrat/natsort/queue"
)

func TestInit0(t *testing.T) {
	q := queue.NewPriorityQueue(cmp.Compare[int])
	for i := 20; i > 0; i-- {
		q.Push(0) // all elements are the same
	}

	if l := q.Len(); l != 20 {
		t.Fatalf("queue len is %d, expected %d", l, 20)
	}

	for i := 1; q.Len() > 0; i++ {
		x := q.Peek()
		y := q.Pop()
		if x != y {
			t.Fatalf("q.Peek() and q.Pop() returned different values %d %d", x, y)
		}
		if x != 0 {
			t.Errorf("%d.th pop got %d; want %d", i, x, 0)
		}
	}
}

func TestPushPop(t *testing.T) {
	q := queue.NewPriorityQueue(cmp.Compare[int])
	if l := q.Len(); l != 0 {
		t.Fatalf("queue len is %d, expected %d", l, 0)
	}

	for i := 20; i > 10; i-- {
		q.Push(i)
	}
	for i := 10; i > 0; i-- {
		q.Push(i)
	}
	if l := q.Len(); l != 20 {
		t.Fatalf("queue len is %d, expected %d", l, 20)
	}

	for i := 1; q.Len() > 0; i++ {
		x := q.Peek()
		y := q.Pop()
		if x != y {
			t.Fatalf("q.Peek() and q.Pop() returned different values %d %d", x, y)
		}
		if i < 20 {
			q.Push(20 + i)
		}
		if x != i {
			t.Errorf("%d.th pop got %d; want %d", i, x, i)
		}
	}
}

type source struct {
	next string
	rest []string
}

// TestPeekUpdate merges sorted runs the way the sorter does
func TestPeekUpdate(t *testing.T) {
	q := queue.NewPriorityQueue(func(a, b *source) int {
		return strings.Compare(a.next, b.next)
	})
	runs := [][]string{{"a", "d", "g"}, {"b", "e"}, {"c", "f", "h", "i"}}
	for _, r := range runs {
		q.Push(&source{next: r[0], rest: r[1:]})
	}

	var got []string
	for q.Len() > 0 {
		s := q.Peek()
		got = append(got, s.next)
		if len(s.rest) > 0 {
			s.next, s.rest = s.rest[0], s.rest[1:]
			q.PeekUpdate()
		} else {
			q.Pop()
		}
	}
	if want := "abcdefghi"; strings.Join(got, "") != want {
		t.Fatalf("merged %q, want %q", strings.Join(got, ""), want)
	}
}
