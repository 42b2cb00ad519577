package queue

import "github.com/dagwalk/revwalk/object"

// LIFO is a stack: the most recently pushed commit pops first - matching
// the teacher's commitNodeLifo. None of the revwalk or objwalk stages use
// it.
type LIFO struct {
	items []*object.Commit
}

func NewLIFO() *LIFO {
	return &LIFO{}
}

func (s *LIFO) Push(c *object.Commit) {
	s.items = append(s.items, c)
}

func (s *LIFO) Pop() (*object.Commit, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	c := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return c, true
}

func (s *LIFO) Peek() (*object.Commit, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *LIFO) Size() int {
	return len(s.items)
}
