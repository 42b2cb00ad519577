package queue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
)

func commitAt(t int64) *object.Commit {
	c := object.NewCommit(identity.Zero)
	c.CommitTime = t
	return c
}

func TestFIFOPreservesInsertionOrder(t *testing.T) {
	q := NewFIFO()
	q.Push(commitAt(1))
	q.Push(commitAt(2))
	q.Push(commitAt(3))

	var order []int64
	for {
		c, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, c.CommitTime)
	}
	require.Equal(t, []int64{1, 2, 3}, order)
}

func TestLIFOPopsMostRecentFirst(t *testing.T) {
	s := NewLIFO()
	s.Push(commitAt(1))
	s.Push(commitAt(2))
	s.Push(commitAt(3))

	var order []int64
	for {
		c, ok := s.Pop()
		if !ok {
			break
		}
		order = append(order, c.CommitTime)
	}
	require.Equal(t, []int64{3, 2, 1}, order)
}

func TestDateRevQueueOrdersNewestFirst(t *testing.T) {
	q := NewDateRevQueue()
	q.Push(commitAt(10))
	q.Push(commitAt(30))
	q.Push(commitAt(20))

	var order []int64
	for {
		c, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, c.CommitTime)
	}
	require.Equal(t, []int64{30, 20, 10}, order)
}

func TestDateRevQueueBreaksTiesByInsertionOrder(t *testing.T) {
	q := NewDateRevQueue()
	first := commitAt(5)
	second := commitAt(5)
	q.Push(first)
	q.Push(second)

	got, _ := q.Pop()
	require.Same(t, first, got)
}

func TestGenerationRevQueuePrefersHigherGeneration(t *testing.T) {
	q := NewGenerationRevQueue()

	low := commitAt(100)
	low.Generation = 1
	high := commitAt(1)
	high.Generation = 5

	q.Push(low)
	q.Push(high)

	got, _ := q.Pop()
	require.Same(t, high, got)
}

func TestGenerationRevQueueTreatsUnknownGenerationAsDeepest(t *testing.T) {
	q := NewGenerationRevQueue()

	known := commitAt(1)
	known.Generation = 3
	unknown := commitAt(1) // Generation left at generationUnknown via NewCommit

	q.Push(known)
	q.Push(unknown)

	got, _ := q.Pop()
	require.Same(t, unknown, got)
}
