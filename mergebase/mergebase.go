// Package mergebase implements the is_merged_into and merged_into
// queries of §4.6, built directly on revwalk.RevWalk rather than on the
// reachability package's pre-built checkers, since merged_into needs a
// generation-number cutoff the general-purpose reachability queries do
// not; is_merged_into walks without one.
package mergebase

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/object"
	"github.com/dagwalk/revwalk/revwalk"
)

// IsMergedInto reports whether base is in tip's ancestry (or equals
// tip): it marks base as the sole start and tip as UNINTERESTING, so the
// walker emits nothing iff base's entire interesting closure is already
// covered by tip's ancestry. is_merged_into(x, x) is true because
// MarkUninteresting and MarkStart both touch the same pool entry.
func IsMergedInto(newWalker func() *revwalk.RevWalk, base, tip identity.Identifier) (bool, error) {
	w := newWalker()
	if err := w.MarkStart(base); err != nil {
		return false, err
	}
	if err := w.MarkUninteresting(tip); err != nil {
		return false, err
	}

	c, err := w.Next()
	if err != nil {
		return false, err
	}
	return c == nil, nil
}

// Strategy controls how MergedInto evaluates multiple haystacks.
type Strategy int

const (
	// EvaluateAll computes every haystack's result before returning.
	EvaluateAll Strategy = iota
	// FirstFound returns as soon as any haystack reaches commit.
	FirstFound
	// FirstNotFound returns as soon as any haystack fails to reach commit.
	FirstNotFound
)

// MergedInto reports, per unique haystack commit, whether commit is
// reachable from it - i.e. whether commit is merged into that haystack.
// Each haystack is walked independently (this implementation creates a
// fresh walker per haystack rather than reusing one via a save/restore
// discipline over a shared walker; building a RevWalk is cheap, and this
// sidesteps needing a generic filter/start-set snapshot mechanism for an
// operation that is read-only end to end).
func MergedInto(newWalker func() *revwalk.RevWalk, commit identity.Identifier, haystacks []identity.Identifier, strategy Strategy) (map[identity.Identifier]bool, error) {
	results := make(map[identity.Identifier]bool)
	seen := make(map[identity.Identifier]bool)

	for _, h := range haystacks {
		if seen[h] {
			continue
		}
		seen[h] = true

		reached, err := reachedFrom(newWalker, commit, h)
		if err != nil {
			return nil, err
		}
		results[h] = reached

		switch strategy {
		case FirstFound:
			if reached {
				return results, nil
			}
		case FirstNotFound:
			if !reached {
				return results, nil
			}
		}
	}

	return results, nil
}

// reachedFrom walks from h toward its ancestry, pruning any commit whose
// generation is known to be strictly below commit's (it cannot be commit
// and nothing further down its own ancestry can be either), stopping as
// soon as commit itself is emitted.
func reachedFrom(newWalker func() *revwalk.RevWalk, commit, h identity.Identifier) (bool, error) {
	w := newWalker()

	target, err := w.Pool().ParseCommit(commit)
	if err != nil {
		return false, err
	}

	filter := func(c *object.Commit) revwalk.FilterDecision {
		if c.GenerationKnown() && target.GenerationKnown() && c.Generation < target.Generation {
			return revwalk.Exclude
		}
		return revwalk.Include
	}
	if err := w.SetRevFilter(filter); err != nil {
		return false, err
	}
	if err := w.MarkStart(h); err != nil {
		return false, err
	}

	for {
		c, err := w.Next()
		if err != nil {
			return false, err
		}
		if c == nil {
			return false, nil
		}
		if c.ID == commit {
			return true, nil
		}
	}
}
