package revwalk

// SortStrategy is the enumerated set of ordering/behavior toggles
// accepted by RevWalk.SetSort, matching §6's {NONE, COMMIT_TIME_DESC,
// TOPO, TOPO_KEEP_BRANCH_TOGETHER, REVERSE, BOUNDARY} set. They are
// independent bits: a caller may combine TOPO with BOUNDARY, or REVERSE
// with COMMIT_TIME_DESC.
type SortStrategy uint8

const (
	SortNone SortStrategy = 0

	// SortCommitTimeDesc orders the pending frontier (and, absent TOPO,
	// the final output) by descending commit time.
	SortCommitTimeDesc SortStrategy = 1 << 0

	// SortTopo enables the topological-ordering generator: a commit is
	// never emitted before any of its interesting descendants.
	SortTopo SortStrategy = 1 << 1

	// SortTopoKeepBranchTogether strengthens SortTopo so that a branch's
	// commits are not interleaved with an unrelated branch's.
	SortTopoKeepBranchTogether SortStrategy = 1 << 2

	// SortReverse reverses the final emission order after every other
	// stage has run.
	SortReverse SortStrategy = 1 << 3

	// SortBoundary enables the boundary generator: withheld UNINTERESTING
	// parents of interesting commits are emitted last, as the visible
	// history's boundary.
	SortBoundary SortStrategy = 1 << 4

	// SortAuthorTimeDesc orders the pending frontier by descending
	// AuthorTime instead of CommitTime, a supplemented second date-order
	// variant (§9's commit/author time distinction). Combining this with
	// SortCommitTimeDesc is meaningless; SortAuthorTimeDesc wins if both
	// are set.
	SortAuthorTimeDesc SortStrategy = 1 << 5
)

func (s SortStrategy) has(bit SortStrategy) bool { return s&bit != 0 }
