package object

import "github.com/dagwalk/revwalk/identity"

// Node is the common interface every revision-object variant satisfies,
// letting the Pool hold commits, trees, blobs, and tags in one table
// while filters and generators manipulate flags without caring which
// variant they hold - the role the teacher's CommitNode interface plays
// for commits alone, generalized to every object type the data model
// names (Tree/Blob/Tag carry no extra behavior beyond this).
type Node interface {
	Identifier() identity.Identifier
	Kind() Type
	Has(Flag) bool
	HasAny(Flag) bool
	Set(Flag)
	Clear(Flag)
}
