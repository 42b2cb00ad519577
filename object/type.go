package object

// Type identifies which of the four revision-object variants a Pool entry
// holds. It mirrors the teacher's core.ObjectType / common.ObjectType enum.
type Type int8

const (
	// InvalidType marks a stub that has not been parsed or type-hinted yet.
	InvalidType Type = 0
	CommitType  Type = 1
	TreeType    Type = 2
	BlobType    Type = 3
	TagType     Type = 4
)

func (t Type) String() string {
	switch t {
	case CommitType:
		return "commit"
	case TreeType:
		return "tree"
	case BlobType:
		return "blob"
	case TagType:
		return "tag"
	default:
		return "invalid"
	}
}
