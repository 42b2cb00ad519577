package objfmt

// FileMode is the recognized family a tree entry's octal mode belongs to.
// Modeled after the teacher's plumbing/filemode package, whose New()
// recognizes exactly these families from a tree entry's octal digits.
type FileMode uint32

const (
	Empty      FileMode = 0
	Dir        FileMode = 0o40000
	Regular    FileMode = 0o100644
	Deprecated FileMode = 0o100664
	Executable FileMode = 0o100755
	Symlink    FileMode = 0o120000
	Submodule  FileMode = 0o160000
)

// IsDir reports whether mode names a tree (directory) entry, the only
// family whose name-ordering sentinel is '/' rather than NUL.
func (m FileMode) IsDir() bool {
	return m&0o170000 == Dir
}

// recognizedModes are the exact octal values a canonical tree entry may
// carry. Anything else - including a value whose digits are individually
// valid octal but whose combination git never emits - is corrupt.
var recognizedModes = map[FileMode]bool{
	Dir:        true,
	Regular:    true,
	Deprecated: true,
	Executable: true,
	Symlink:    true,
	Submodule:  true,
}

// recognized reports whether mode belongs to a family a canonical tree
// entry may carry.
func recognized(mode uint32) bool {
	return recognizedModes[FileMode(mode)]
}
