package objfmt

import (
	"bytes"

	"github.com/dagwalk/revwalk/identity"
)

// TreeEntry is one decoded, order-and-uniqueness-validated tree entry.
type TreeEntry struct {
	Mode FileMode
	Name string
	ID   identity.Identifier
}

// ValidateTree parses raw as a canonical tree object: a repetition of
// (octal mode, SP, NUL-terminated name, 20 raw id bytes) entries, strictly
// sorted by the tree-ordering relation and free of duplicate names. Any
// deviation fails with a CorruptObjectError.
//
// The tree ordering relation compares names byte-wise; at the point of
// divergence a directory entry's trailing byte is treated as '/' (0x2F)
// rather than the implicit NUL terminator, so "foo" sorts before "foo/"
// (i.e. before a directory also named "foo"). This validator scans
// forward once, tracking the previous entry's name and mode, and for each
// new entry additionally scans ahead to catch a same-named entry from a
// different mode family: the sort key above separates "foo" (file) from
// "foo" (dir) by their differing sentinel byte, so two entries can be
// adjacent-and-ordered under the sort key while still sharing a literal
// name, which the ordering check alone would not catch.
func ValidateTree(raw []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	buf := raw

	for len(buf) > 0 {
		entry, rest, err := parseTreeEntry(buf)
		if err != nil {
			return nil, err
		}

		if len(entries) > 0 {
			prev := entries[len(entries)-1]
			if compareTreeNames(prev.Name, prev.Mode.IsDir(), entry.Name, entry.Mode.IsDir()) >= 0 {
				return nil, corrupt("tree entries are not strictly ordered: " + prev.Name + " >= " + entry.Name)
			}
		}

		entries = append(entries, entry)
		buf = rest
	}

	for i, e := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Name != e.Name {
				// Ordering guarantees entries[j].Name only ever grows
				// "more different" from e.Name as j increases once the
				// bare names themselves (ignoring mode sentinel) stop
				// matching; nothing further on can collide either.
				if !bytes.HasPrefix([]byte(entries[j].Name), []byte(e.Name)) &&
					!bytes.HasPrefix([]byte(e.Name), []byte(entries[j].Name)) {
					break
				}
				continue
			}
			return nil, corrupt("duplicate tree entry name: " + e.Name)
		}
	}

	return entries, nil
}

func parseTreeEntry(buf []byte) (TreeEntry, []byte, error) {
	var entry TreeEntry

	modeTok, rest, ok := scanToken(buf)
	if !ok {
		return entry, nil, corrupt("missing mode/name separator")
	}
	if !isUnsignedOctal(modeTok) {
		return entry, nil, corrupt("malformed octal mode")
	}
	mode, err := parseOctal(modeTok)
	if err != nil {
		return entry, nil, corrupt("malformed octal mode")
	}
	if !recognized(mode) {
		return entry, nil, corrupt("unrecognized file mode")
	}
	entry.Mode = FileMode(mode)

	nameEnd := indexByte(rest, 0)
	if nameEnd < 0 {
		return entry, nil, corrupt("name is not NUL-terminated")
	}
	name := rest[:nameEnd]
	if err := validateEntryName(name); err != nil {
		return entry, nil, err
	}
	entry.Name = string(name)
	rest = rest[nameEnd+1:]

	if len(rest) < identity.Size {
		return entry, nil, corrupt("truncated entry identifier")
	}
	entry.ID = identity.FromBytes(rest[:identity.Size])
	rest = rest[identity.Size:]

	return entry, rest, nil
}

func validateEntryName(name []byte) error {
	if len(name) == 0 {
		return corrupt("empty entry name")
	}
	if bytes.Contains(name, []byte{'/'}) {
		return corrupt("entry name contains '/'")
	}
	if string(name) == "." || string(name) == ".." {
		return corrupt("entry name is \".\" or \"..\"")
	}
	return nil
}

// compareTreeNames implements the tree-ordering relation: byte-wise
// comparison of the two names, with the first name to run out of bytes
// having its terminator treated as '/' (0x2F) if it names a directory,
// or NUL (0x00) otherwise.
func compareTreeNames(aName string, aIsDir bool, bName string, bIsDir bool) int {
	n := len(aName)
	if len(bName) < n {
		n = len(bName)
	}

	if c := bytes.Compare([]byte(aName[:n]), []byte(bName[:n])); c != 0 {
		return c
	}

	var aTail, bTail byte
	if n < len(aName) {
		aTail = aName[n]
	} else if aIsDir {
		aTail = '/'
	}
	if n < len(bName) {
		bTail = bName[n]
	} else if bIsDir {
		bTail = '/'
	}

	switch {
	case aTail < bTail:
		return -1
	case aTail > bTail:
		return 1
	default:
		return 0
	}
}
