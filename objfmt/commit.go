package objfmt

import (
	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/walkerr"
)

// DecodedCommit is the strict parse of a commit object's canonical bytes,
// per §4.1: "tree " + 40-hex + LF, zero or more "parent " + hex + LF,
// "author " + person-id + LF, "committer " + person-id + LF, then an
// optional blank line and free-form message.
type DecodedCommit struct {
	Tree      identity.Identifier
	Parents   []identity.Identifier
	Author    PersonIdentifier
	Committer PersonIdentifier
	Message   string
}

// DecodeCommit validates raw against the canonical commit format and, on
// success, returns every field the walker needs. Any deviation from the
// format fails with a CorruptObjectError, never a partial result.
func DecodeCommit(raw []byte) (*DecodedCommit, error) {
	buf := raw
	dc := &DecodedCommit{}

	line, rest, ok := scanLine(buf)
	if !ok {
		return nil, corrupt("missing tree line")
	}
	tok, hexID, ok := scanToken(line)
	if !ok || string(tok) != "tree" {
		return nil, corrupt("expected \"tree \" line")
	}
	id, ok := identity.FromHex(string(hexID))
	if !ok {
		return nil, corrupt("invalid tree identifier")
	}
	dc.Tree = id
	buf = rest

	for {
		line, rest, ok = scanLine(buf)
		if !ok {
			return nil, corrupt("missing author line")
		}
		tok, val, ok := scanToken(line)
		if !ok {
			return nil, corrupt("malformed header line")
		}
		if string(tok) != "parent" {
			break
		}
		id, ok := identity.FromHex(string(val))
		if !ok {
			return nil, corrupt("invalid parent identifier")
		}
		dc.Parents = append(dc.Parents, id)
		buf = rest
	}

	// line/rest still hold the first non-"parent" header line; it is
	// tokenized again here because the loop's tok/val were scoped to it.
	tok, val, ok := scanToken(line)
	if !ok || string(tok) != "author" {
		return nil, corrupt("expected \"author \" line")
	}
	author, ok := scanPersonIdentifier(val)
	if !ok {
		return nil, corrupt("malformed author identity")
	}
	dc.Author = author
	buf = rest

	line, rest, ok = scanLine(buf)
	if !ok {
		return nil, corrupt("missing committer line")
	}
	tok, val, ok = scanToken(line)
	if !ok || string(tok) != "committer" {
		return nil, corrupt("expected \"committer \" line")
	}
	committer, ok := scanPersonIdentifier(val)
	if !ok {
		return nil, corrupt("malformed committer identity")
	}
	dc.Committer = committer
	buf = rest

	// Whatever remains is an optional blank-line-delimited message; no
	// further validation is required by the canonical commit format.
	if len(buf) > 0 && buf[0] == '\n' {
		dc.Message = string(buf[1:])
	} else {
		dc.Message = string(buf)
	}

	return dc, nil
}

func corrupt(reason string) error {
	return &walkerr.CorruptObjectError{Reason: reason}
}
