package objfmt

import (
	"github.com/dagwalk/revwalk/identity"
)

// DecodedTag is the strict parse of an annotated tag's canonical bytes,
// per §4.1: "object " + id + LF, "type " + token + LF, "tag " + token +
// LF, optional "tagger " + person-id + LF, then the tag message.
type DecodedTag struct {
	Object     identity.Identifier
	ObjectType string
	Name       string
	Tagger     *PersonIdentifier
	Message    string
}

func DecodeTag(raw []byte) (*DecodedTag, error) {
	buf := raw
	dt := &DecodedTag{}

	line, rest, ok := scanLine(buf)
	if !ok {
		return nil, corrupt("missing object line")
	}
	tok, val, ok := scanToken(line)
	if !ok || string(tok) != "object" {
		return nil, corrupt("expected \"object \" line")
	}
	id, ok := identity.FromHex(string(val))
	if !ok {
		return nil, corrupt("invalid object identifier")
	}
	dt.Object = id
	buf = rest

	line, rest, ok = scanLine(buf)
	if !ok {
		return nil, corrupt("missing type line")
	}
	tok, val, ok = scanToken(line)
	if !ok || string(tok) != "type" {
		return nil, corrupt("expected \"type \" line")
	}
	if len(val) == 0 {
		return nil, corrupt("empty type token")
	}
	dt.ObjectType = string(val)
	buf = rest

	line, rest, ok = scanLine(buf)
	if !ok {
		return nil, corrupt("missing tag line")
	}
	tok, val, ok = scanToken(line)
	if !ok || string(tok) != "tag" {
		return nil, corrupt("expected \"tag \" line")
	}
	if len(val) == 0 {
		return nil, corrupt("empty tag name")
	}
	dt.Name = string(val)
	buf = rest

	// Optional tagger line.
	line, rest, ok = scanLine(buf)
	if ok {
		if tok, val, tokOK := scanToken(line); tokOK && string(tok) == "tagger" {
			tagger, ok := scanPersonIdentifier(val)
			if !ok {
				return nil, corrupt("malformed tagger identity")
			}
			dt.Tagger = &tagger
			buf = rest
		}
	}

	if len(buf) > 0 && buf[0] == '\n' {
		dt.Message = string(buf[1:])
	} else {
		dt.Message = string(buf)
	}

	return dt, nil
}
