package object

import (
	"io"

	"github.com/dagwalk/revwalk/identity"
	"github.com/dagwalk/revwalk/objfmt"
	"github.com/dagwalk/revwalk/store"
	"github.com/dagwalk/revwalk/walkerr"
)

// Pool is the hash table keyed by identifier that owns every revision
// object a single walker touches. It guarantees at most one instance per
// identifier, and objects within it reference each other through the
// pool rather than by raw, walker-external pointers (the data model's
// "no two revision objects in a pool have identical identifiers"
// invariant, and the design notes' "cyclic/back references" guidance).
//
// A Pool is not safe for concurrent use, matching §5's single-threaded
// cooperative model.
type Pool struct {
	reader  store.ObjectReader
	objects map[identity.Identifier]Node
	// RetainBodies controls whether a commit's RawHeader survives PARSED;
	// when false (the default) headers are discarded immediately after
	// decode to bound memory, matching the teacher's streaming-decode
	// convention (objects.go's Decode never keeps the raw reader around).
	RetainBodies bool
}

// NewPool returns an empty pool backed by reader.
func NewPool(reader store.ObjectReader) *Pool {
	return &Pool{
		reader:  reader,
		objects: make(map[identity.Identifier]Node),
	}
}

// Len returns the number of distinct objects the pool has created.
func (p *Pool) Len() int { return len(p.objects) }

// All calls fn for every object the pool currently holds, in unspecified
// order. Used by Reset to clear flags across every touched object.
func (p *Pool) All(fn func(Node)) {
	for _, n := range p.objects {
		fn(n)
	}
}

// LookupCommit returns the pool's stub for id, creating an unparsed one
// on first reference. It never fails and never touches the object store;
// it exists so a caller can build a parent/child graph before knowing
// every object's type.
func (p *Pool) LookupCommit(id identity.Identifier) *Commit {
	if n, ok := p.objects[id]; ok {
		if c, ok := n.(*Commit); ok {
			return c
		}
		// A stub was created under a different assumed type; that is a
		// caller bug the parse path will surface as IncorrectObjectType
		// once the real bytes are read.
	}
	c := NewCommit(id)
	p.objects[id] = c
	return c
}

func (p *Pool) LookupTree(id identity.Identifier) *Tree {
	if n, ok := p.objects[id]; ok {
		if t, ok := n.(*Tree); ok {
			return t
		}
	}
	t := NewTree(id)
	p.objects[id] = t
	return t
}

func (p *Pool) LookupBlob(id identity.Identifier) *Blob {
	if n, ok := p.objects[id]; ok {
		if b, ok := n.(*Blob); ok {
			return b
		}
	}
	b := NewBlob(id)
	p.objects[id] = b
	return b
}

func (p *Pool) LookupTag(id identity.Identifier) *Tag {
	if n, ok := p.objects[id]; ok {
		if t, ok := n.(*Tag); ok {
			return t
		}
	}
	t := NewTag(id)
	p.objects[id] = t
	return t
}

// ParseCommit returns id's fully decoded Commit, parsing it from the
// object store if it has not been parsed yet. It fails with
// MissingObjectError, IncorrectObjectTypeError, or CorruptObjectError per
// §4.7, and never returns a partially-populated commit.
func (p *Pool) ParseCommit(id identity.Identifier) (*Commit, error) {
	c := p.LookupCommit(id)
	if c.Has(PARSED) {
		return c, nil
	}

	raw, err := p.readObject(id, store.CommitType, "commit")
	if err != nil {
		return nil, err
	}

	dc, err := objfmt.DecodeCommit(raw)
	if err != nil {
		return nil, err
	}

	c.TreeID = dc.Tree
	c.CommitTime = dc.Committer.Seconds
	c.AuthorTime = dc.Author.Seconds
	c.Parents = make([]*Commit, len(dc.Parents))
	for i, pid := range dc.Parents {
		c.Parents[i] = p.LookupCommit(pid)
	}
	if p.RetainBodies {
		c.RawHeader = raw
	}
	c.Set(PARSED)

	return c, nil
}

// ParseTree validates and returns id's tree entries without caching them
// on the pool entry: trees are expected to be streamed once by the object
// walker, not re-read, so the pool only remembers that the identifier is
// a tree.
func (p *Pool) ParseTree(id identity.Identifier) (*Tree, []objfmt.TreeEntry, error) {
	t := p.LookupTree(id)

	raw, err := p.readObject(id, store.TreeType, "tree")
	if err != nil {
		return nil, nil, err
	}

	entries, err := objfmt.ValidateTree(raw)
	if err != nil {
		return nil, nil, err
	}

	t.Set(PARSED)
	return t, entries, nil
}

// ParseTag returns id's fully decoded Tag, parsing it if necessary.
func (p *Pool) ParseTag(id identity.Identifier) (*Tag, error) {
	t := p.LookupTag(id)
	if t.Has(PARSED) {
		return t, nil
	}

	raw, err := p.readObject(id, store.TagType, "tag")
	if err != nil {
		return nil, err
	}

	dt, err := objfmt.DecodeTag(raw)
	if err != nil {
		return nil, err
	}

	t.TargetID = dt.Object
	t.ObjectType = dt.ObjectType
	t.Name = dt.Name
	if dt.Tagger != nil {
		t.TaggerName = dt.Tagger.Name
		t.TaggerEmail = dt.Tagger.Email
		t.TaggerWhen = dt.Tagger.Seconds
		t.TaggerTZ = dt.Tagger.TZ
	}
	t.Message = dt.Message
	switch dt.ObjectType {
	case "commit":
		t.TargetType = CommitType
	case "tree":
		t.TargetType = TreeType
	case "blob":
		t.TargetType = BlobType
	case "tag":
		t.TargetType = TagType
	}
	t.Set(PARSED)

	return t, nil
}

// ParseAny parses id without any type assumption, returning whichever
// Node variant the store reports.
func (p *Pool) ParseAny(id identity.Identifier) (Node, error) {
	loader, err := p.reader.Open(id, store.InvalidType)
	if err != nil {
		return nil, &walkerr.MissingObjectError{ID: id}
	}

	switch loader.Type() {
	case store.CommitType:
		return p.ParseCommit(id)
	case store.TreeType:
		t, _, err := p.ParseTree(id)
		return t, err
	case store.BlobType:
		b := p.LookupBlob(id)
		b.Set(PARSED)
		return b, nil
	case store.TagType:
		return p.ParseTag(id)
	default:
		return nil, &walkerr.CorruptObjectError{ID: id, Reason: "unknown object type"}
	}
}

// readObject opens id, verifies its type against want (when want is not
// InvalidType), enforces the large-object cap, and returns its raw bytes.
func (p *Pool) readObject(id identity.Identifier, want store.ObjectType, wantName string) ([]byte, error) {
	loader, err := p.reader.Open(id, want)
	if err != nil {
		return nil, &walkerr.MissingObjectError{ID: id}
	}

	if loader.Type() != want {
		return nil, &walkerr.IncorrectObjectTypeError{
			ID:       id,
			Expected: wantName,
			Actual:   typeName(loader.Type()),
		}
	}

	if loader.Size() > walkerr.MaxRetainedObjectSize {
		return nil, &walkerr.LargeObjectError{ID: id, Size: loader.Size()}
	}

	rc, err := loader.Reader()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func typeName(t store.ObjectType) string {
	switch t {
	case store.CommitType:
		return "commit"
	case store.TreeType:
		return "tree"
	case store.BlobType:
		return "blob"
	case store.TagType:
		return "tag"
	default:
		return "unknown"
	}
}

// Reset clears every flag not present in retainMask from every object the
// pool has created, matching the "clear all non-retained flags from
// reachable objects" contract. PARSED is not cleared by this function's
// caller convention (the walker always includes it in retainMask), since
// headers/parents are immutable once parsed.
func (p *Pool) Reset(retainMask Flag) {
	for _, n := range p.objects {
		n.Clear(^retainMask)
	}
}
