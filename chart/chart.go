package chart

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/earleychart/grammar"
	"github.com/npillmayer/earleychart/tok"
)

// Restriction attribute names accepted by Select (.1, §7
// BadRestriction).
const (
	AttrIsComplete = "is_complete"
	AttrNext       = "next"
	AttrLHS        = "lhs"
	AttrStart      = "start"
)

var knownAttrs = map[string]bool{
	AttrIsComplete: true,
	AttrNext:       true,
	AttrLHS:        true,
	AttrStart:      true,
}

// secondaryIndex holds one materialized restriction-key index: a
// bucket, keyed by encoded restriction value, of the matching edges —
// one such bucket map per end position. Buckets are gods arraylists
// rather than ad-hoc slices, for a collection grown incrementally and
// iterated in insertion order.
type secondaryIndex struct {
	keys    []string
	buckets []map[string]*arraylist.List // one map per end position
}

// Chart is the append-only repository of edges for one parse: an
// insertion-ordered edge list per end position, the set of child
// pointer lists discovered for each edge, and any secondary indexes
// materialized so far by Select.
type Chart struct {
	tokens    []tok.Token
	n         uint64 // number of input positions = len(tokens)
	edgelists []*arraylist.List
	byKey     map[string]*Edge
	cpls      map[string][]CPL
	indexes   map[string]*secondaryIndex
	unify     bool // FCFG mode: restriction matching uses unification, not equality
}

// New creates a chart over the given token stream (possibly empty:
// tokens may instead be appended one at a time with AppendToken, for a
// true incremental driver). unifyMode selects FCFG-style unification
// matching for the "next"/"lhs" restriction attributes (plain equality
// otherwise).
func New(tokens []tok.Token, unifyMode bool) *Chart {
	c := &Chart{
		byKey:   map[string]*Edge{},
		cpls:    map[string][]CPL{},
		indexes: map[string]*secondaryIndex{},
		unify:   unifyMode,
		// position 0 always exists, even before any token arrives
		edgelists: []*arraylist.List{arraylist.New()},
	}
	for _, t := range tokens {
		c.AppendToken(t)
	}
	return c
}

// AppendToken extends the chart by one input position and returns the
// position the new token occupies. Every secondary index already
// materialized is extended in lockstep, so a Select built before the
// token arrived remains valid afterwards (incremental parsing
// must not invalidate work already done at earlier positions).
func (c *Chart) AppendToken(t tok.Token) uint64 {
	p := c.n
	c.tokens = append(c.tokens, t)
	c.n++
	c.edgelists = append(c.edgelists, arraylist.New())
	for _, idx := range c.indexes {
		idx.buckets = append(idx.buckets, map[string]*arraylist.List{})
	}
	return p
}

// NumLeaves returns the number of input tokens fed so far (the chart
// spans positions 0..NumLeaves()).
func (c *Chart) NumLeaves() uint64 { return c.n }

// TokenAt returns the input token at position p.
func (c *Chart) TokenAt(p uint64) tok.Token {
	if p >= c.n {
		return nil
	}
	return c.tokens[p]
}

// Insert adds edge with one supporting CPL to the chart. If the edge
// (by structural identity) is already present, the CPL is added to its
// set of derivations (if novel) and Insert returns false, "reinforced".
// Otherwise the edge is appended to its end-position's edge list, every
// live index is updated, and Insert returns true, "newly discovered".
func (c *Chart) Insert(e *Edge, cpl CPL) (bool, error) {
	if err := checkCPLShape(e, cpl); err != nil {
		return false, err
	}
	id := e.identity()
	if existing, ok := c.byKey[id]; ok {
		c.addCPL(id, cpl)
		_ = existing
		return false, nil
	}
	c.byKey[id] = e
	c.edgelists[e.End()].Add(e)
	c.addCPL(id, cpl)
	c.registerWithIndexes(e)
	tracer().Debugf("inserted %s  cpl=%s", e, cpl)
	return true, nil
}

func checkCPLShape(e *Edge, cpl CPL) error {
	switch e.Kind {
	case KindLeaf:
		if len(cpl) != 0 {
			return invariantViolation(fmt.Sprintf("LeafEdge %s given non-empty CPL %s", e, cpl))
		}
	case KindTree:
		if len(cpl) != e.Dot {
			return invariantViolation(fmt.Sprintf("edge %s (dot=%d) given CPL of length %d", e, e.Dot, len(cpl)))
		}
		for i, child := range cpl {
			want := e.RHS[i]
			var got *grammar.Symbol
			switch child.Kind {
			case KindLeaf:
				// matched by the scanner against a terminal; nothing further to check here
				continue
			case KindTree:
				got = child.LHS
			}
			if got != nil && got.Skeleton() != want.Skeleton() {
				return invariantViolation(fmt.Sprintf("CPL[%d] of %s has label %s, want %s", i, e, got, want))
			}
		}
	}
	return nil
}

func (c *Chart) addCPL(id string, cpl CPL) bool {
	list := c.cpls[id]
	for _, existing := range list {
		if cplEqual(existing, cpl) {
			return false
		}
	}
	c.cpls[id] = append(list, cpl)
	return true
}

func cplEqual(a, b CPL) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		// compared structurally: a CPL may hold a separately allocated
		// copy of a chart edge (e.g. the LeafEdge built by the scanner)
		if a[i].identity() != b[i].identity() {
			return false
		}
	}
	return true
}

// CPLs returns every child-pointer list discovered so far for e.
func (c *Chart) CPLs(e *Edge) []CPL {
	return c.cpls[e.identity()]
}

// Select returns the edges at end position `end` matching restrictions,
// or every edge at that position if restrictions is empty. It is O(1 +
// matches) amortized: the first Select with a given set of restriction
// keys builds an index over current chart content; subsequent inserts
// maintain every live index.
func (c *Chart) Select(end uint64, restrictions map[string]interface{}) ([]*Edge, error) {
	if end >= uint64(len(c.edgelists)) {
		return nil, nil
	}
	if len(restrictions) == 0 {
		return edgeValues(c.edgelists[end]), nil
	}
	keys := make([]string, 0, len(restrictions))
	for k := range restrictions {
		if !knownAttrs[k] {
			return nil, &BadRestrictionError{Attribute: k}
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	idxKey := strings.Join(keys, ",")
	idx, ok := c.indexes[idxKey]
	if !ok {
		idx = c.buildIndex(keys)
		c.indexes[idxKey] = idx
	}
	bucketKey := c.bucketKey(keys, restrictions)
	bucket, ok := idx.buckets[end][bucketKey]
	if !ok {
		return c.unifyFilter(nil, restrictions), nil
	}
	return c.unifyFilter(edgeValues(bucket), restrictions), nil
}

// buildIndex materializes an index for the given (sorted) restriction
// keys over every edge currently in the chart.
func (c *Chart) buildIndex(keys []string) *secondaryIndex {
	idx := &secondaryIndex{keys: keys, buckets: make([]map[string]*arraylist.List, len(c.edgelists))}
	for end := range idx.buckets {
		idx.buckets[end] = map[string]*arraylist.List{}
	}
	for end, edgelist := range c.edgelists {
		edgelist.Each(func(_ int, v interface{}) {
			e := v.(*Edge)
			key := c.bucketKeyForEdge(keys, e)
			bucket, ok := idx.buckets[end][key]
			if !ok {
				bucket = arraylist.New()
				idx.buckets[end][key] = bucket
			}
			bucket.Add(e)
		})
	}
	return idx
}

func (c *Chart) registerWithIndexes(e *Edge) {
	for _, idx := range c.indexes {
		key := c.bucketKeyForEdge(idx.keys, e)
		bucket, ok := idx.buckets[e.End()][key]
		if !ok {
			bucket = arraylist.New()
			idx.buckets[e.End()][key] = bucket
		}
		bucket.Add(e)
	}
}

// edgeValues converts an arraylist of *Edge values to a plain slice,
// preserving insertion order.
func edgeValues(l *arraylist.List) []*Edge {
	if l == nil {
		return nil
	}
	values := l.Values()
	out := make([]*Edge, len(values))
	for i, v := range values {
		out[i] = v.(*Edge)
	}
	return out
}

func (c *Chart) bucketKeyForEdge(keys []string, e *Edge) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := attrValue(e, k)
		parts[i] = c.encodeValue(v)
	}
	return strings.Join(parts, "|")
}

func (c *Chart) bucketKey(keys []string, restrictions map[string]interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = c.encodeValue(restrictions[k])
	}
	return strings.Join(parts, "|")
}

// encodeValue projects a restriction/attribute value to its canonical
// index-bucket string. For *grammar.Symbol values in unify mode, this
// is the "type" projection (Skeleton): the index groups candidates by
// shape, and unifyFilter performs the exact linear-fallback unification
// over the (small) resulting shortlist.
func (c *Chart) encodeValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "∅"
	case bool:
		return fmt.Sprintf("b:%v", val)
	case uint64:
		return fmt.Sprintf("u:%d", val)
	case *grammar.Symbol:
		if val == nil {
			return "∅"
		}
		if c.unify {
			return "s:" + val.Skeleton()
		}
		return fmt.Sprintf("s:%s|%v|%d", val.Name, val.IsTerminal(), val.TokType())
	default:
		return fmt.Sprintf("%v", val)
	}
}

// unifyFilter re-checks candidates pulled from a skeleton-keyed bucket
// against the actual requested symbol (with its concrete feature
// bindings), needed only in unify mode where the index key deliberately
// collapses bound values to keep the bucket canonical.
func (c *Chart) unifyFilter(candidates []*Edge, restrictions map[string]interface{}) []*Edge {
	if !c.unify {
		return candidates
	}
	out := candidates
	for _, key := range []string{AttrNext, AttrLHS} {
		want, ok := restrictions[key].(*grammar.Symbol)
		if !ok || want == nil || want.Features == nil {
			continue
		}
		filtered := make([]*Edge, 0, len(out))
		for _, e := range out {
			got, _ := attrValue(e, key)
			sym, ok := got.(*grammar.Symbol)
			if !ok || sym == nil || sym.Name != want.Name {
				continue
			}
			if sym.Features == nil {
				filtered = append(filtered, e)
				continue
			}
			if _, _, ok := grammar.Unify(sym.Features, want.Features); ok {
				filtered = append(filtered, e)
			}
		}
		out = filtered
	}
	return out
}

func attrValue(e *Edge, key string) (interface{}, error) {
	switch key {
	case AttrIsComplete:
		return e.IsComplete(), nil
	case AttrNext:
		return e.NextSymbol(), nil
	case AttrLHS:
		if e.Kind == KindLeaf {
			return nil, nil
		}
		return e.LHS, nil
	case AttrStart:
		return e.Start(), nil
	default:
		return nil, &BadRestrictionError{Attribute: key}
	}
}
