package grammar

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Var is an unbound feature variable, e.g. '?n' in NP[num=?n]. Two Vars
// with the same Name are the same variable within one production
// instance (coreference).
type Var struct {
	Name string
}

// FeatureValue is either a concrete (comparable) value or a *Var.
type FeatureValue interface{}

// Features is an attribute-value map (AVM) carried by a feature
// nonterminal. A nil Features behaves like an empty AVM, so plain CFG
// symbols (Features == nil) unify trivially with anything.
type Features map[string]FeatureValue

// Clone returns a shallow copy, safe to mutate independently.
func (f Features) Clone() Features {
	if f == nil {
		return nil
	}
	c := make(Features, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// Apply substitutes every Var in f whose name is bound in binding with
// its bound value, functionally: it never mutates f.
func (f Features) Apply(binding map[string]FeatureValue) Features {
	if f == nil || len(binding) == 0 {
		return f
	}
	out := f.Clone()
	for k, v := range out {
		if vr, ok := v.(*Var); ok {
			if bound, ok := binding[vr.Name]; ok {
				out[k] = bound
			}
		}
	}
	return out
}

// Skeleton returns the type-stripped projection of a feature structure:
// the sorted set of attribute names, with every value (bound or
// unbound variable alike) discarded. It is used as the canonical index
// key for restriction lookups: two feature structures with
// the same attribute names share one index bucket regardless of their
// actual values, and the exact match (sg vs. plural, bound vs. still a
// variable) is resolved by a linear Unify fallback over that bucket's
// shortlist, never by the index alone.
func (f Features) Skeleton() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	skel := ""
	for _, k := range keys {
		skel += k + ";"
	}
	return skel
}

// Unify computes the most general common specialization of a and b,
// returning the merged AVM plus the variable bindings discovered while
// merging. It fails if any shared attribute holds two distinct,
// non-variable values.
//
// This is a deliberately small unification engine: it resolves
// var-to-atom bindings (sufficient for agreement features such as
// NP[num=?n] / VP[num=?n]) but does not implement a general
// union-find over variable-to-variable bindings. See DESIGN.md for the
// rationale.
func Unify(a, b Features) (Features, map[string]FeatureValue, bool) {
	binding := map[string]FeatureValue{}
	merged := a.Clone()
	if merged == nil {
		merged = Features{}
	}
	for k, bv := range b {
		av, exists := merged[k]
		if !exists {
			merged[k] = bv
			continue
		}
		aVar, aIsVar := av.(*Var)
		bVar, bIsVar := bv.(*Var)
		switch {
		case !aIsVar && !bIsVar:
			if av != bv {
				return nil, nil, false
			}
		case aIsVar && !bIsVar:
			binding[aVar.Name] = bv
			merged[k] = bv
		case !aIsVar && bIsVar:
			binding[bVar.Name] = av
		default: // both variables
			if aVar.Name != bVar.Name {
				// Leave unresolved rather than fail: none of the
				// grammars this package targets need a full
				// variable-to-variable union-find.
				tracer().Debugf("unify: linking distinct vars ?%s/?%s without full union-find", aVar.Name, bVar.Name)
			}
		}
	}
	return merged, binding, true
}

// CanonicalKey returns an exact serialization of f: unlike Skeleton, it
// distinguishes bound values (NP[num=sg] and NP[num=pl] get different
// keys) and unbound variables by name. Used for chart edge identity,
// where two differently-bound labels must never be silently merged
// into one edge; Skeleton is for index bucketing, where that merge is
// exactly the point.
func (f Features) CanonicalKey() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	key := ""
	for _, k := range keys {
		if v, isVar := f[k].(*Var); isVar {
			key += k + "=?" + v.Name + ";"
		} else {
			key += fmt.Sprintf("%s=%v;", k, f[k])
		}
	}
	return key
}
