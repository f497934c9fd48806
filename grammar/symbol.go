package grammar

import (
	"fmt"

	"github.com/npillmayer/earleychart/tok"
)

// Symbol is either a terminal, matching one input token by equality
// (or, for FCFG, by unification of its pattern against the token), or
// a nonterminal, the LHS of zero or more productions. FCFG nonterminals
// additionally carry a Features AVM.
type Symbol struct {
	Name     string
	terminal bool
	tokType  tok.TokType // meaningful only if terminal
	Features Features    // nil for plain CFG symbols
}

// NewTerminal creates a terminal symbol matching token type tt.
func NewTerminal(name string, tt tok.TokType) *Symbol {
	return &Symbol{Name: name, terminal: true, tokType: tt}
}

// NewNonterminal creates a plain (featureless) nonterminal symbol.
func NewNonterminal(name string) *Symbol {
	return &Symbol{Name: name}
}

// NewFeatureNonterminal creates a nonterminal carrying an AVM.
func NewFeatureNonterminal(name string, f Features) *Symbol {
	return &Symbol{Name: name, Features: f}
}

// IsTerminal reports whether the symbol is a terminal.
func (s *Symbol) IsTerminal() bool {
	return s != nil && s.terminal
}

// TokType returns the token type a terminal symbol matches. Zero value
// for nonterminals.
func (s *Symbol) TokType() tok.TokType {
	if s == nil {
		return 0
	}
	return s.tokType
}

// Matches reports whether a terminal symbol accepts the given token,
// either by plain token-type equality (CFG) or, if the symbol carries
// Features, by unifying them against the token's value (FCFG), where
// the token's Value() is expected to itself be a Features map.
func (s *Symbol) Matches(t tok.Token) bool {
	if !s.IsTerminal() || t.TokType() != s.tokType {
		return false
	}
	if s.Features == nil {
		return true
	}
	tf, ok := t.Value().(Features)
	if !ok {
		return true // no feature payload on the token: accept on type alone
	}
	_, _, ok = Unify(s.Features, tf)
	return ok
}

// Skeleton returns the type-stripped canonical form of the symbol: its
// name, plus (for feature symbols) the skeleton of its AVM. Two symbols
// with the same Skeleton() are candidates for unification and therefore
// share an index bucket.
func (s *Symbol) Skeleton() string {
	if s == nil {
		return ""
	}
	if s.Features == nil {
		return s.Name
	}
	return s.Name + "#" + s.Features.Skeleton()
}

// CanonicalKey returns an exact identity key for the symbol: its name
// plus, for feature symbols, the exact serialization of its AVM (see
// Features.CanonicalKey). Used by chart edge identity; Skeleton is used
// for index bucketing and deliberately coarser.
func (s *Symbol) CanonicalKey() string {
	if s == nil {
		return ""
	}
	if s.Features == nil {
		return s.Name
	}
	return s.Name + "#" + s.Features.CanonicalKey()
}

// Equal compares two symbols for plain-CFG equality: same name, same
// terminal-ness, same token type. It ignores Features; use Unify (via
// the grammar/chart combinators) to compare FCFG symbols.
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Name == o.Name && s.terminal == o.terminal && s.tokType == o.tokType
}

// WithFeatures returns a copy of s with its Features replaced.
func (s *Symbol) WithFeatures(f Features) *Symbol {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Features = f
	return &cp
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	if len(s.Features) == 0 {
		return s.Name
	}
	return fmt.Sprintf("%s%v", s.Name, s.Features)
}
