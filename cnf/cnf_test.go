package cnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/cfgnorm/cyk"
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/lang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// variant29 creates a grammar with ε-productions, unit productions, an
// unreachable and unproductive non-terminal and long productions.
func variant29(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("V29")
	b.NonTerminals("S", "A", "B", "C", "D", "X").Terminals("a", "b")
	b.LHS("S").N("B").End()
	b.LHS("A").T("a").N("X").End()
	b.LHS("A").T("b").N("X").End()
	b.LHS("X").N("B").N("X").End()
	b.LHS("X").T("b").End()
	b.LHS("X").Epsilon()
	b.LHS("B").N("A").N("X").T("a").N("D").End()
	b.LHS("D").T("a").End()
	b.LHS("D").T("a").N("D").End()
	b.LHS("C").N("C").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func build(t *testing.T, f func(b *grammar.Builder)) *grammar.Grammar {
	b := grammar.NewBuilder("G")
	f(b)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// words enumerates all strings over the terminals of g with at most n words.
func words(g *grammar.Grammar, n int) [][]string {
	r := [][]string{{}}
	level := [][]string{{}}
	for i := 0; i < n; i++ {
		var next [][]string
		for _, w := range level {
			for _, a := range g.Terminals() {
				v := make([]string, len(w), len(w)+1)
				copy(v, w)
				next = append(next, append(v, a.Name))
			}
		}
		r = append(r, next...)
		level = next
	}
	return r
}

func render(S [][]string) string {
	r := make([]string, len(S))
	for i, w := range S {
		r[i] = "[" + strings.Join(w, " ") + "]"
	}
	return strings.Join(r, " ")
}

// checkLanguage normalizes a clone of g and compares languages up to length n,
// both by enumeration and by CYK recognition.
func checkLanguage(t *testing.T, g *grammar.Grammar, n int, opts ...Option) *grammar.Grammar {
	t.Helper()
	h := g.Clone()
	if _, err := ToCNF(h, false, opts...); err != nil {
		t.Fatalf("normalization of %s failed: %v", g.Name, err)
	}
	if err := Check(h); err != nil {
		t.Fatalf("normalized grammar not in CNF: %v", err)
	}
	S := lang.Sentences(g, n)
	if l, m := render(S), render(lang.Sentences(h, n)); l != m {
		t.Errorf("language changed by normalization:\nbefore %s\nafter  %s", l, m)
	}
	L := make(map[string]bool, len(S))
	for _, w := range S {
		L[strings.Join(w, " ")] = true
	}
	r, err := cyk.NewRecognizer(h)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range words(g, n) {
		if expected := L[strings.Join(w, " ")]; r.Accepts(w) != expected {
			t.Errorf("CYK: expected %q to be accepted = %v", strings.Join(w, " "), expected)
		}
	}
	return h
}

func checkNoOrphans(t *testing.T, g *grammar.Grammar) {
	t.Helper()
	R, P := Reachable(g), Productive(g)
	for _, A := range g.NonTerminals() {
		if !R.Contains(A) {
			t.Errorf("non-terminal %s is unreachable", A)
		}
		if A != g.Start() && !P.Contains(A) {
			t.Errorf("non-terminal %s is unproductive", A)
		}
	}
}

// --- Tests -----------------------------------------------------------------

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	N, passes := nullable(g)
	if N.Size() != 1 || !N.Contains(grammar.N("X")) {
		t.Errorf("expected nullable set to be {X}, is %v", N.Values())
	}
	if passes > g.NonTerminalCount()+1 {
		t.Errorf("nullable analysis took %d passes", passes)
	}
	g = build(t, func(b *grammar.Builder) {
		b.LHS("S").N("A").N("B").End()
		b.LHS("A").N("B").N("B").End()
		b.LHS("B").N("C").End()
		b.LHS("C").Epsilon()
		b.LHS("C").T("c").End()
	})
	N, passes = nullable(g)
	if N.Size() != 4 {
		t.Errorf("expected all non-terminals to be nullable, have %v", N.Values())
	}
	if passes > g.NonTerminalCount()+1 {
		t.Errorf("nullable analysis took %d passes", passes)
	}
}

func TestPhases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	n, err := NewNormalizer(g)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"S -> B\nA -> a | a X | b | b X\nB -> A X a D | A a D\nC -> C a\nD -> a | a D\nX -> B | B X | b",
		"S -> A X a D | A a D\nA -> a | a X | b | b X\nB -> A X a D | A a D\nC -> C a\nD -> a | a D\nX -> A X a D | A a D | B X | b",
	}
	for _, e := range expected {
		if err = n.Step(); err != nil {
			t.Fatal(err)
		}
		if g.String() != e {
			t.Errorf("after %s expected\n%s\nhave\n%s", n.State(), e, g)
		}
	}
	if n.State() != UnitEliminated {
		t.Errorf("expected state to be %s, is %s", UnitEliminated, n.State())
	}
	if err = n.Step(); err != nil {
		t.Fatal(err)
	}
	if g.IsNonTerminal("C") || g.HasSymbol(grammar.N("C")) {
		t.Errorf("expected unreachable C to be removed")
	}
	if err = n.Step(); err != nil {
		t.Fatal(err)
	}
	if n.State() != ProductivePruned {
		t.Errorf("expected state to be %s, is %s", ProductivePruned, n.State())
	}
	checkNoOrphans(t, g)
	if err = n.Step(); err != nil {
		t.Fatal(err)
	}
	if n.State() != Binarized || !IsCNF(g) {
		t.Errorf("expected grammar to be in CNF:\n%s", g)
	}
	if len(n.Helpers()) == 0 {
		t.Errorf("expected helper non-terminals to be introduced")
	}
	if err = n.Step(); err != nil || n.State() != Binarized {
		t.Errorf("expected Step() to do nothing in final state")
	}
}

func TestVariant29(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	if IsCNF(g) {
		t.Fatalf("expected grammar not to be in CNF")
	}
	h := checkLanguage(t, g, 7)
	checkNoOrphans(t, h)
	for _, A := range h.NonTerminals() {
		for _, p := range h.Rules(A) {
			if p.IsEpsilon() {
				t.Errorf("unexpected ε-production for %s", A)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	if _, err := ToCNF(g, false); err != nil {
		t.Fatal(err)
	}
	fp := g.Fingerprint()
	transcript, err := ToCNF(g, true)
	if err != nil {
		t.Fatal(err)
	}
	if g.Fingerprint() != fp {
		t.Errorf("normalizing a CNF grammar changed it:\n%s", g)
	}
	if transcript.Len() != 0 {
		t.Errorf("expected no phases to run, transcript has %d steps", transcript.Len())
	}
}

func TestTranscriptAndObserver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	var states []State
	observer := func(s State, h *grammar.Grammar) {
		if h != g {
			t.Errorf("observer called with foreign grammar")
		}
		states = append(states, s)
	}
	transcript, err := ToCNF(g, true, WithObserver(observer))
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 5 || transcript.Len() != 5 {
		t.Fatalf("expected 5 phases, have %v and %d steps", states, transcript.Len())
	}
	steps := transcript.Steps()
	for i, s := range []State{EpsilonEliminated, UnitEliminated, ReachablePruned,
		ProductivePruned, Binarized} {
		if states[i] != s || steps[i].State != s {
			t.Errorf("expected phase %d to be %s, is %s", i+1, s, states[i])
		}
	}
	if steps[4].Fingerprint != g.Fingerprint() {
		t.Errorf("expected fingerprint of last step to match grammar")
	}
	if strings.Join(steps[4].Rules, "\n") != g.String() {
		t.Errorf("expected rules of last step to match grammar")
	}
	if !strings.Contains(transcript.String(), "5. After Chomsky normal form:") {
		t.Errorf("unexpected transcript:\n%s", transcript)
	}
}

func TestReentrantStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	var n *Normalizer
	observer := func(State, *grammar.Grammar) {
		_ = n.Step()
	}
	n, err := NewNormalizer(variant29(t), WithObserver(observer))
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected re-entrant Step() to panic")
		}
	}()
	_ = n.Step()
}

func TestUnproductiveStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("S").N("S").T("a").End()
		b.LHS("S").N("A").End()
		b.LHS("A").N("S").End()
	})
	if !IsEmptyLanguage(g) {
		t.Errorf("expected language of\n%s\nto be empty", g)
	}
	if P, passes := productive(g); !P.Empty() || passes > g.NonTerminalCount()+1 {
		t.Errorf("expected no productive non-terminals after at most %d passes, have %v after %d",
			g.NonTerminalCount()+1, P.Values(), passes)
	}
	if _, err := ToCNF(g, true); err != nil {
		t.Fatalf("expected empty language not to be an error, have %v", err)
	}
	if len(g.Rules(g.Start())) != 0 || g.NonTerminalCount() != 1 {
		t.Errorf("expected start symbol without productions, have\n%s", g)
	}
	if !IsCNF(g) || !IsEmptyLanguage(g) {
		t.Errorf("expected empty CNF grammar")
	}
	if ok, err := cyk.Recognize(g, []string{"a"}); err != nil || ok {
		t.Errorf("expected 'a' to be rejected, is %v (%v)", ok, err)
	}
}

func TestUnitCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("S").N("A").End()
		b.LHS("A").N("B").End()
		b.LHS("A").T("a").End()
		b.LHS("B").N("A").End()
		b.LHS("B").N("B").T("b").End()
	})
	h := g.Clone()
	eliminateEpsilon(h, true)
	if passes := eliminateUnits(h); passes > h.NonTerminalCount()+1 {
		t.Errorf("unit elimination took %d passes", passes)
	}
	for _, A := range h.NonTerminals() {
		for _, p := range h.Rules(A) {
			if p.IsUnit() {
				t.Errorf("unit production %s -> %s left", A, p)
			}
		}
	}
	checkLanguage(t, g, 5)
}

func TestUnitChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("A").N("B").End()
		b.LHS("B").N("C").End()
		b.LHS("C").N("D").End()
		b.LHS("D").T("d").End()
		b.LHS("D").T("d").N("A").End()
	})
	h := g.Clone()
	if passes := eliminateUnits(h); passes > h.NonTerminalCount()+1 {
		t.Errorf("unit elimination took %d passes", passes)
	}
	if rules := strings.Join(h.RuleLines()[:1], ""); rules != "A -> d | d A" {
		t.Errorf("unexpected rules for A: %s", rules)
	}
	checkLanguage(t, g, 4)
}

func TestNullableStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("S").T("a").N("S").T("b").End()
		b.LHS("S").Epsilon()
	})
	h := checkLanguage(t, g, 6)
	if !h.HasProduction(h.Start(), grammar.EpsilonProduction()) {
		t.Errorf("expected S -> ε to be kept:\n%s", h)
	}
	// without S → ε, ε is no longer part of the language
	h = g.Clone()
	if _, err := ToCNF(h, false, KeepStartEpsilon(false)); err != nil {
		t.Fatal(err)
	}
	r, err := cyk.NewRecognizer(h)
	if err != nil {
		t.Fatal(err)
	}
	if r.Accepts(nil) || !r.Accepts([]string{"a", "a", "b", "b"}) {
		t.Errorf("unexpected language of\n%s", h)
	}
}

func TestHelperReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("S").T("a").N("S").T("a").End()
		b.LHS("S").T("b").End()
	})
	names := NewNameSource("", -1)
	if err := Binarize(g, names); err != nil {
		t.Fatal(err)
	}
	if e := "S -> A B | b\nA -> B S\nB -> a"; g.String() != e {
		t.Errorf("expected\n%s\nhave\n%s", e, g)
	}
	if names.Minted() != 2 {
		t.Errorf("expected 2 helpers, have %d", names.Minted())
	}
}

func TestNameSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := grammar.New("G", "A")
	g.DeclareNonTerminal("B")
	g.DeclareTerminal("C")
	names := NewNameSource("ABC", 3)
	var labels []string
	for i := 0; i < 3; i++ {
		H, err := names.Fresh(g)
		if err != nil {
			t.Fatal(err)
		}
		labels = append(labels, H.Name)
	}
	if l := strings.Join(labels, " "); l != "A1 B1 C1" {
		t.Errorf("unexpected fresh labels: %s", l)
	}
	if !g.IsNonTerminal("B1") {
		t.Errorf("expected fresh label to be declared")
	}
	if _, err := names.Fresh(g); !errors.Is(err, ErrSymbolSpaceExhausted) {
		t.Errorf("expected ErrSymbolSpaceExhausted, have %v", err)
	}
}

func TestSymbolSpaceExhausted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := variant29(t)
	_, err := ToCNF(g, false, MintLimit(1))
	if !errors.Is(err, ErrSymbolSpaceExhausted) {
		t.Errorf("expected ErrSymbolSpaceExhausted, have %v", err)
	}
	g = variant29(t)
	if _, err = ToCNF(g, false, FreshAlphabet("HK")); err != nil {
		t.Errorf("expected normalization with short alphabet to succeed, have %v", err)
	}
}

func TestInvalidGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := grammar.New("G", "S")
	g.DeclareTerminal("a")
	g.SetRules(grammar.N("S"), []grammar.Production{
		{grammar.N("A"), grammar.T("a")},
		{},
	})
	fp := g.Fingerprint()
	if _, err := ToCNF(g, true); !errors.Is(err, grammar.ErrInvalidGrammar) {
		t.Errorf("expected ErrInvalidGrammar, have %v", err)
	}
	if g.Fingerprint() != fp {
		t.Errorf("invalid grammar has been changed")
	}
	g = grammar.New("G", "")
	if _, err := ToCNF(g, false); !errors.Is(err, grammar.ErrInvalidGrammar) {
		t.Errorf("expected ErrInvalidGrammar for missing start symbol, have %v", err)
	}
}

func TestCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	for _, tc := range []struct {
		build func(b *grammar.Builder)
		ok    bool
	}{
		{func(b *grammar.Builder) {
			b.LHS("S").N("A").N("A").End()
			b.LHS("S").Epsilon()
			b.LHS("A").T("a").End()
		}, true},
		{func(b *grammar.Builder) {
			b.LHS("S").N("A").N("A").End()
			b.LHS("A").T("a").End()
			b.LHS("A").Epsilon()
		}, false},
		{func(b *grammar.Builder) {
			b.LHS("S").N("A").End()
			b.LHS("A").T("a").End()
		}, false},
		{func(b *grammar.Builder) {
			b.LHS("S").N("A").T("a").End()
			b.LHS("A").T("a").End()
		}, false},
		{func(b *grammar.Builder) {
			b.LHS("S").N("A").N("A").N("A").End()
			b.LHS("A").T("a").End()
		}, false},
	} {
		g := build(t, tc.build)
		err := Check(g)
		if (err == nil) != tc.ok || IsCNF(g) != tc.ok {
			t.Errorf("expected CNF = %v for\n%s\nhave %v", tc.ok, g, err)
		}
		if err != nil && !errors.Is(err, ErrNotCNF) {
			t.Errorf("expected error to wrap ErrNotCNF, is %v", err)
		}
	}
}

func TestProductiveChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("A").N("B").T("a").End()
		b.LHS("B").N("C").T("a").End()
		b.LHS("C").N("D").T("a").End()
		b.LHS("D").T("d").End()
		b.LHS("E").N("E").T("e").End()
	})
	P, passes := productive(g)
	if P.Size() != 4 || P.Contains(grammar.N("E")) {
		t.Errorf("expected A…D to be productive, have %v", P.Values())
	}
	if passes > g.NonTerminalCount()+1 {
		t.Errorf("productivity analysis took %d passes", passes)
	}
	if removed := PruneUnproductive(g); len(removed) != 1 || removed[0] != grammar.N("E") {
		t.Errorf("expected E to be removed, removed %v", removed)
	}
}

func TestAnalysesOrderedByLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cfgnorm.cnf")
	defer teardown()
	//
	g := build(t, func(b *grammar.Builder) {
		b.LHS("S").N("Z").N("A").End()
		b.LHS("Z").N("M").End()
		b.LHS("M").T("m").End()
		b.LHS("M").Epsilon()
		b.LHS("A").T("a").End()
		b.LHS("A").N("Z").End()
		b.LHS("U").T("u").End()
	})
	for name, S := range map[string]interface{ Values() []interface{} }{
		"reachable":  Reachable(g),
		"productive": Productive(g),
		"nullable":   Nullable(g),
	} {
		v := S.Values()
		for i := 1; i < len(v); i++ {
			if grammar.SymbolComparator(v[i-1], v[i]) >= 0 {
				t.Errorf("expected %s set to be ordered by label, is %v", name, v)
				break
			}
		}
	}
	if v := Reachable(g).Values(); len(v) != 4 || v[0] != grammar.N("A") || v[3] != grammar.N("Z") {
		t.Errorf("expected reachable = [A M S Z], is %v", v)
	}
	if removed := PruneUnreachable(g); len(removed) != 1 || removed[0] != grammar.N("U") {
		t.Errorf("expected U to be removed, removed %v", removed)
	}
}
