package cnf

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/cfgnorm/grammar"
)

// State is a state of the normalization pipeline. Every phase of the pipeline
// transitions to the next state.
type State int

// States of the normalization pipeline, in order.
const (
	NotNormalized State = iota
	EpsilonEliminated
	UnitEliminated
	ReachablePruned
	ProductivePruned
	Binarized
)

var stateNames = []string{
	"not normalized",
	"ε-productions eliminated",
	"unit productions eliminated",
	"inaccessible symbols eliminated",
	"non-productive symbols eliminated",
	"Chomsky normal form",
}

func (s State) String() string {
	if s < NotNormalized || s > Binarized {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// --- Options ---------------------------------------------------------------

// Option configures a normalization run.
type Option func(*options)

type options struct {
	observer         func(State, *grammar.Grammar)
	alphabet         string
	limit            int // < 0: derive from grammar
	keepStartEpsilon bool
}

func defaultOptions() options {
	return options{
		alphabet:         DefaultAlphabet,
		limit:            -1,
		keepStartEpsilon: true,
	}
}

// WithObserver sets a function to be called after every phase. Observers
// must not change the grammar.
func WithObserver(f func(State, *grammar.Grammar)) Option {
	return func(o *options) {
		o.observer = f
	}
}

// FreshAlphabet sets the alphabet for labels of fresh non-terminals.
func FreshAlphabet(alphabet string) Option {
	return func(o *options) {
		if alphabet != "" {
			o.alphabet = alphabet
		}
	}
}

// MintLimit sets the maximum number of fresh non-terminals. By default the
// limit is derived from the size of the grammar before binarization, which
// never needs more helpers than there are symbols in all productions plus
// terminals.
func MintLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// KeepStartEpsilon sets or clears keeping S → ε for a nullable start symbol.
// If cleared, ε is no longer part of the language of a normalized grammar.
func KeepStartEpsilon(b bool) Option {
	return func(o *options) {
		o.keepStartEpsilon = b
	}
}

// --- Transcript ------------------------------------------------------------

// Step is the record of a grammar after a phase of normalization.
type Step struct {
	State       State
	Rules       []string // rendered rules, start symbol first
	Fingerprint string
}

// Transcript is an ordered list of steps of a normalization run.
type Transcript struct {
	steps *arraylist.List
}

func newTranscript() *Transcript {
	return &Transcript{steps: arraylist.New()}
}

func (t *Transcript) record(s State, g *grammar.Grammar) {
	step := Step{
		State:       s,
		Rules:       g.RuleLines(),
		Fingerprint: g.Fingerprint(),
	}
	t.steps.Add(step)
	tracer().Infof("%d. after %s:", t.steps.Size(), s)
	for _, line := range step.Rules {
		tracer().Infof("   %s", line)
	}
}

// Len returns the number of steps recorded.
func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return t.steps.Size()
}

// Steps returns the steps recorded, in order.
func (t *Transcript) Steps() []Step {
	if t == nil {
		return nil
	}
	steps := make([]Step, 0, t.steps.Size())
	it := t.steps.Iterator()
	for it.Next() {
		steps = append(steps, it.Value().(Step))
	}
	return steps
}

func (t *Transcript) String() string {
	var b strings.Builder
	for i, step := range t.Steps() {
		fmt.Fprintf(&b, "%d. After %s:\n", i+1, step.State)
		for _, line := range step.Rules {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// --- Normalizer ------------------------------------------------------------

// Normalizer drives the normalization of a grammar, one phase at a time.
// It owns the fresh-name source and the helper memo of a run.
type Normalizer struct {
	g          *grammar.Grammar
	state      State
	opts       options
	names      *NameSource
	helpers    *helpers
	transcript *Transcript
	running    bool
}

// NewNormalizer creates a normalizer for g. g is validated first, an invalid
// grammar results in an error wrapping grammar.ErrInvalidGrammar.
func NewNormalizer(g *grammar.Grammar, opts ...Option) (*Normalizer, error) {
	if err := g.Validate(); err != nil {
		tracer().Errorf("cannot normalize grammar %s: %v", g.Name, err)
		return nil, err
	}
	n := &Normalizer{g: g, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&n.opts)
	}
	n.names = NewNameSource(n.opts.alphabet, n.opts.limit)
	n.helpers = newHelpers(n.names)
	return n, nil
}

// State returns the current state of the normalization.
func (n *Normalizer) State() State {
	return n.state
}

// Grammar returns the grammar being normalized.
func (n *Normalizer) Grammar() *grammar.Grammar {
	return n.g
}

// Helpers returns the non-terminals introduced by binarization.
func (n *Normalizer) Helpers() []grammar.Symbol {
	return n.helpers.symbols()
}

// Step performs the next phase of the normalization. In state Binarized,
// Step does nothing.
func (n *Normalizer) Step() error {
	if n.running {
		panic("cnf.Normalizer.Step() called re-entrantly")
	}
	n.running = true
	defer func() { n.running = false }()
	if n.state == Binarized {
		return nil
	}
	next := n.state + 1
	tracer().Infof("grammar %s: %s → %s", n.g.Name, n.state, next)
	switch next {
	case EpsilonEliminated:
		eliminateEpsilon(n.g, n.opts.keepStartEpsilon)
	case UnitEliminated:
		eliminateUnits(n.g)
	case ReachablePruned:
		PruneUnreachable(n.g)
	case ProductivePruned:
		PruneUnproductive(n.g)
		PruneUnreachable(n.g) // pruning productions may leave orphans
	case Binarized:
		if n.opts.limit < 0 {
			n.names.limit = n.g.BodyLength() + len(n.g.Terminals())
		}
		if err := n.helpers.binarize(n.g); err != nil {
			tracer().Errorf("binarization of %s failed: %v", n.g.Name, err)
			return err
		}
		if err := Check(n.g); err != nil {
			return fmt.Errorf("normalization of %s failed: %w", n.g.Name, err)
		}
	}
	n.state = next
	if n.transcript != nil {
		n.transcript.record(next, n.g)
	}
	if n.opts.observer != nil {
		n.opts.observer(next, n.g)
	}
	return nil
}

// Run performs all remaining phases. If the grammar is in CNF already before
// the first phase, it will not be changed and the normalizer is put into
// state Binarized immediately.
func (n *Normalizer) Run() error {
	if n.state == NotNormalized && IsCNF(n.g) {
		tracer().Infof("grammar %s already is in CNF", n.g.Name)
		n.state = Binarized
		return nil
	}
	for n.state != Binarized {
		if err := n.Step(); err != nil {
			return err
		}
	}
	return nil
}

// ToCNF converts g into Chomsky Normal Form, in place. If emitTrace is set,
// the rules after every phase are recorded in a transcript and written to the
// trace. An invalid grammar is left untouched and an error wrapping
// grammar.ErrInvalidGrammar is returned.
//
// A grammar generating the empty language results in a start symbol without
// productions. This is not an error, see IsEmptyLanguage.
func ToCNF(g *grammar.Grammar, emitTrace bool, opts ...Option) (*Transcript, error) {
	n, err := NewNormalizer(g, opts...)
	if err != nil {
		return nil, err
	}
	if emitTrace {
		n.transcript = newTranscript()
	}
	err = n.Run()
	return n.transcript, err
}
