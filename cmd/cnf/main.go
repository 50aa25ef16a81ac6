package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/cfgnorm/cnf"
	"github.com/npillmayer/cfgnorm/cyk"
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/grammar/reader"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// sampleGrammar is used if no grammar file is given. It contains every kind
// of production the normalization has to deal with.
const sampleGrammar = `# sample grammar
%terminals a b
S -> B
A -> a X | b X
X -> B X | b | ε
B -> A X a D
D -> a | a D
C -> C a
`

var traceKeys = []string{"cfgnorm.cli", "cfgnorm.grammar", "cfgnorm.reader", "cfgnorm.cnf",
	"cfgnorm.cyk", "cfgnorm.lang"}

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	steps := flag.Bool("steps", false, "Print grammar after every phase")
	check := flag.String("check", "", "Check a sentence for membership")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()
	setTraceLevel(traceLevel(*tlevel))
	//
	name, source := "sample", sampleGrammar
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		b, err := os.ReadFile(name)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		source = string(b)
	}
	s := NewSession(name)
	if err := s.Load(source); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if *interactive {
		repl, err := readline.New("cnf> ")
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(3)
		}
		pterm.Info.Println("Enter rules or commands, quit with <ctrl>D")
		s.REPL(repl)
		return
	}
	g, transcript, err := s.Normalize(*steps)
	if *steps {
		printTranscript(transcript)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	pterm.DefaultSection.Println("Chomsky normal form")
	printRules(g)
	if *check != "" {
		if err := printCheck(s, strings.Fields(*check)); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// --- Session ---------------------------------------------------------------

// Session holds the rules of a grammar entered so far.
type Session struct {
	name  string
	lines []string
	g     *grammar.Grammar
}

// NewSession creates an empty session.
func NewSession(name string) *Session {
	return &Session{name: name}
}

// Load replaces the grammar of a session.
func (s *Session) Load(source string) error {
	g, err := reader.ReadString(s.name, source)
	if err != nil {
		return err
	}
	s.lines = strings.Split(strings.TrimRight(source, "\n"), "\n")
	s.g = g
	return nil
}

// Add appends a line of grammar notation. If the extended grammar is not
// valid, the line is not added.
func (s *Session) Add(line string) error {
	lines := append(s.lines[:len(s.lines):len(s.lines)], line)
	g, err := reader.ReadString(s.name, strings.Join(lines, "\n"))
	if err != nil {
		return err
	}
	s.lines, s.g = lines, g
	return nil
}

// Reset clears the grammar of a session.
func (s *Session) Reset() {
	s.lines, s.g = nil, nil
}

// Grammar returns the current grammar, or nil.
func (s *Session) Grammar() *grammar.Grammar {
	return s.g
}

// Normalize converts a copy of the current grammar into CNF.
func (s *Session) Normalize(steps bool) (*grammar.Grammar, *cnf.Transcript, error) {
	if s.g == nil {
		return nil, nil, fmt.Errorf("no grammar")
	}
	g := s.g.Clone()
	transcript, err := cnf.ToCNF(g, steps)
	return g, transcript, err
}

// Check normalizes the current grammar and tests words for membership.
func (s *Session) Check(words []string) (bool, error) {
	g, _, err := s.Normalize(false)
	if err != nil {
		return false, err
	}
	return cyk.Recognize(g, words)
}

// Eval executes a command or adds a line of rules. It returns true for :quit.
func (s *Session) Eval(line string) (bool, error) {
	if line = strings.TrimSpace(line); line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		return false, s.Add(line)
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":reset":
		s.Reset()
	case ":show":
		if s.g == nil {
			return false, fmt.Errorf("no grammar")
		}
		printRules(s.g)
	case ":cnf":
		g, transcript, err := s.Normalize(true)
		printTranscript(transcript)
		if err != nil {
			return false, err
		}
		if transcript.Len() == 0 {
			pterm.Info.Println("grammar already is in CNF")
			printRules(g)
		}
	case ":check":
		return false, printCheck(s, args[1:])
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

// REPL starts interactive mode.
func (s *Session) REPL(repl *readline.Instance) {
	defer repl.Close()
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		quit, err := s.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// --- Output ----------------------------------------------------------------

func printTranscript(transcript *cnf.Transcript) {
	for i, step := range transcript.Steps() {
		pterm.DefaultSection.Printf("%d. after %s", i+1, step.State)
		for _, line := range step.Rules {
			pterm.Println(line)
		}
	}
}

// printRules displays the rules of g as a tree.
func printRules(g *grammar.Grammar) {
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledRules(g))).Render()
}

func leveledRules(g *grammar.Grammar) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: g.Name}}
	ll = append(ll, leveledRule(g.Start(), g.Rules(g.Start()))...)
	others := g.EachNonTerminal(func(A grammar.Symbol, prods []grammar.Production) interface{} {
		if A == g.Start() {
			return pterm.LeveledList(nil)
		}
		return leveledRule(A, prods)
	})
	for _, items := range others {
		ll = append(ll, items.(pterm.LeveledList)...)
	}
	return ll
}

func leveledRule(A grammar.Symbol, prods []grammar.Production) pterm.LeveledList {
	if len(prods) == 0 {
		return nil
	}
	ll := pterm.LeveledList{{Level: 1, Text: A.Name}}
	for _, p := range prods {
		ll = append(ll, pterm.LeveledListItem{Level: 2, Text: p.String()})
	}
	return ll
}

func printCheck(s *Session, words []string) error {
	ok, err := s.Check(words)
	if err != nil {
		return err
	}
	sentence := strings.Join(words, " ")
	if ok {
		pterm.Info.Printf("%q is a sentence of %s\n", sentence, s.name)
	} else {
		pterm.Info.Printf("%q is not a sentence of %s\n", sentence, s.name)
	}
	return nil
}
