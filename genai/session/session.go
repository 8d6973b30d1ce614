package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/viant/bedrockchat/genai/exchange"
)

const separatorWidth = 60

// ExitKeywords terminate the loop (case-insensitive).
var ExitKeywords = []string{"quit", "exit", "bye", "goodbye"}

// HelpKeyword prints the tips block.
const HelpKeyword = "help"

// DefaultTips are shown for every persona before persona-specific tips.
var DefaultTips = []string{
	"Ask questions: 'What is machine learning?'",
	"Request explanations: 'Explain quantum computing like I'm 5'",
	"Get creative: 'Write a haiku about databases'",
	"Solve problems: 'How do I make chocolate chip cookies?'",
	"Analyze text: 'What's the sentiment of this review: ...'",
}

const (
	farewellText    = "Thanks for chatting! Goodbye!"
	interruptedText = "Chat interrupted. Goodbye!"
	emptyInputText  = "Please type a message!"
	promptText      = "You: "
)

// Exchanger submits a single turn; it never returns an error.
type Exchanger interface {
	Submit(ctx context.Context, turn string) *exchange.Result
}

// Persona controls how the assistant is presented.
type Persona struct {
	Name      string   `yaml:"name" json:"name" toml:"name"`
	Title     string   `yaml:"title" json:"title" toml:"title"`
	ShowModel bool     `yaml:"showModel,omitempty" json:"showModel,omitempty" toml:"showModel,omitempty"`
	Tips      []string `yaml:"tips,omitempty" json:"tips,omitempty" toml:"tips,omitempty"`
}

// Session drives the read-evaluate-print cycle. Turns are independent: nothing from a
// previous turn is sent with the next one.
type Session struct {
	exchanger Exchanger
	persona   Persona
	reader    *bufio.Reader
	out       io.Writer
	turns     atomic.Int64
}

func (p *Persona) init() {
	if p.Name == "" {
		p.Name = "Assistant"
	}
	if p.Title == "" {
		p.Title = p.Name
	}
}

// New creates a session reading operator lines from in and writing to out.
func New(exchanger Exchanger, persona Persona, in io.Reader, out io.Writer) *Session {
	persona.init()
	return &Session{
		exchanger: exchanger,
		persona:   persona,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Turns returns the number of turns submitted so far.
func (s *Session) Turns() int { return int(s.turns.Load()) }

// Greet prints the welcome banner for persona.
func Greet(out io.Writer, persona Persona, model string) {
	persona.init()
	rule := strings.Repeat("=", separatorWidth)
	_, _ = fmt.Fprintln(out, rule)
	_, _ = fmt.Fprintf(out, "Welcome to %s Chat!\n", persona.Title)
	_, _ = fmt.Fprintln(out, rule)
	if persona.ShowModel && model != "" {
		_, _ = fmt.Fprintf(out, "Using model: %s\n", model)
	}
	_, _ = fmt.Fprintln(out, "Type your messages and press Enter to send.")
	_, _ = fmt.Fprintln(out, "Type 'quit', 'exit', or 'bye' to end the conversation.")
	_, _ = fmt.Fprintln(out, "Type 'help' for tips on what to ask.")
	_, _ = fmt.Fprintln(out, rule)
}

// Run reads input until an exit keyword, end of input, or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printf("\n%s", promptText)
		line, readErr := s.reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if readErr == io.EOF && line == "" {
			s.farewell()
			return nil
		}
		if done := s.handle(ctx, line); done {
			return nil
		}
		if readErr == io.EOF {
			s.farewell()
			return nil
		}
	}
}

// handle processes one input line and reports whether the loop should end.
func (s *Session) handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	command := strings.ToLower(input)
	switch {
	case lo.Contains(ExitKeywords, command):
		s.farewell()
		return true
	case command == HelpKeyword:
		s.help()
	case input == "":
		s.println(emptyInputText)
	default:
		s.converse(ctx, input)
	}
	return false
}

func (s *Session) converse(ctx context.Context, turn string) {
	s.turns.Add(1)
	s.printf("\n%s is thinking...\n", s.persona.Name)
	result := s.exchanger.Submit(ctx, turn)
	if result.Succeeded() && result.Usage != nil {
		s.printf("\n[Token Usage] Input: %d, Output: %d\n", result.Usage.InputTokens, result.Usage.OutputTokens)
	}
	s.printf("\n%s: %s\n", s.persona.Name, result.Text())
	s.println(strings.Repeat("-", separatorWidth))
}

func (s *Session) help() {
	s.println("\nHere are some things you can try:")
	for _, tip := range append(append([]string{}, DefaultTips...), s.persona.Tips...) {
		s.printf("- %s\n", tip)
	}
}

func (s *Session) farewell() {
	s.printf("\n%s\n", farewellText)
}

// Interrupted prints the farewell used when the operator aborts the process.
func (s *Session) Interrupted() {
	Interrupted(s.out)
}

// Interrupted prints the interrupt farewell to out; used when no session is running yet.
func Interrupted(out io.Writer) {
	_, _ = fmt.Fprintf(out, "\n\n%s\n", interruptedText)
}

func (s *Session) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
