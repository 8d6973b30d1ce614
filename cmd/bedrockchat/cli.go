package bedrockchat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/bedrockchat/genai/llm/provider"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// CLI holds the process collaborators so that tests can substitute console and transport.
type CLI struct {
	in      io.Reader
	out     io.Writer
	signals <-chan os.Signal
	factory *provider.Factory
}

// Option customises a CLI.
type Option func(*CLI)

// WithSignals sets the channel delivering operator interrupts.
func WithSignals(signals <-chan os.Signal) Option {
	return func(c *CLI) { c.signals = signals }
}

// WithFactory overrides the model factory.
func WithFactory(factory *provider.Factory) Option {
	return func(c *CLI) { c.factory = factory }
}

// New creates a CLI reading operator input from in and writing to out.
func New(in io.Reader, out io.Writer, options ...Option) *CLI {
	ret := &CLI{in: in, out: out, factory: provider.New()}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Run parses flags, executes the chat and exits the process with its status code.
func Run(args []string) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	code := New(os.Stdin, os.Stdout, WithSignals(signals)).Execute(args)
	signal.Stop(signals)
	os.Exit(code)
}

// RunWithCommands is the entry point used by the main package.
func RunWithCommands(args []string) {
	Run(args)
}

// Execute parses args and runs the chat, returning the process exit code. Unexpected
// faults are reported without a stack trace.
func (c *CLI) Execute(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c.unexpected(fmt.Errorf("%v", r))
			code = ExitFailure
		}
	}()

	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(c.out, err)
			return ExitOK
		}
		fmt.Fprintf(c.out, "ERROR: %v\n", err)
		return ExitFailure
	}

	// Global version flag: print and exit successfully.
	if opts.Version {
		fmt.Fprintln(c.out, Version())
		return ExitOK
	}
	chat := &ChatCmd{Options: opts, cli: c}
	return chat.Execute()
}

func (c *CLI) unexpected(err error) {
	fmt.Fprintf(c.out, "\nERROR: Unexpected error: %v\n", err)
	fmt.Fprintln(c.out, "Please try again or contact support.")
}
