package bedrockchat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/google/gops/agent"
	"github.com/google/uuid"
	"github.com/viant/bedrockchat/genai/exchange"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
	"github.com/viant/bedrockchat/genai/session"
	"github.com/viant/bedrockchat/genai/usage"
	"github.com/viant/bedrockchat/internal/config"

	elog "github.com/viant/bedrockchat/internal/log"
)

// ChatCmd handles the interactive chat.
type ChatCmd struct {
	*Options
	cli *CLI
}

func (c *ChatCmd) Execute() int {
	out := c.cli.out
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interrupted := c.watchSignals(ctx, cancel)

	// Diagnostics agent ------------------------------------------------------
	if c.Diag {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(out, "warning: unable to start diagnostics agent: %v\n", err)
		} else {
			defer agent.Close()
		}
	}

	// Event log ---------------------------------------------------------------
	if c.Log != "" {
		if w, err := os.OpenFile(c.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			defer w.Close()
			stop := elog.FileSink(w)
			defer stop()
		} else {
			fmt.Fprintf(out, "warning: unable to open log file %s: %v\n", c.Log, err)
		}
	}

	// Configuration -----------------------------------------------------------
	cfg, err := config.Load(ctx, c.Config)
	if interrupted.Load() {
		session.Interrupted(out)
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return ExitFailure
	}
	profile, err := cfg.Profile(c.Model)
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return ExitFailure
	}

	// Connection --------------------------------------------------------------
	session.Greet(out, profile.Persona, profile.Model.Model)
	fmt.Fprintln(out, "Connecting to AWS Bedrock...")
	aggregator := &usage.Aggregator{}
	profile.Model.UsageListener = aggregator.OnUsage
	model, err := c.cli.factory.CreateModel(ctx, &profile.Model)
	if interrupted.Load() {
		session.Interrupted(out)
		return ExitOK
	}
	if err != nil {
		c.startupFailure(err, profile.Model.EnvKeys)
		return ExitFailure
	}
	fmt.Fprintln(out, "SUCCESS: Connected to AWS Bedrock!")

	sessionID := uuid.New().String()
	elog.Publish(elog.SessionStart, map[string]interface{}{
		"id":      sessionID,
		"profile": profile.ID,
		"model":   profile.Model.Model,
		"region":  profile.Model.Region,
	})
	sess := session.New(exchange.New(model, profile.Model.Inference()), profile.Persona, c.cli.in, out)
	code := c.run(ctx, sess, interrupted)
	input, output := aggregator.Totals()
	elog.Publish(elog.SessionEnd, map[string]interface{}{
		"id":           sessionID,
		"turns":        sess.Turns(),
		"inputTokens":  input,
		"outputTokens": output,
		"models":       aggregator.Keys(),
		"perModel":     aggregator.Snapshot(),
	})
	return code
}

// watchSignals cancels ctx on the first operator interrupt. The returned flag tells an
// interrupt apart from other cancellations.
func (c *ChatCmd) watchSignals(ctx context.Context, cancel context.CancelFunc) *atomic.Bool {
	interrupted := &atomic.Bool{}
	go func() {
		select {
		case <-c.cli.signals:
			interrupted.Store(true)
			cancel()
		case <-ctx.Done():
		}
	}()
	return interrupted
}

// run drives the session until it ends or the operator interrupts the process.
func (c *ChatCmd) run(ctx context.Context, sess *session.Session, interrupted *atomic.Bool) int {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%v", r)
			}
		}()
		done <- sess.Run(ctx)
	}()
	select {
	case err := <-done:
		if interrupted.Load() {
			sess.Interrupted()
			return ExitOK
		}
		if err != nil {
			c.cli.unexpected(err)
			return ExitFailure
		}
		return ExitOK
	case <-ctx.Done():
		sess.Interrupted()
		return ExitOK
	}
}

func (c *ChatCmd) startupFailure(err error, keys converse.EnvKeys) {
	out := c.cli.out
	names := converse.DefaultEnvKeys()
	if keys.AccessKeyID != "" {
		names.AccessKeyID = keys.AccessKeyID
	}
	if keys.SecretAccessKey != "" {
		names.SecretAccessKey = keys.SecretAccessKey
	}
	var missing *converse.MissingEnvError
	if errors.As(err, &missing) {
		fmt.Fprintf(out, "ERROR: Missing environment variable: %s\n", missing.Name)
		fmt.Fprintf(out, "Please set %s and %s\n", names.AccessKeyID, names.SecretAccessKey)
		return
	}
	fmt.Fprintln(out, "ERROR: Could not connect to AWS Bedrock")
	fmt.Fprintf(out, "Error details: %v\n", err)
	fmt.Fprintln(out, "\nTroubleshooting tips:")
	fmt.Fprintf(out, "1. Did you set your AWS credentials? (%s and %s)\n", names.AccessKeyID, names.SecretAccessKey)
	fmt.Fprintln(out, "2. Are you connected to the internet?")
	fmt.Fprintln(out, "3. Are your credentials correct?")
}
