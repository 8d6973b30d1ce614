// Package exchange submits a single operator turn to a model and normalises the outcome
// into a displayable Result. No error escapes Submit.
package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/viant/bedrockchat/genai/llm"
	elog "github.com/viant/bedrockchat/internal/log"
)

// Advisory texts shown to the operator per failure kind.
const (
	AccessDeniedAdvisory = "Your AWS account doesn't have permission to use this model. Contact your administrator."
	ThrottlingAdvisory   = "Too many requests. Please wait a moment and try again."
	ValidationAdvisory   = "There was a validation error with your request. Check your model ID and parameters."
	unknownAdvisory      = "Something went wrong: %v"
)

// Usage is the provider-reported token count of one exchange.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Failure describes a classified exchange failure.
type Failure struct {
	Kind    llm.ErrorKind `json:"kind"`
	Message string        `json:"message"`
	Cause   error         `json:"-"`
}

// Result is either a reply with usage or a failure.
type Result struct {
	ID      string   `json:"id"`
	Reply   string   `json:"reply,omitempty"`
	Usage   *Usage   `json:"usage,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Succeeded reports whether the exchange produced a reply.
func (r *Result) Succeeded() bool {
	return r.Failure == nil
}

// Text returns the reply, or the failure advisory.
func (r *Result) Text() string {
	if r.Failure != nil {
		return r.Failure.Message
	}
	return r.Reply
}

// Client owns the model handle and the immutable inference options.
type Client struct {
	model   llm.Model
	options llm.Options
}

// New creates an exchange client. options are copied and never mutated.
func New(model llm.Model, options *llm.Options) *Client {
	ret := &Client{model: model}
	if options != nil {
		ret.options = *options
	}
	return ret
}

// Submit sends turn as a single user message and returns the classified outcome.
func (c *Client) Submit(ctx context.Context, turn string) (result *Result) {
	result = &Result{ID: uuid.New().String()}
	defer func() {
		if r := recover(); r != nil {
			result.Reply = ""
			result.Usage = nil
			result.Failure = newFailure(fmt.Errorf("model panic: %v", r))
			elog.Publish(elog.ExchangeError, errorPayload(result))
		}
	}()

	options := c.options
	request := &llm.GenerateRequest{
		Messages: []llm.Message{llm.NewUserMessage(turn)},
		Options:  &options,
	}
	elog.Publish(elog.ExchangeInput, map[string]interface{}{
		"id":      result.ID,
		"model":   options.Model,
		"request": request,
	})

	response, err := c.model.Generate(ctx, request)
	if err == nil {
		err = c.extract(response, result)
	}
	if err != nil {
		result.Failure = newFailure(err)
		elog.Publish(elog.ExchangeError, errorPayload(result))
		return result
	}
	elog.Publish(elog.ExchangeOutput, result)
	return result
}

func (c *Client) extract(response *llm.GenerateResponse, result *Result) error {
	if response == nil || len(response.Choices) == 0 {
		return fmt.Errorf("model returned no choices")
	}
	text, ok := response.Choices[0].Message.FirstText()
	if !ok {
		return fmt.Errorf("model returned no text content")
	}
	result.Reply = text
	result.Usage = &Usage{}
	if response.Usage != nil {
		result.Usage.InputTokens = response.Usage.PromptTokens
		result.Usage.OutputTokens = response.Usage.CompletionTokens
	}
	return nil
}

func newFailure(err error) *Failure {
	kind := llm.KindOf(err)
	return &Failure{Kind: kind, Message: Advisory(kind, err), Cause: err}
}

// Advisory returns the operator-facing text for a failure kind.
func Advisory(kind llm.ErrorKind, err error) string {
	switch kind {
	case llm.KindAccessDenied:
		return AccessDeniedAdvisory
	case llm.KindThrottling:
		return ThrottlingAdvisory
	case llm.KindValidation:
		return ValidationAdvisory
	default:
		return fmt.Sprintf(unknownAdvisory, err)
	}
}

func errorPayload(result *Result) map[string]interface{} {
	payload := map[string]interface{}{
		"id":   result.ID,
		"kind": result.Failure.Kind.String(),
	}
	if result.Failure.Cause != nil {
		payload["error"] = result.Failure.Cause.Error()
	}
	return payload
}
