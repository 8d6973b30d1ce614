package llm

import "context"

// Model generates a single response for a request; implementations own the transport.
type Model interface {
	Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error)
}
