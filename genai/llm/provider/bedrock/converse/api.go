package converse

import (
	"context"
	"fmt"

	"github.com/viant/bedrockchat/genai/llm"
)

const opConverse = "converse"

// Generate sends a single converse request to Bedrock. The call is made once; failures are
// returned as *llm.Error carrying their classified kind.
func (c *Client) Generate(ctx context.Context, request *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if c.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	input, err := ToRequest(c.Model, request)
	if err != nil {
		return nil, llm.NewError(llm.KindValidation, providerName, opConverse, "", err)
	}

	output, err := c.API.Converse(ctx, input)
	if err != nil {
		kind, code := Classify(err)
		return nil, llm.NewError(kind, providerName, opConverse, code, err)
	}

	model := c.Model
	if request.Options != nil && request.Options.Model != "" {
		model = request.Options.Model
	}
	response, err := ToLLMSResponse(model, output)
	if err != nil {
		return nil, llm.NewError(llm.KindUnknown, providerName, opConverse, "", err)
	}
	if c.UsageListener != nil && response.Usage != nil && response.Usage.TotalTokens > 0 {
		c.UsageListener.OnUsage(model, response.Usage)
	}
	return response, nil
}
