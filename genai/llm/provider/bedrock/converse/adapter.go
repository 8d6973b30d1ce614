package converse

import (
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/viant/bedrockchat/genai/llm"
)

// ToRequest converts an llm.GenerateRequest to a Bedrock ConverseInput
func ToRequest(model string, request *llm.GenerateRequest) (*bedrockruntime.ConverseInput, error) {
	if len(request.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(model),
	}
	if request.Options != nil {
		if request.Options.MaxTokens < 0 || request.Options.MaxTokens > math.MaxInt32 {
			return nil, fmt.Errorf("maxTokens %v out of range", request.Options.MaxTokens)
		}
		if request.Options.Model != "" {
			input.ModelId = aws.String(request.Options.Model)
		}
		input.InferenceConfig = &types.InferenceConfiguration{
			Temperature: aws.Float32(float32(request.Options.Temperature)),
			MaxTokens:   aws.Int32(int32(request.Options.MaxTokens)),
			TopP:        aws.Float32(float32(request.Options.TopP)),
		}
	}
	for _, msg := range request.Messages {
		role, err := toRole(msg.Role)
		if err != nil {
			return nil, err
		}
		var blocks []types.ContentBlock
		for _, item := range msg.Items {
			if item.Type != llm.ContentTypeText {
				return nil, fmt.Errorf("unsupported content type: %v", item.Type)
			}
			text := item.Text
			if text == "" {
				text = item.Data
			}
			blocks = append(blocks, &types.ContentBlockMemberText{Value: text})
		}
		if len(blocks) == 0 && msg.Content != "" {
			blocks = append(blocks, &types.ContentBlockMemberText{Value: msg.Content})
		}
		input.Messages = append(input.Messages, types.Message{Role: role, Content: blocks})
	}
	return input, nil
}

func toRole(role llm.MessageRole) (types.ConversationRole, error) {
	switch role {
	case llm.RoleUser:
		return types.ConversationRoleUser, nil
	case llm.RoleAssistant:
		return types.ConversationRoleAssistant, nil
	}
	return "", fmt.Errorf("unsupported message role: %v", role)
}

// ToLLMSResponse converts a ConverseOutput to llm.GenerateResponse. Absent usage
// counters are reported as zero.
func ToLLMSResponse(model string, output *bedrockruntime.ConverseOutput) (*llm.GenerateResponse, error) {
	if output == nil {
		return nil, fmt.Errorf("empty converse output")
	}
	member, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok || member == nil {
		return nil, fmt.Errorf("converse output carried no message")
	}
	message := llm.Message{Role: llm.RoleAssistant}
	for _, block := range member.Value.Content {
		text, ok := block.(*types.ContentBlockMemberText)
		if !ok {
			continue
		}
		message.Items = append(message.Items, llm.NewTextContent(text.Value))
	}
	if len(message.Items) == 0 {
		return nil, fmt.Errorf("converse output message had no text content")
	}
	message.Content = message.Items[0].Text

	response := &llm.GenerateResponse{
		Model: model,
		Choices: []llm.Choice{{
			Index:        0,
			Message:      message,
			FinishReason: string(output.StopReason),
		}},
		Usage: &llm.Usage{},
	}
	if usage := output.Usage; usage != nil {
		response.Usage.PromptTokens = int(aws.ToInt32(usage.InputTokens))
		response.Usage.CompletionTokens = int(aws.ToInt32(usage.OutputTokens))
		response.Usage.TotalTokens = int(aws.ToInt32(usage.TotalTokens))
	}
	if response.Usage.TotalTokens == 0 {
		response.Usage.TotalTokens = response.Usage.PromptTokens + response.Usage.CompletionTokens
	}
	return response, nil
}
