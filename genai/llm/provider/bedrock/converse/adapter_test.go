package converse

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/viant/bedrockchat/genai/llm"
)

func TestToRequest(t *testing.T) {
	input, err := ToRequest("amazon.nova-lite-v1:0", testRequest("What is machine learning?"))
	if !assert.NoError(t, err) {
		return
	}
	assert.EqualValues(t, "amazon.nova-lite-v1:0", aws.ToString(input.ModelId))
	if assert.Len(t, input.Messages, 1) {
		msg := input.Messages[0]
		assert.EqualValues(t, types.ConversationRoleUser, msg.Role)
		if assert.Len(t, msg.Content, 1) {
			text, ok := msg.Content[0].(*types.ContentBlockMemberText)
			if assert.True(t, ok) {
				assert.EqualValues(t, "What is machine learning?", text.Value)
			}
		}
	}
	if assert.NotNil(t, input.InferenceConfig) {
		assert.InDelta(t, 0.7, aws.ToFloat32(input.InferenceConfig.Temperature), 0.0001)
		assert.EqualValues(t, 512, aws.ToInt32(input.InferenceConfig.MaxTokens))
		assert.InDelta(t, 0.9, aws.ToFloat32(input.InferenceConfig.TopP), 0.0001)
	}
}

func TestToRequest_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		request *llm.GenerateRequest
	}{
		{name: "no messages", request: &llm.GenerateRequest{}},
		{name: "unknown role", request: &llm.GenerateRequest{Messages: []llm.Message{llm.NewTextMessage("system", "x")}}},
		{name: "max tokens overflow", request: &llm.GenerateRequest{Messages: []llm.Message{llm.NewUserMessage("x")}, Options: &llm.Options{MaxTokens: 3000000000}}},
		{name: "non text item", request: &llm.GenerateRequest{Messages: []llm.Message{{Role: llm.RoleUser, Items: []llm.ContentItem{{Type: "image"}}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToRequest("m", tc.request)
			assert.Error(t, err)
		})
	}
}

func TestToRequest_ModelOverride(t *testing.T) {
	request := testRequest("hi")
	request.Options.Model = "anthropic.claude-3-haiku-20240307-v1:0"
	input, err := ToRequest("amazon.nova-lite-v1:0", request)
	assert.NoError(t, err)
	assert.EqualValues(t, "anthropic.claude-3-haiku-20240307-v1:0", aws.ToString(input.ModelId))
}
