package provider

import (
	"context"
	"math"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
)

type nopAPI struct{}

func (nopAPI) Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	return &bedrockruntime.ConverseOutput{}, nil
}

func TestFactory_CreateModel(t *testing.T) {
	type testCase struct {
		name      string
		options   *Options
		expectErr bool
	}
	cases := []testCase{
		{
			name:    "bedrock converse",
			options: &Options{Provider: ProviderBedrockConverse, Model: "amazon.nova-lite-v1:0", Region: "us-east-1"},
		},
		{
			name:      "empty provider",
			options:   &Options{Model: "amazon.nova-lite-v1:0"},
			expectErr: true,
		},
		{
			name:      "unsupported provider",
			options:   &Options{Provider: "openai", Model: "gpt"},
			expectErr: true,
		},
	}
	factory := New(WithConverseOptions(converse.WithAPI(nopAPI{})))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model, err := factory.CreateModel(context.Background(), tc.options)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			client, ok := model.(*converse.Client)
			if assert.True(t, ok) {
				assert.EqualValues(t, tc.options.Model, client.Model)
				assert.EqualValues(t, tc.options.Region, client.Region)
			}
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	valid := func() Options {
		return Options{Provider: ProviderBedrockConverse, Model: "m", Temperature: 0.7, MaxTokens: 512, TopP: 0.9}
	}
	type testCase struct {
		name      string
		mutate    func(o *Options)
		expectErr bool
	}
	cases := []testCase{
		{name: "valid", mutate: func(o *Options) {}},
		{name: "boundary values", mutate: func(o *Options) { o.Temperature = 0; o.TopP = 1 }},
		{name: "missing model", mutate: func(o *Options) { o.Model = "" }, expectErr: true},
		{name: "temperature too high", mutate: func(o *Options) { o.Temperature = 1.5 }, expectErr: true},
		{name: "negative topP", mutate: func(o *Options) { o.TopP = -0.1 }, expectErr: true},
		{name: "zero max tokens", mutate: func(o *Options) { o.MaxTokens = 0 }, expectErr: true},
		{name: "max tokens overflow", mutate: func(o *Options) { o.MaxTokens = 3000000000 }, expectErr: true},
		{name: "max tokens upper bound", mutate: func(o *Options) { o.MaxTokens = math.MaxInt32 }},
		{name: "unknown credentials", mutate: func(o *Options) { o.Credentials = "magic" }, expectErr: true},
		{name: "secret without url", mutate: func(o *Options) { o.Credentials = converse.StrategySecret }, expectErr: true},
		{name: "other provider", mutate: func(o *Options) { o.Provider = "ollama" }, expectErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			options := valid()
			tc.mutate(&options)
			err := options.Validate()
			assert.EqualValues(t, tc.expectErr, err != nil)
		})
	}
}
