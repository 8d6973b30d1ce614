package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/bedrockchat/genai/llm/provider"
	"github.com/viant/bedrockchat/genai/llm/provider/bedrock/converse"
)

func TestLoad_Default(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if !assert.NoError(t, err) {
		return
	}
	assert.EqualValues(t, "claude", cfg.Default)
	assert.EqualValues(t, []string{"claude", "nova"}, cfg.IDs())

	type testCase struct {
		id          string
		expectModel string
		expectName  string
		expectShow  bool
	}
	cases := []testCase{
		{id: "", expectModel: "anthropic.claude-3-haiku-20240307-v1:0", expectName: "Claude"},
		{id: "claude", expectModel: "anthropic.claude-3-haiku-20240307-v1:0", expectName: "Claude"},
		{id: "nova", expectModel: "amazon.nova-lite-v1:0", expectName: "Nova", expectShow: true},
	}
	for _, tc := range cases {
		t.Run("profile "+tc.id, func(t *testing.T) {
			profile, err := cfg.Profile(tc.id)
			if !assert.NoError(t, err) {
				return
			}
			assert.EqualValues(t, tc.expectModel, profile.Model.Model)
			assert.EqualValues(t, tc.expectName, profile.Persona.Name)
			assert.EqualValues(t, tc.expectShow, profile.Persona.ShowModel)
			assert.EqualValues(t, provider.ProviderBedrockConverse, profile.Model.Provider)
			assert.EqualValues(t, "us-east-1", profile.Model.Region)
			assert.EqualValues(t, converse.StrategyEnv, profile.Model.Credentials)
			assert.EqualValues(t, 0.7, profile.Model.Temperature)
			assert.EqualValues(t, 512, profile.Model.MaxTokens)
			assert.EqualValues(t, 0.9, profile.Model.TopP)
		})
	}
}

func TestConfig_Profile_IsCopy(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if !assert.NoError(t, err) {
		return
	}
	profile, err := cfg.Profile("nova")
	assert.NoError(t, err)
	profile.Model.Model = "changed"
	profile.Persona.Tips[0] = "changed"

	again, _ := cfg.Profile("nova")
	assert.EqualValues(t, "amazon.nova-lite-v1:0", again.Model.Model)
	assert.EqualValues(t, "Ask about images: Nova supports multimodal inputs!", again.Persona.Tips[0])

	_, err = cfg.Profile("gpt")
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	type testCase struct {
		name        string
		file        string
		content     string
		expectErr   bool
		expectID    string
		expectModel string
		expectCreds converse.Strategy
	}
	cases := []testCase{
		{
			name: "yaml with defaults",
			file: "chat.yaml",
			content: `profiles:
  - id: haiku
    model:
      model: anthropic.claude-3-haiku-20240307-v1:0
      credentials: ambient
      temperature: 0.2
      maxTokens: 256
      topP: 0.5
`,
			expectID:    "haiku",
			expectModel: "anthropic.claude-3-haiku-20240307-v1:0",
			expectCreds: converse.StrategyAmbient,
		},
		{
			name:        "json",
			file:        "chat.json",
			content:     `{"default":"lite","profiles":[{"id":"lite","model":{"model":"amazon.nova-lite-v1:0","temperature":0.7,"maxTokens":512,"topP":0.9}}]}`,
			expectID:    "lite",
			expectModel: "amazon.nova-lite-v1:0",
			expectCreds: converse.StrategyEnv,
		},
		{
			name: "toml",
			file: "chat.toml",
			content: `default = "pro"

[[profiles]]
id = "pro"

[profiles.persona]
name = "Nova"
title = "Amazon Nova Pro"

[profiles.model]
model = "amazon.nova-pro-v1:0"
region = "us-west-2"
temperature = 0.5
maxTokens = 1024
topP = 0.9
`,
			expectID:    "pro",
			expectModel: "amazon.nova-pro-v1:0",
			expectCreds: converse.StrategyEnv,
		},
		{
			name:      "out of range temperature",
			file:      "bad.yaml",
			content:   "profiles:\n  - id: x\n    model:\n      model: m\n      temperature: 2\n      maxTokens: 10\n",
			expectErr: true,
		},
		{
			name:      "unknown default",
			file:      "bad-default.yaml",
			content:   "default: other\nprofiles:\n  - id: x\n    model:\n      model: m\n      maxTokens: 10\n",
			expectErr: true,
		},
		{
			name:      "no profiles",
			file:      "empty.yaml",
			content:   "default: x\n",
			expectErr: true,
		},
		{
			name:      "duplicate profile",
			file:      "dup.yaml",
			content:   "profiles:\n  - id: x\n    model: {model: m, maxTokens: 1}\n  - id: x\n    model: {model: m, maxTokens: 1}\n",
			expectErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), tc.file)
			if !assert.NoError(t, os.WriteFile(location, []byte(tc.content), 0644)) {
				return
			}
			cfg, err := Load(context.Background(), location)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			profile, err := cfg.Profile("")
			if !assert.NoError(t, err) {
				return
			}
			assert.EqualValues(t, tc.expectID, profile.ID)
			assert.EqualValues(t, tc.expectModel, profile.Model.Model)
			assert.EqualValues(t, tc.expectCreds, profile.Model.Credentials)
			assert.NotEmpty(t, profile.Model.Region)
			assert.NotEmpty(t, profile.Persona.Name)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_SamplingDefaults(t *testing.T) {
	type testCase struct {
		name              string
		ext               string
		content           string
		expectTemperature float64
		expectTopP        float64
	}
	cases := []testCase{
		{
			name:              "yaml omitted",
			ext:               ".yaml",
			content:           "profiles:\n  - id: x\n    model:\n      model: m\n      maxTokens: 10\n",
			expectTemperature: 0.7,
			expectTopP:        0.9,
		},
		{
			name:              "yaml explicit zero",
			ext:               ".yml",
			content:           "profiles:\n  - id: x\n    model:\n      model: m\n      maxTokens: 10\n      temperature: 0\n      topP: 0\n",
			expectTemperature: 0,
			expectTopP:        0,
		},
		{
			name:              "json partial",
			ext:               ".json",
			content:           `{"profiles":[{"id":"x","model":{"model":"m","maxTokens":10,"temperature":0.2}}]}`,
			expectTemperature: 0.2,
			expectTopP:        0.9,
		},
		{
			name:              "toml omitted",
			ext:               ".toml",
			content:           "[[profiles]]\nid = \"x\"\n\n[profiles.model]\nmodel = \"m\"\nmaxTokens = 10\n",
			expectTemperature: 0.7,
			expectTopP:        0.9,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Decode([]byte(tc.content), tc.ext)
			if !assert.NoError(t, err) {
				return
			}
			profile, err := cfg.Profile("x")
			if !assert.NoError(t, err) {
				return
			}
			assert.EqualValues(t, tc.expectTemperature, profile.Model.Temperature)
			assert.EqualValues(t, tc.expectTopP, profile.Model.TopP)
			assert.EqualValues(t, 10, profile.Model.MaxTokens)
		})
	}
}
