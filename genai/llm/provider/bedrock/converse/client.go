package converse

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	basecfg "github.com/viant/bedrockchat/genai/llm/provider/base"
	"github.com/viant/scy/cred/secret"
)

const (
	providerName  = "bedrock/converse"
	defaultRegion = "us-east-1"
)

// ConverseAPI is the subset of the Bedrock runtime client used by Client.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Client represents a Bedrock Converse API client
type Client struct {
	API    ConverseAPI
	Model  string
	Config *aws.Config
	// UsageListener receives token usage information per invocation
	UsageListener  basecfg.UsageListener
	secrets        *secret.Service
	Region         string
	Credentials    Strategy
	CredentialsURL string
	EnvKeys        EnvKeys
}

// NewClient creates a new Converse client; credentials are resolved once here and held
// for the client's lifetime.
func NewClient(ctx context.Context, model string, options ...ClientOption) (*Client, error) {
	client := &Client{
		Model:       model,
		Region:      defaultRegion,
		Credentials: StrategyEnv,
		EnvKeys:     DefaultEnvKeys(),
		secrets:     secret.New(),
	}
	for _, option := range options {
		option(client)
	}
	if client.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if client.API != nil {
		return client, nil
	}
	if client.Config == nil {
		cfg, err := client.loadAwsConfig(ctx)
		if err != nil {
			return nil, err
		}
		client.Config = cfg
	}
	if err := verifyCredentials(ctx, client.Config); err != nil {
		return nil, err
	}
	client.API = bedrockruntime.NewFromConfig(*client.Config)
	return client, nil
}
