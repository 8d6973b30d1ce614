package converse

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	basecfg "github.com/viant/bedrockchat/genai/llm/provider/base"
)

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

func WithConfig(config *aws.Config) ClientOption {
	return func(c *Client) {
		c.Config = config
	}
}

func WithRegion(region string) ClientOption {
	return func(c *Client) {
		if region != "" {
			c.Region = region
		}
	}
}

// WithCredentials selects the credential resolution strategy.
func WithCredentials(strategy Strategy) ClientOption {
	return func(c *Client) {
		if strategy != "" {
			c.Credentials = strategy
		}
	}
}

func WithCredentialsURL(credentialsURL string) ClientOption {
	return func(c *Client) {
		c.CredentialsURL = credentialsURL
	}
}

// WithEnvKeys overrides the environment variable names used by StrategyEnv.
func WithEnvKeys(keys EnvKeys) ClientOption {
	return func(c *Client) {
		if keys.AccessKeyID != "" {
			c.EnvKeys.AccessKeyID = keys.AccessKeyID
		}
		if keys.SecretAccessKey != "" {
			c.EnvKeys.SecretAccessKey = keys.SecretAccessKey
		}
		if keys.SessionToken != "" {
			c.EnvKeys.SessionToken = keys.SessionToken
		}
	}
}

// WithAPI injects a pre-built Converse API, skipping AWS configuration.
func WithAPI(api ConverseAPI) ClientOption {
	return func(c *Client) {
		c.API = api
	}
}

// WithUsageListener registers a callback to receive token usage information.
func WithUsageListener(l basecfg.UsageListener) ClientOption {
	return func(c *Client) { c.UsageListener = l }
}
