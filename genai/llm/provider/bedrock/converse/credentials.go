package converse

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	authAws "github.com/viant/scy/auth/aws"
)

// Strategy names a credential resolution path.
type Strategy string

const (
	// StrategyEnv reads static credentials from required environment variables.
	StrategyEnv Strategy = "env"
	// StrategyAmbient relies on the AWS default credential chain.
	StrategyAmbient Strategy = "ambient"
	// StrategySecret loads credentials from a scy secret resource.
	StrategySecret Strategy = "secret"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyEnv, StrategyAmbient, StrategySecret:
		return true
	}
	return false
}

// EnvKeys holds the environment variable names read by StrategyEnv.
type EnvKeys struct {
	AccessKeyID     string `yaml:"accessKeyID,omitempty" json:"accessKeyID,omitempty" toml:"accessKeyID,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty" json:"secretAccessKey,omitempty" toml:"secretAccessKey,omitempty"`
	SessionToken    string `yaml:"sessionToken,omitempty" json:"sessionToken,omitempty" toml:"sessionToken,omitempty"`
}

// DefaultEnvKeys returns the standard AWS variable names.
func DefaultEnvKeys() EnvKeys {
	return EnvKeys{
		AccessKeyID:     "AWS_ACCESS_KEY_ID",
		SecretAccessKey: "AWS_SECRET_ACCESS_KEY",
		SessionToken:    "AWS_SESSION_TOKEN",
	}
}

// MissingEnvError reports a required, absent environment variable.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing environment variable: %s", e.Name)
}

func (c *Client) loadAwsConfig(ctx context.Context) (*aws.Config, error) {
	switch c.Credentials {
	case StrategyEnv:
		provider, err := staticProvider(c.EnvKeys)
		if err != nil {
			return nil, err
		}
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(c.Region),
			config.WithCredentialsProvider(provider))
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return &cfg, nil
	case StrategySecret:
		if c.CredentialsURL == "" {
			return nil, fmt.Errorf("credentialsURL is required for %q credentials", StrategySecret)
		}
		generic, err := c.secrets.GetCredentials(ctx, c.CredentialsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials %v: %w", c.CredentialsURL, err)
		}
		awsConfig, err := authAws.NewConfig(ctx, &generic.Aws)
		if err != nil {
			return nil, fmt.Errorf("failed to build aws config: %w", err)
		}
		if awsConfig.Region == "" {
			awsConfig.Region = c.Region
		}
		return awsConfig, nil
	case StrategyAmbient:
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(c.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return &cfg, nil
	default:
		return nil, fmt.Errorf("unsupported credentials strategy: %q", c.Credentials)
	}
}

func staticProvider(keys EnvKeys) (aws.CredentialsProvider, error) {
	accessKey, err := requireEnv(keys.AccessKeyID)
	if err != nil {
		return nil, err
	}
	secretKey, err := requireEnv(keys.SecretAccessKey)
	if err != nil {
		return nil, err
	}
	var token string
	if keys.SessionToken != "" {
		token = os.Getenv(keys.SessionToken)
	}
	return credentials.NewStaticCredentialsProvider(accessKey, secretKey, token), nil
}

func requireEnv(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", &MissingEnvError{Name: name}
	}
	return value, nil
}

// verifyCredentials resolves credentials once so that a broken chain fails at startup.
func verifyCredentials(ctx context.Context, cfg *aws.Config) error {
	if cfg.Credentials == nil {
		return fmt.Errorf("no aws credentials configured")
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return fmt.Errorf("failed to retrieve aws credentials: %w", err)
	}
	return nil
}
