package provider

const (
	// ProviderBedrockConverse identifies the AWS Bedrock Converse API
	ProviderBedrockConverse = "bedrock/converse"
)
