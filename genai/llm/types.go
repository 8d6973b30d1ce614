package llm

// ContentType defines the supported asset types.
type ContentType string

const (
	ContentTypeText ContentType = "text"
)

// AssetSource defines the way the asset is provided.
type AssetSource string

const (
	SourceRaw AssetSource = "raw"
)

// ContentItem is a universal representation of a content segment in the message.
type ContentItem struct {
	// Type indicates the type of the content.
	Type ContentType `json:"type"`

	// Source indicates how the asset is provided.
	Source AssetSource `json:"source"`

	// Data is the actual content of the asset.
	Data string `json:"data,omitempty"`

	Text string `json:"text,omitempty"`
}

// MessageRole represents the role of the message sender.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

func (m MessageRole) String() string {
	return string(m)
}

// Message is a generic message holding ordered content segments.
type Message struct {
	// Role of the sender (user, assistant)
	Role MessageRole `json:"role"`

	// Items contains ordered content segments.
	Items []ContentItem `json:"items,omitempty"`

	// Content mirrors the first text segment.
	Content string `json:"content,omitempty"`
}

// FirstText returns the first text segment of the message.
func (m *Message) FirstText() (string, bool) {
	for _, item := range m.Items {
		if item.Type != ContentTypeText {
			continue
		}
		if item.Text != "" {
			return item.Text, true
		}
		return item.Data, true
	}
	if m.Content != "" {
		return m.Content, true
	}
	return "", false
}

// GenerateRequest represents a request to a chat-based LLM.
type GenerateRequest struct {
	// Messages is the list of messages in the conversation.
	Messages []Message `json:"messages"`

	// Options contains inference options for the request.
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse represents a response from a chat-based LLM.
type GenerateResponse struct {
	// Choices contains the generated responses.
	Choices []Choice `json:"choices"`

	// Usage contains token usage information.
	Usage *Usage `json:"usage,omitempty"`
	Model string `json:"model,omitempty"`
}

// Choice represents a single response choice from a chat-based LLM.
type Choice struct {
	// Index is the index of the choice.
	Index int `json:"index"`

	// Message is the generated message.
	Message Message `json:"message"`

	// FinishReason is the reason why the generation stopped.
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage contains token usage information.
type Usage struct {
	// PromptTokens is the number of tokens used in the prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens used in the completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used.
	TotalTokens int `json:"total_tokens"`
}

// NewUserMessage creates a new message with the "user" role.
func NewUserMessage(content string) Message {
	return NewTextMessage(RoleUser, content)
}

// NewTextContent creates a new text content item.
func NewTextContent(text string) ContentItem {
	return ContentItem{
		Type:   ContentTypeText,
		Source: SourceRaw,
		Data:   text,
		Text:   text,
	}
}

// NewTextMessage creates a message with a single text segment.
func NewTextMessage(role MessageRole, content string) Message {
	return Message{
		Role:    role,
		Items:   []ContentItem{NewTextContent(content)},
		Content: content,
	}
}
