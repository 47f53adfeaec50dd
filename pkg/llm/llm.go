// Package llm routes the duck's language-model requests through OpenRouter.
//
// The package abstracts chat completions behind a Provider interface so the
// Router's three operations (comfort phrase, code help, contextual help) can
// be tested against a mock, and a different OpenAI-compatible endpoint can be
// substituted without changing callers.
//
// Example usage:
//
//	client, _ := llm.NewClient(
//	    llm.WithAPIKey(os.Getenv("OPENROUTER_API_KEY")),
//	)
//	router := llm.NewRouter(client, nil)
//
//	phrase := router.ComfortingPhrase(ctx)
package llm

import "context"

// Role defines message roles in a conversation.
type Role string

const (
	// RoleSystem is for system instructions.
	RoleSystem Role = "system"

	// RoleUser is for user messages.
	RoleUser Role = "user"

	// RoleAssistant is for assistant responses.
	RoleAssistant Role = "assistant"
)

// Message represents a chat message in a conversation.
type Message struct {
	// Role identifies the message sender.
	Role Role

	// Content is the text content of the message.
	Content string
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the configured default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls response randomness.
	Temperature float64
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatResponse is a chat completion result.
type ChatResponse struct {
	// Content is the assistant's reply text.
	Content string

	// FinishReason explains why generation stopped.
	FinishReason string

	// Usage reports token counts.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// LatencyMs is the round-trip time in milliseconds.
	LatencyMs int64
}

// Provider is the chat completion interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}
