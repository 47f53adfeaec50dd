package llm

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
)

const comfortSystemPrompt = "You are an empathetic, cute, and slightly quirky Debug Duck. " +
	"A developer is visibly frustrated with their code. Your job is to proactively " +
	"say one short, comforting, or funny distracting sentence (less than 15 words) " +
	"to help them reset. DO NOT offer coding help. Just be a friend."

const codingSystemPrompt = "You are an expert AI Debug Duck. You are helping a developer. " +
	"You will be given a block of code from their screen. Concisely (in 2-3 sentences) " +
	"identify the most likely bug and suggest a fix. Speak in a helpful, friendly tone."

const contextualSystemPrompt = "You are an expert AI Debug Duck. You are helping a developer. " +
	"You will be given their spoken question AND the code on their screen. " +
	"Directly answer their question, using the code for context. " +
	"Be concise, helpful, and friendly. Speak as a companion."

// fallbackPhrases are spoken when the comfort model is unreachable.
var fallbackPhrases = []string{
	"You've got this. I believe in you!",
	"Hey, take a deep breath. Every bug has a solution!",
	"Sometimes the best debugging happens after a short break.",
	"You're smarter than this bug. Trust yourself!",
	"Quack! Remember, even the best coders hit walls sometimes.",
}

// Router routes requests to per-task models on a single provider:
// a high-temperature chat model for comfort phrases and a stronger
// model for code analysis.
type Router struct {
	provider Provider
	logger   *slog.Logger
}

// NewRouter wraps a provider with the per-task model routing.
func NewRouter(provider Provider, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		provider: provider,
		logger:   logger.With("component", "llm.router"),
	}
}

// ComfortingPhrase generates a short encouraging sentence. It never
// returns an error: when no provider is configured or the provider
// fails it falls back to a canned phrase so the duck always has
// something to say.
func (r *Router) ComfortingPhrase(ctx context.Context) string {
	if r.provider == nil {
		return fallbackPhrases[rand.Intn(len(fallbackPhrases))]
	}

	resp, err := r.provider.Chat(ctx, &ChatRequest{
		Messages: []Message{
			NewSystemMessage(comfortSystemPrompt),
			NewUserMessage("Get me a comforting phrase for a frustrated developer."),
		},
		Model:       ComfortModel,
		MaxTokens:   50,
		Temperature: 1.2,
	})
	if err != nil {
		r.logger.Warn("comfort generation failed, using fallback", "error", err)
		return fallbackPhrases[rand.Intn(len(fallbackPhrases))]
	}

	phrase := strings.TrimSpace(resp.Content)
	if phrase == "" {
		return fallbackPhrases[rand.Intn(len(fallbackPhrases))]
	}
	return phrase
}

// Health reports whether the backing model is reachable. Returns
// ErrNoAPIKey when the router runs on canned phrases only.
func (r *Router) Health(ctx context.Context) error {
	if r.provider == nil {
		return ErrNoAPIKey
	}
	return r.provider.Health(ctx)
}

// CodingHelp analyzes code captured from the screen and returns a short
// spoken-friendly hint about the most likely problem.
func (r *Router) CodingHelp(ctx context.Context, code string) (string, error) {
	if r.provider == nil {
		return "", ErrNoAPIKey
	}
	resp, err := r.provider.Chat(ctx, &ChatRequest{
		Messages: []Message{
			NewSystemMessage(codingSystemPrompt),
			NewUserMessage("Here is the code I'm looking at:\n\n" + code),
		},
		Model:       CodingModel,
		MaxTokens:   150,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// ContextualHelp answers a specific question about code captured from
// the screen.
func (r *Router) ContextualHelp(ctx context.Context, code, question string) (string, error) {
	if r.provider == nil {
		return "", ErrNoAPIKey
	}
	resp, err := r.provider.Chat(ctx, &ChatRequest{
		Messages: []Message{
			NewSystemMessage(contextualSystemPrompt),
			NewUserMessage("My question is: '" + question + "'\n\nHere is the code on my screen:\n" + code),
		},
		Model:       CodingModel,
		MaxTokens:   150,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
