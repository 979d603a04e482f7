// Package chat relays conversations to an OpenAI-compatible completion
// endpoint under a fixed system prompt.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Role identifies the speaker of a turn. Model turns are the assistant's replies.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a new user message and the turns before it, oldest first.
type Request struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// Validate checks the message and the roles in the history.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	for i, t := range r.History {
		if t.Role != RoleUser && t.Role != RoleModel {
			return fmt.Errorf("%w: history[%d] has unknown role %q", ErrInvalidInput, i, t.Role)
		}
	}
	return nil
}

// Response carries the reply, or an error message when the provider failed.
type Response struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// System defines the public contract for the chat assistant.
type System interface {
	Handler() *Handler
	Send(ctx context.Context, req Request) (string, error)
}

type assistant struct {
	client openai.Client
	cfg    *Config
	logger *slog.Logger
}

// New creates the chat System from a finalized config.
func New(cfg *Config, logger *slog.Logger) System {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.TimeoutDuration()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &assistant{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger.With("system", "chat"),
	}
}

func (a *assistant) Handler() *Handler {
	return NewHandler(a, a.logger)
}

func (a *assistant) Send(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if !a.cfg.Enabled() {
		return "", ErrNotConfigured
	}

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: a.messages(req),
		Model:    openai.ChatModel(a.cfg.Model),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: %w", ErrUpstream, errors.New("empty completion"))
	}

	a.logger.Debug("chat reply", "history", len(req.History), "model", completion.Model)
	return completion.Choices[0].Message.Content, nil
}

// messages builds the prompt: system prompt, the most recent history turns,
// then the new message.
func (a *assistant) messages(req Request) []openai.ChatCompletionMessageParamUnion {
	history := req.History
	if n := a.cfg.MaxHistory; len(history) > n {
		history = history[len(history)-n:]
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	msgs = append(msgs, openai.SystemMessage(a.cfg.SystemPrompt))
	for _, t := range history {
		if t.Role == RoleModel {
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		} else {
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}
	return append(msgs, openai.UserMessage(req.Message))
}
