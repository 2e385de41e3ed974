// Package chat relays per-note conversations to an OpenAI-compatible
// gateway and persists the transcript.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

const (
	connectTimeout = 15 * time.Second
	maxAttempts    = 3

	systemPrompt = `You are Luman, an assistant living inside a note-taking workspace.
You help the user think through the note this conversation is attached to.
Keep answers concise. Use the available tools to read notes, search the
workspace, tag the note, or schedule events when the user asks for it.
Today's date is %s.`
)

// Config carries the gateway settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// SiteURL is sent as the attribution referer, which OpenRouter uses
	// for request accounting.
	SiteURL string
}

// Service implements the ChatService interface over go-openai.
type Service struct {
	chatRepo repositories.ChatRepository
	client   *openai.Client
	model    string
	toolbox  *Toolbox
	logger   *slog.Logger

	// backoffBase is the first retry delay; doubled per attempt.
	backoffBase time.Duration
}

// NewService creates the relay. The HTTP client is given a response
// header timeout so a dead gateway fails the connect attempt instead of
// hanging, while an open stream can run as long as it needs.
func NewService(
	cfg Config,
	chatRepo repositories.ChatRepository,
	toolbox *Toolbox,
	logger *slog.Logger,
) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			base:    &http.Transport{ResponseHeaderTimeout: connectTimeout},
			siteURL: cfg.SiteURL,
		},
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Service{
		chatRepo:    chatRepo,
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		toolbox:     toolbox,
		logger:      logger,
		backoffBase: time.Second,
	}
}

// Relay persists the user message, streams the reply to w, and persists
// the accumulated reply once the stream completes.
func (s *Service) Relay(ctx context.Context, req *services.RelayRequest, w services.StreamWriter) error {
	message := strings.TrimSpace(req.Message)
	if req.NoteID == "" || message == "" {
		return fmt.Errorf("%w: noteId and message are required", domain.ErrValidation)
	}

	if err := s.chatRepo.Append(ctx, &models.ChatMessage{
		NoteID:    req.NoteID,
		Role:      models.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	messages := s.buildMessages(req.History, message)
	registry := s.toolbox.Registry(req.NoteID, req.UserID)

	reply, err := s.streamConversation(ctx, messages, registry, w)

	// Whatever made it to the client is part of the transcript, even if
	// the stream died halfway.
	if reply != "" {
		if saveErr := s.chatRepo.Append(ctx, &models.ChatMessage{
			NoteID:    req.NoteID,
			Role:      models.ChatRoleAssistant,
			Content:   reply,
			CreatedAt: time.Now(),
		}); saveErr != nil {
			s.logger.Error("failed to persist assistant message", "note_id", req.NoteID, "error", saveErr)
		}
	}

	return err
}

// History returns a note's transcript in chronological order.
func (s *Service) History(ctx context.Context, noteID string) ([]models.ChatMessage, error) {
	return s.chatRepo.ListByNote(ctx, noteID)
}

func (s *Service) buildMessages(history []models.HistoryMessage, message string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(systemPrompt, time.Now().Format("2006-01-02")),
	})

	for _, turn := range history {
		if turn.Content == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if turn.Role == string(models.ChatRoleAssistant) {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

// streamConversation runs the model, executing at most one round of tool
// calls before the final answer.
func (s *Service) streamConversation(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
	registry *Registry,
	w services.StreamWriter,
) (string, error) {
	var reply strings.Builder

	for round := 0; ; round++ {
		req := openai.ChatCompletionRequest{
			Model:    s.model,
			Messages: messages,
			Stream:   true,
		}
		if round == 0 {
			req.Tools = registry.Definitions()
		}

		stream, err := s.openStream(ctx, req)
		if err != nil {
			return reply.String(), err
		}

		calls, err := s.consume(stream, &reply, w)
		stream.Close()
		if err != nil {
			return reply.String(), err
		}
		if len(calls) == 0 || round > 0 {
			return reply.String(), nil
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			ToolCalls: calls,
		})
		for _, call := range calls {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    s.runTool(ctx, registry, call),
			})
		}
	}
}

// openStream connects to the gateway, retrying failed connects with an
// exponential backoff. Once a stream is open there are no more retries.
func (s *Service) openStream(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error) {
	backoff := s.backoffBase
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		stream, err := s.client.CreateChatCompletionStream(ctx, req)
		if err == nil {
			return stream, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			s.logger.Warn("gateway connect failed",
				"attempt", attempt,
				"backoff", backoff,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("gateway unavailable after %d attempts: %w", maxAttempts, lastErr)
}

// consume drains one stream, forwarding text deltas to the writer and
// assembling any tool call fragments.
func (s *Service) consume(stream *openai.ChatCompletionStream, reply *strings.Builder, w services.StreamWriter) ([]openai.ToolCall, error) {
	var calls []openai.ToolCall

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return calls, nil
		}
		if err != nil {
			return calls, fmt.Errorf("stream interrupted: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}

		delta := resp.Choices[0].Delta
		if delta.Content != "" {
			reply.WriteString(delta.Content)
			if err := w.WriteChunk(delta.Content); err != nil {
				return calls, err
			}
		}

		for _, fragment := range delta.ToolCalls {
			idx := 0
			if fragment.Index != nil {
				idx = *fragment.Index
			}
			for len(calls) <= idx {
				calls = append(calls, openai.ToolCall{Type: openai.ToolTypeFunction})
			}
			if fragment.ID != "" {
				calls[idx].ID = fragment.ID
			}
			if fragment.Function.Name != "" {
				calls[idx].Function.Name = fragment.Function.Name
			}
			calls[idx].Function.Arguments += fragment.Function.Arguments
		}
	}
}

// runTool executes one tool call and serializes the outcome for the
// model. Tool failures are reported back to the model, not to the user.
func (s *Service) runTool(ctx context.Context, registry *Registry, call openai.ToolCall) string {
	var args map[string]interface{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			s.logger.Warn("malformed tool arguments", "tool", call.Function.Name, "error", err)
			return fmt.Sprintf(`{"error": "malformed arguments: %s"}`, err)
		}
	}

	result, err := registry.Execute(ctx, call.Function.Name, args)
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", call.Function.Name, "error", err)
		encoded, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(encoded)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return `{"error": "unserializable tool result"}`
	}

	s.logger.Info("tool executed", "tool", call.Function.Name)
	return string(encoded)
}

// attributionTransport adds the OpenRouter attribution headers to every
// gateway request.
type attributionTransport struct {
	base    http.RoundTripper
	siteURL string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.siteURL != "" {
		req.Header.Set("HTTP-Referer", t.siteURL)
		req.Header.Set("X-Title", "Luman")
	}
	return t.base.RoundTrip(req)
}
