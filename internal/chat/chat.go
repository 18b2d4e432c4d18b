// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package chat answers visitor questions through an LLM. Replies are
// rendered from Markdown to sanitized HTML for the frontend widget.
package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/yuin/goldmark"

	"github.com/olegiv/vitrine/internal/i18n"
)

// RequestTimeout bounds one completion round trip.
const RequestTimeout = 60 * time.Second

// MaxMessageLength caps a single visitor message.
const MaxMessageLength = 2000

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("chat: no API key configured")

// Completer produces an assistant reply for a system prompt and a user
// message. Satisfied by the OpenAI client; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// openAICompleter calls the OpenAI chat completions API.
type openAICompleter struct {
	client openai.Client
	model  string
}

func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Service turns visitor messages into sanitized HTML replies.
type Service struct {
	completer Completer
	markdown  goldmark.Markdown
	policy    *bluemonday.Policy
}

// NewService creates a chat service backed by OpenAI. Returns
// ErrNotConfigured when apiKey is empty so the caller can disable the
// endpoint.
func NewService(apiKey, model string) (*Service, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	completer := &openAICompleter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
	return NewServiceWith(completer), nil
}

// NewServiceWith creates a service around an arbitrary Completer.
func NewServiceWith(completer Completer) *Service {
	return &Service{
		completer: completer,
		markdown:  goldmark.New(),
		policy:    bluemonday.UGCPolicy(),
	}
}

// Reply holds one assistant answer in both raw and rendered form.
type Reply struct {
	Text string `json:"reply"`
	HTML string `json:"replyHtml"`
}

// Ask sends a visitor message and returns the assistant reply. The
// system prompt is chosen by language so the assistant answers in the
// visitor's tongue.
func (s *Service) Ask(ctx context.Context, language, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, errors.New("chat: empty message")
	}
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	system := i18n.T(language, "chat.system_prompt")
	text, err := s.completer.Complete(ctx, system, message)
	if err != nil {
		return Reply{}, err
	}

	html, err := s.renderHTML(text)
	if err != nil {
		// Raw text is still usable when rendering fails.
		html = s.policy.Sanitize(text)
	}

	return Reply{Text: text, HTML: html}, nil
}

// renderHTML converts Markdown to HTML and strips anything unsafe the
// model may have produced.
func (s *Service) renderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(s.policy.Sanitize(buf.String())), nil
}
