// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/olegiv/vitrine/internal/i18n"
)

type stubCompleter struct {
	reply  string
	err    error
	system string
	user   string
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestNewServiceRequiresKey(t *testing.T) {
	if _, err := NewService("", "gpt-4o-mini"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestAskRendersMarkdown(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	stub := &stubCompleter{reply: "We build **fast** sites.\n\n- design\n- hosting"}
	svc := NewServiceWith(stub)

	reply, err := svc.Ask(context.Background(), "en", "What do you do?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if reply.Text != stub.reply {
		t.Errorf("Text = %q", reply.Text)
	}
	if !strings.Contains(reply.HTML, "<strong>fast</strong>") {
		t.Errorf("HTML should render bold, got %q", reply.HTML)
	}
	if !strings.Contains(reply.HTML, "<li>design</li>") {
		t.Errorf("HTML should render list, got %q", reply.HTML)
	}
	if stub.user != "What do you do?" {
		t.Errorf("user message = %q", stub.user)
	}
	if stub.system == "" || stub.system == "chat.system_prompt" {
		t.Errorf("system prompt not resolved: %q", stub.system)
	}
}

func TestAskStripsUnsafeHTML(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	stub := &stubCompleter{reply: `Click <script>alert(1)</script> here`}
	svc := NewServiceWith(stub)

	reply, err := svc.Ask(context.Background(), "en", "hi there")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if strings.Contains(reply.HTML, "script") {
		t.Errorf("script should be stripped, got %q", reply.HTML)
	}
}

func TestAskEmptyMessage(t *testing.T) {
	svc := NewServiceWith(&stubCompleter{reply: "x"})
	if _, err := svc.Ask(context.Background(), "en", "   "); err == nil {
		t.Error("empty message should error")
	}
}

func TestAskPropagatesCompleterError(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	svc := NewServiceWith(&stubCompleter{err: errors.New("upstream down")})
	if _, err := svc.Ask(context.Background(), "en", "hello"); err == nil {
		t.Error("completer error should propagate")
	}
}
