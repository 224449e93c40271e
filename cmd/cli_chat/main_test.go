package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"chat-widget/internal/domain"
	"chat-widget/internal/query"
	"chat-widget/internal/service"
)

func TestChatFlow_PrintsReplies(t *testing.T) {
	client := &query.MockClient{Response: "Hi!"}
	sess := service.NewChatSession("cli", client, time.Now().Add(time.Hour), nil)
	var out bytes.Buffer

	err := chatFlow(strings.NewReader("Hello\n\n   \nsalir\n"), &out, sess)
	if err != nil {
		t.Fatalf("chat flow: %v", err)
	}

	if got := client.Queries(); len(got) != 1 || got[0] != "Hello" {
		t.Fatalf("expected one query for Hello, got %v", got)
	}
	if !strings.Contains(out.String(), "Bot > Hi!") {
		t.Fatalf("expected bot reply in output, got %q", out.String())
	}
	if n := len(sess.Snapshot().Messages); n != 2 {
		t.Fatalf("expected 2 messages, got %d", n)
	}
}

func TestChatFlow_FallbackOnError(t *testing.T) {
	client := &query.MockClient{Err: errors.New("down")}
	sess := service.NewChatSession("cli", client, time.Now().Add(time.Hour), nil)
	var out bytes.Buffer

	if err := chatFlow(strings.NewReader("X"), &out, sess); err != nil {
		t.Fatalf("chat flow: %v", err)
	}
	if !strings.Contains(out.String(), "Bot > "+domain.FallbackText) {
		t.Fatalf("expected fallback in output, got %q", out.String())
	}
}
