package domain

import (
	"errors"
	"testing"
)

func TestConversationBegin_IgnoresBlankDraft(t *testing.T) {
	conv := NewConversation()
	for _, draft := range []string{"", " ", "\t\n  "} {
		conv.SetDraft(draft)
		if _, ok := conv.Begin(); ok {
			t.Fatalf("expected blank draft %q to be ignored", draft)
		}
		if len(conv.Messages()) != 0 {
			t.Fatalf("expected no messages, got %d", len(conv.Messages()))
		}
		if conv.Draft() != draft {
			t.Fatalf("expected draft untouched, got %q", conv.Draft())
		}
	}
	if conv.Pending() != 0 {
		t.Fatalf("expected no pending submissions, got %d", conv.Pending())
	}
}

func TestConversationBegin_AppendsUserAndClearsDraft(t *testing.T) {
	conv := NewConversation()
	conv.SetDraft("Hello")

	sub, ok := conv.Begin()
	if !ok {
		t.Fatalf("expected submission")
	}
	if sub.Query != "Hello" || sub.RequestID == "" {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if conv.Draft() != "" {
		t.Fatalf("expected empty draft, got %q", conv.Draft())
	}
	msgs := conv.Messages()
	if len(msgs) != 1 || msgs[0].Sender != SenderUser || msgs[0].Text != "Hello" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if conv.Pending() != 1 {
		t.Fatalf("expected 1 pending, got %d", conv.Pending())
	}

	conv.Resolve(sub, "Hi!", nil)
	msgs = conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1] != (Message{Sender: SenderBot, Text: "Hi!", RequestID: sub.RequestID}) {
		t.Fatalf("unexpected bot message: %+v", msgs[1])
	}
	if conv.Pending() != 0 {
		t.Fatalf("expected no pending, got %d", conv.Pending())
	}
}

func TestConversationBegin_KeepsDraftVerbatim(t *testing.T) {
	conv := NewConversation()
	conv.SetDraft("  spaced  ")
	sub, ok := conv.Begin()
	if !ok {
		t.Fatalf("expected submission")
	}
	if sub.Query != "  spaced  " {
		t.Fatalf("expected untrimmed query, got %q", sub.Query)
	}
}

func TestConversationResolve_ErrorUsesFallback(t *testing.T) {
	conv := NewConversation()
	conv.SetDraft("X")
	sub, _ := conv.Begin()

	msg := conv.Resolve(sub, "ignored", errors.New("boom"))
	if msg.Sender != SenderBot || msg.Text != FallbackText {
		t.Fatalf("expected fallback bot message, got %+v", msg)
	}
}

func TestConversationResolve_OncePerSubmission(t *testing.T) {
	conv := NewConversation()
	conv.SetDraft("X")
	sub, _ := conv.Begin()

	conv.Resolve(sub, "first", nil)
	conv.Resolve(sub, "second", nil)
	conv.Resolve(Submission{RequestID: "unknown"}, "stray", nil)

	if len(conv.Messages()) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(conv.Messages()))
	}
}

func TestConversation_AppendOnlyInArrivalOrder(t *testing.T) {
	conv := NewConversation()

	conv.SetDraft("first")
	first, _ := conv.Begin()
	conv.SetDraft("second")
	second, _ := conv.Begin()

	before := conv.Messages()

	conv.Resolve(second, "reply to second", nil)
	conv.Resolve(first, "reply to first", nil)

	msgs := conv.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	for i := range before {
		if msgs[i] != before[i] {
			t.Fatalf("message %d changed: %+v -> %+v", i, before[i], msgs[i])
		}
	}
	if msgs[2].RequestID != second.RequestID || msgs[3].RequestID != first.RequestID {
		t.Fatalf("expected replies in arrival order, got %+v", msgs[2:])
	}
}

func TestConversationMessages_ReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.SetDraft("X")
	conv.Begin()

	msgs := conv.Messages()
	msgs[0].Text = "mutated"

	if conv.Messages()[0].Text != "X" {
		t.Fatalf("expected history to be unaffected by caller mutation")
	}
}
