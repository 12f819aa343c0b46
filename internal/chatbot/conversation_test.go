package chatbot

import (
	"errors"
	"testing"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

func TestConversationReply(t *testing.T) {
	var replies []string
	c := NewConversation(Options{OnReply: func(_ models.ChatMessage, rule string) {
		replies = append(replies, rule)
	}})

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].ID != "welcome" || msgs[0].Content != WelcomeMessage {
		t.Fatalf("expected welcome message, got %+v", msgs)
	}

	sent, err := c.Send("  what are your hours? ", State{})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if sent.Role != models.ChatRoleUser || sent.Content != "what are your hours?" {
		t.Fatalf("unexpected user message %+v", sent)
	}
	c.Flush()

	msgs = c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	bot := msgs[2]
	if bot.Role != models.ChatRoleAssistant || bot.Content != "We're open 11:00 AM - 11:00 PM daily. We look forward to serving you!" {
		t.Fatalf("unexpected reply %+v", bot)
	}
	if c.Typing() {
		t.Fatal("still typing after flush")
	}
	if got := c.Suggestions(); len(got) != 3 || got[0] != "Make a reservation" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if len(replies) != 1 || replies[0] != "hours" {
		t.Fatalf("unexpected reply hook calls %v", replies)
	}
}

func TestConversationRejectsEmpty(t *testing.T) {
	c := NewConversation(Options{})
	if _, err := c.Send("   ", State{}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestConversationRateLimit(t *testing.T) {
	c := NewConversation(Options{RatePerMinute: 2})
	for i := 0; i < 2; i++ {
		if _, err := c.Send("hi", State{}); err != nil {
			t.Fatalf("Send %d error: %v", i, err)
		}
	}
	if _, err := c.Send("hi", State{}); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	c.Flush()
}

func TestConversationClear(t *testing.T) {
	c := NewConversation(Options{})
	_, _ = c.Send("bye", State{})
	c.Flush()

	c.Clear()
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].ID != "welcome" {
		t.Fatalf("expected only the welcome message, got %+v", msgs)
	}
	if got := c.Suggestions(); len(got) != len(WelcomeSuggestions) {
		t.Fatalf("unexpected suggestions %v", got)
	}
}
