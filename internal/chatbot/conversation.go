package chatbot

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrRateLimited  = errors.New("too many messages")
)

type Options struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	RatePerMinute int // <= 0 disables limiting
	Now           func() time.Time

	// OnReply is called after a delayed reply has been appended.
	OnReply func(msg models.ChatMessage, rule string)
}

// Conversation is one session's chat transcript. Replies are scheduled with
// a typing delay and are not cancelled; a reply that fires after Clear is
// still appended.
type Conversation struct {
	mu          sync.Mutex
	messages    []models.ChatMessage
	suggestions []string
	pending     int

	opts    Options
	limiter *rate.Limiter
	wg      sync.WaitGroup
}

func NewConversation(opts Options) *Conversation {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	limit := rate.Inf
	burst := 0
	if opts.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RatePerMinute))
		burst = opts.RatePerMinute
	}
	c := &Conversation{opts: opts, limiter: rate.NewLimiter(limit, burst)}
	c.reset()
	return c
}

func (c *Conversation) reset() {
	c.messages = []models.ChatMessage{{
		ID:          "welcome",
		Role:        models.ChatRoleAssistant,
		Content:     WelcomeMessage,
		Timestamp:   c.opts.Now(),
		Suggestions: append([]string(nil), WelcomeSuggestions...),
	}}
	c.suggestions = append([]string(nil), WelcomeSuggestions...)
}

// Send appends the user message and schedules the reply. The reply is built
// from st as it was when the message was sent.
func (c *Conversation) Send(content string, st State) (models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	if !c.limiter.Allow() {
		return models.ChatMessage{}, ErrRateLimited
	}

	msg := models.ChatMessage{
		ID:        "user-" + uuid.NewString(),
		Role:      models.ChatRoleUser,
		Content:   content,
		Timestamp: c.opts.Now(),
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.pending++
	c.mu.Unlock()

	c.wg.Add(1)
	time.AfterFunc(c.delay(), func() {
		defer c.wg.Done()
		reply, rule := Respond(content, st)
		bot := models.ChatMessage{
			ID:          "bot-" + uuid.NewString(),
			Role:        models.ChatRoleAssistant,
			Content:     reply.Content,
			Timestamp:   c.opts.Now(),
			Suggestions: reply.Suggestions,
		}

		c.mu.Lock()
		c.messages = append(c.messages, bot)
		c.suggestions = append([]string(nil), reply.Suggestions...)
		c.pending--
		c.mu.Unlock()

		if c.opts.OnReply != nil {
			c.opts.OnReply(bot, rule)
		}
	})
	return msg, nil
}

func (c *Conversation) delay() time.Duration {
	span := c.opts.MaxDelay - c.opts.MinDelay
	if span <= 0 {
		return c.opts.MinDelay
	}
	return c.opts.MinDelay + time.Duration(rand.Int64N(int64(span)+1))
}

func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}

func (c *Conversation) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.suggestions...)
}

// Typing reports whether a reply is still scheduled.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Clear resets the transcript to the welcome message.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Flush blocks until every scheduled reply has been appended.
func (c *Conversation) Flush() {
	c.wg.Wait()
}
