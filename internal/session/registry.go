// Package session owns the per-browser containers. Each session gets its own
// menu, cart, order book, stock ledger and chat built from the shared seed;
// nothing is shared between sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/cart"
	"github.com/JawwadIrshad/Resturant-App/internal/chatbot"
	"github.com/JawwadIrshad/Resturant-App/internal/menu"
	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/orders"
	"github.com/JawwadIrshad/Resturant-App/internal/stock"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Session struct {
	ID        string
	CreatedAt time.Time

	Menu   *menu.Catalog
	Cart   *cart.Cart
	Orders *orders.Book
	Stock  *stock.Ledger
	Chat   *chatbot.Conversation

	// checkout spans cart, menu and orders
	checkoutMu sync.Mutex

	mu       sync.Mutex
	lastSeen time.Time
}

// LockCheckout serializes checkouts within one session.
func (s *Session) LockCheckout() func() {
	s.checkoutMu.Lock()
	return s.checkoutMu.Unlock
}

// ChatState snapshots what the chatbot may read.
func (s *Session) ChatState() chatbot.State {
	return chatbot.State{Cart: s.Cart.State(), Menu: s.Menu.Items()}
}

type Seed struct {
	Menu  []models.MenuItem
	Stock []models.StockItem
}

type Options struct {
	TTL  time.Duration
	Chat chatbot.Options
	Now  func() time.Time
	Log  zerolog.Logger

	// OnExpire runs for every session Sweep removes.
	OnExpire func(sessionID string)
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	seed     Seed
	opts     Options
}

func NewRegistry(seed Seed, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*Session),
		seed:     seed,
		opts:     opts,
	}
}

func (r *Registry) Create() *Session {
	now := r.opts.Now()
	id := uuid.NewString()

	chatOpts := r.opts.Chat
	if chatOpts.OnReply == nil {
		log := r.opts.Log.With().Str("session_id", id).Logger()
		chatOpts.OnReply = func(msg models.ChatMessage, rule string) {
			log.Debug().Str("rule", rule).Str("message_id", msg.ID).Msg("chat reply")
		}
	}

	s := &Session{
		ID:        id,
		CreatedAt: now,
		Menu:      menu.NewCatalog(r.seed.Menu),
		Cart:      cart.New(),
		Orders:    orders.NewBook(r.opts.Now),
		Stock:     stock.NewLedger(r.seed.Stock, r.opts.Now),
		Chat:      chatbot.NewConversation(chatOpts),
		lastSeen:  now,
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.opts.Log.Info().Str("session_id", id).Msg("session created")
	return s
}

// Get returns a live session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := r.opts.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.opts.TTL > 0 && now.Sub(s.lastSeen) > r.opts.TTL {
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL.
func (r *Registry) Sweep() int {
	if r.opts.TTL <= 0 {
		return 0
	}
	now := r.opts.Now()

	var expired []string
	r.mu.Lock()
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > r.opts.TTL {
			delete(r.sessions, id)
			expired = append(expired, id)
		}
	}
	r.mu.Unlock()

	if r.opts.OnExpire != nil {
		for _, id := range expired {
			r.opts.OnExpire(id)
		}
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.opts.Log.Info().Int("removed", n).Int("active", r.Len()).Msg("expired sessions swept")
			}
		}
	}
}
