package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/worakan/supportchat-server/internal/auth"
	"github.com/worakan/supportchat-server/internal/log"
	"github.com/worakan/supportchat-server/internal/store"
)

const testPass = "sesame-open"

var testNames = []string{"Sword", "Shield", "Spear", "Bow"}

// memStore is an in-memory store.Store for hub tests.
type memStore struct {
	mu       sync.Mutex
	messages []*store.Message
	tokens   map[string]*store.AdminToken
	nextID   int64

	failUpsert bool
	failAppend bool
}

func newMemStore() *memStore {
	return &memStore{tokens: make(map[string]*store.AdminToken)}
}

func (m *memStore) AppendMessage(_ context.Context, msg *store.Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend {
		return 0, fmt.Errorf("append rejected")
	}
	m.nextID++
	msg.ID = m.nextID
	clone := *msg
	m.messages = append(m.messages, &clone)
	return msg.ID, nil
}

func (m *memStore) HistoryForSession(_ context.Context, sid string) ([]*store.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*store.Message
	for _, msg := range m.messages {
		if msg.UserDeleted {
			continue
		}
		if msg.SenderSID == sid || msg.ReceiverSID == sid {
			clone := *msg
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memStore) MarkSenderDeleted(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.SenderSID == sid {
			msg.UserDeleted = true
		}
	}
	return nil
}

func (m *memStore) FindToken(_ context.Context, token string) (*store.AdminToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.tokens[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *at
	return &clone, nil
}

func (m *memStore) UpsertToken(_ context.Context, at *store.AdminToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsert {
		return fmt.Errorf("upsert rejected")
	}
	if existing, ok := m.tokens[at.Token]; ok {
		existing.Name = at.Name
		existing.LastSID = at.LastSID
		at.ID = existing.ID
		return nil
	}
	m.nextID++
	at.ID = m.nextID
	clone := *at
	m.tokens[at.Token] = &clone
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) storedMessages() []*store.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*store.Message, len(m.messages))
	for i, msg := range m.messages {
		clone := *msg
		out[i] = &clone
	}
	return out
}

// startHub spins up a hub over a memStore for the duration of the test.
func startHub(t *testing.T) (*Hub, *memStore) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := newMemStore()
	logger := log.New("error")
	hub := NewHub(st, auth.NewVerifier(testPass, ""), testNames, logger)
	go hub.Run(ctx)

	return hub, st
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// noEvent asserts that no event of the given kind arrives within a grace
// period. Other kinds are discarded.
func noEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event: %+v", ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}
