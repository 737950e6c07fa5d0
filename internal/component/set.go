package component

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"

	"perpmirror/internal/accounts"
)

// subscriberSet is the shared bookkeeping of every facade: subscribers keyed
// by derived address, with creation order retained so listings are stable.
type subscriberSet[T any] struct {
	mu    sync.RWMutex
	subs  map[solana.PublicKey]*accounts.Subscriber[T]
	order []solana.PublicKey
}

func newSubscriberSet[T any]() *subscriberSet[T] {
	return &subscriberSet[T]{subs: make(map[solana.PublicKey]*accounts.Subscriber[T])}
}

func (s *subscriberSet[T]) has(key solana.PublicKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.subs[key]
	return ok
}

func (s *subscriberSet[T]) add(key solana.PublicKey, sub *accounts.Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[key]; ok {
		return
	}
	s.subs[key] = sub
	s.order = append(s.order, key)
}

func (s *subscriberSet[T]) get(key solana.PublicKey) (*accounts.Subscriber[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[key]
	return sub, ok
}

func (s *subscriberSet[T]) all() []*accounts.Subscriber[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*accounts.Subscriber[T], 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.subs[key])
	}
	return out
}

func (s *subscriberSet[T]) subscribe(ctx context.Context) {
	for _, sub := range s.all() {
		sub.Subscribe(ctx, nil)
	}
}

func (s *subscriberSet[T]) unsubscribe() {
	for _, sub := range s.all() {
		sub.Unsubscribe()
	}
}
