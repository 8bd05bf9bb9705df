package utilities

import "sync"

type Subscriber[T any] interface {
	OnEvent(event T)
}

// SubscriberFunc adapts a plain function to a Subscriber.
type SubscriberFunc[T any] func(event T)

func (f SubscriberFunc[T]) OnEvent(event T) {
	f(event)
}

// EventPublisher fans events out to its subscribers in registration order.
type EventPublisher[T any] struct {
	subscribers []*subscription[T]
	mu          sync.RWMutex
}

type subscription[T any] struct {
	s Subscriber[T]
}

func NewPublisher[T any]() *EventPublisher[T] {
	return &EventPublisher[T]{}
}

// Register adds s and returns a func that removes it again.
func (p *EventPublisher[T]) Register(s Subscriber[T]) (cancel func()) {
	sub := &subscription[T]{s: s}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, sub)
	return func() { p.deregister(sub) }
}

func (p *EventPublisher[T]) deregister(sub *subscription[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, other := range p.subscribers {
		if other == sub {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *EventPublisher[T]) SendEvent(data T) {
	p.mu.RLock()
	subs := make([]*subscription[T], len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.RUnlock()

	for _, sub := range subs {
		sub.s.OnEvent(data)
	}
}

func (p *EventPublisher[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
