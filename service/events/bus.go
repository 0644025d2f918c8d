package events

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultBuffer is the mailbox size of each subscriber.
const DefaultBuffer = 64

// Handler receives events in publish order.
type Handler func(Event)

// Bus fans every published event out to its subscribers. Each subscriber owns a
// buffered mailbox drained by its own goroutine, so Publish never waits on a handler.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	closed      bool

	buffer int
	logger *logrus.Entry
	wg     sync.WaitGroup
}

type subscriber struct {
	id      uint64
	types   map[Type]struct{}
	handler Handler
	mailbox chan Event
}

func (s *subscriber) wants(t Type) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Subscription detaches one handler from the bus.
type Subscription struct {
	bus  *Bus
	id   uint64
	once sync.Once
}

// Unsubscribe stops delivery. Events already in the mailbox are still handled.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.id)
	})
}

func NewBus(buffer int, logger *logrus.Entry) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Bus{
		subscribers: make(map[uint64]*subscriber),
		buffer:      buffer,
		logger:      logger.WithField("component", "events"),
	}
}

// Subscribe registers handler for the given types, or for every type when none are given.
func (b *Bus) Subscribe(handler Handler, types ...Type) *Subscription {
	sub := &subscriber{
		types:   make(map[Type]struct{}, len(types)),
		handler: handler,
		mailbox: make(chan Event, b.buffer),
	}
	for _, t := range types {
		sub.types[t] = struct{}{}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.logger.Warn("subscribe on closed bus ignored")
		return &Subscription{bus: b}
	}
	b.nextID++
	sub.id = b.nextID
	b.subscribers[sub.id] = sub
	b.wg.Add(1)
	b.mu.Unlock()

	go b.drain(sub)
	return &Subscription{bus: b, id: sub.id}
}

// Publish enqueues event on every interested mailbox. A full mailbox drops the event.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.logger.WithField("event", event.Type).Debug("publish on closed bus dropped")
		return
	}

	for _, sub := range b.subscribers {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.mailbox <- event:
		default:
			b.logger.WithField("event", event.Type).
				WithField("subscriber", sub.id).
				Warn("subscriber mailbox full, event dropped")
		}
	}
}

// Close stops accepting events, lets every subscriber drain its mailbox and waits for them.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for id, sub := range b.subscribers {
		close(sub.mailbox)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subscribers[id]
	if !ok {
		return
	}
	delete(b.subscribers, id)
	close(sub.mailbox)
}

func (b *Bus) drain(sub *subscriber) {
	defer b.wg.Done()
	for event := range sub.mailbox {
		b.deliver(sub, event)
	}
}

func (b *Bus) deliver(sub *subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithField("event", event.Type).
				WithField("subscriber", sub.id).
				WithField("panic", r).
				Error("subscriber panicked")
		}
	}()
	sub.handler(event)
}
