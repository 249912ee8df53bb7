// Package event carries the command feed: an ordered record of every
// command that reached the dispatcher and what came of it. External
// consumers subscribe for live delivery; a bounded history backs
// after-the-fact inspection.
package event

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Subscriber receives feed records as they are published.
type Subscriber interface {
	Notify(rec Record)
}

// SubscriberFunc is a function adapter for Subscriber.
type SubscriberFunc func(rec Record)

// Notify implements Subscriber.
func (f SubscriberFunc) Notify(rec Record) {
	f(rec)
}

// Feed publishes command records to subscribers in subscription order.
// Delivery is synchronous; the pipeline is single-writer, so a record is
// fully delivered before the next command executes.
type Feed struct {
	mu          sync.RWMutex
	subscribers map[uint64]Subscriber
	nextID      uint64

	history      []Record
	historyLimit int

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// Option configures a Feed.
type Option func(*Feed)

// WithHistoryLimit sets how many records the feed retains. Zero disables
// history.
func WithHistoryLimit(limit int) Option {
	return func(f *Feed) {
		if limit >= 0 {
			f.historyLimit = limit
		}
	}
}

// DefaultHistoryLimit is the number of records a feed retains unless
// configured otherwise.
const DefaultHistoryLimit = 100

// NewFeed creates a feed with the given options.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		subscribers:  make(map[uint64]Subscriber),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscription identifies a subscriber for later cancellation.
type Subscription struct {
	id   uint64
	feed *Feed
}

// Cancel removes the subscriber from the feed.
func (s Subscription) Cancel() {
	if s.feed == nil {
		return
	}
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()
	delete(s.feed.subscribers, s.id)
}

// Subscribe registers a subscriber and returns its subscription.
func (f *Feed) Subscribe(sub Subscriber) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	f.subscribers[id] = sub
	return Subscription{id: id, feed: f}
}

// SubscribeFunc registers a subscriber function.
func (f *Feed) SubscribeFunc(fn SubscriberFunc) Subscription {
	return f.Subscribe(fn)
}

// Publish appends the record to the history and delivers it to every
// subscriber in subscription order. A panicking subscriber is isolated;
// the rest still receive the record.
func (f *Feed) Publish(rec Record) {
	f.published.Add(1)

	f.mu.Lock()
	if f.historyLimit > 0 {
		f.history = append(f.history, rec)
		if len(f.history) > f.historyLimit {
			f.history = f.history[len(f.history)-f.historyLimit:]
		}
	}
	ids := make([]uint64, 0, len(f.subscribers))
	for id := range f.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	subs := make([]Subscriber, len(ids))
	for i, id := range ids {
		subs[i] = f.subscribers[id]
	}
	f.mu.Unlock()

	for _, sub := range subs {
		f.deliver(sub, rec)
	}
}

// deliver notifies one subscriber, recovering from its panics.
func (f *Feed) deliver(sub Subscriber, rec Record) {
	defer func() {
		if r := recover(); r != nil {
			f.panics.Add(1)
		}
	}()

	sub.Notify(rec)
	f.delivered.Add(1)
}

// Recent returns up to n records, oldest first.
func (f *Feed) Recent(n int) []Record {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.history) {
		n = len(f.history)
	}
	out := make([]Record, n)
	copy(out, f.history[len(f.history)-n:])
	return out
}

// Stats is a point-in-time view of feed activity.
type Stats struct {
	Published   uint64
	Delivered   uint64
	Panics      uint64
	Subscribers int
	HistorySize int
}

// Stats returns current feed statistics.
func (f *Feed) Stats() Stats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return Stats{
		Published:   f.published.Load(),
		Delivered:   f.delivered.Load(),
		Panics:      f.panics.Load(),
		Subscribers: len(f.subscribers),
		HistorySize: len(f.history),
	}
}
