package log

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/viant/bedrockchat/internal/redact"
)

// EventType represents classification of an event.
type EventType string

const (
	SessionStart   EventType = "SESSION_START"
	SessionEnd     EventType = "SESSION_END"
	ExchangeInput  EventType = "EXCHANGE_INPUT"
	ExchangeOutput EventType = "EXCHANGE_OUTPUT"
	ExchangeError  EventType = "EXCHANGE_ERROR"
)

type Event struct {
	Time      time.Time   `json:"ts"`
	EventType EventType   `json:"eventtype"`
	Payload   interface{} `json:"p"`
}

// Collector collects events and fans them out to subscribers.
type Collector struct {
	mu   sync.RWMutex
	subs []chan Event
}

var Default = &Collector{}

// Publish sends an event to all subscribers of the default collector (non-blocking).
func Publish(eventType EventType, payload interface{}) {
	Default.Publish(Event{Time: time.Now(), EventType: eventType, Payload: payload})
}

func (c *Collector) Publish(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a receive-only channel for events. buf is channel size.
func (c *Collector) Subscribe(buf int) <-chan Event {
	ch := make(chan Event, buf)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (c *Collector) Unsubscribe(sub <-chan Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ch := range c.subs {
		if ch == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// FileSink writes every event of the collector as a JSON line to w, filtering by event
// types if provided. Credential-like payload keys are masked. The returned stop function unsubscribes and waits until buffered
// events are written.
func (c *Collector) FileSink(w io.Writer, filters ...EventType) (stop func()) {
	want := map[EventType]bool{}
	for _, f := range filters {
		want[f] = true
	}
	sub := c.Subscribe(100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			if len(want) > 0 && !want[ev.EventType] {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			_, _ = w.Write(append(redact.ScrubJSONBytes(data, nil), '\n'))
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			c.Unsubscribe(sub)
			<-done
		})
	}
}

// FileSink attaches a sink to the default collector.
func FileSink(w io.Writer, filters ...EventType) (stop func()) {
	return Default.FileSink(w, filters...)
}
