// Package mqtest provides an in-memory mq.Publisher for tests.
package mqtest

import (
	"context"
	"sync"
)

// RecordingPublisher keeps published messages in memory.
type RecordingPublisher struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// Message is a captured publish call.
type Message struct {
	Key     string
	Payload any
}

func (p *RecordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, Message{Key: key, Payload: v})
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Keys returns the routing keys published so far.
func (p *RecordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.Messages))
	for i, m := range p.Messages {
		keys[i] = m.Key
	}
	return keys
}
