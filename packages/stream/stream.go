// Package stream defines the minimal asynchronous-iteration interface
// consumed by the async-sequence assertion family, plus adapters for
// common sources. Elements are requested strictly one at a time; no
// adapter ever has two pending requests in flight.
package stream

import (
	"context"
)

// Stream yields elements one at a time. done reports exhaustion; after
// done is true no further calls are made.
type Stream interface {
	Next(ctx context.Context) (value any, done bool, err error)
}

// FromSlice adapts a fixed element list.
func FromSlice(items ...any) Stream {
	return &sliceStream{items: items}
}

type sliceStream struct {
	items []any
	pos   int
}

func (s *sliceStream) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.pos >= len(s.items) {
		return nil, true, nil
	}
	v := s.items[s.pos]
	s.pos++
	return v, false, nil
}

// FromChannel adapts a receive channel; the stream completes when the
// channel closes.
func FromChannel(ch <-chan any) Stream {
	return &chanStream{ch: ch}
}

type chanStream struct {
	ch <-chan any
}

func (s *chanStream) Next(ctx context.Context) (any, bool, error) {
	select {
	case v, open := <-s.ch:
		if !open {
			return nil, true, nil
		}
		return v, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Collect drains up to max elements (all of them when max <= 0).
func Collect(ctx context.Context, s Stream, max int) ([]any, error) {
	var out []any
	for max <= 0 || len(out) < max {
		v, done, err := s.Next(ctx)
		if err != nil {
			return out, err
		}
		if done {
			break
		}
		out = append(out, v)
	}
	return out, nil
}
