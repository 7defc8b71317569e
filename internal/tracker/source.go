package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// JSONSource decodes gpsd-style JSON lines into positions. Each line is
// one object: {"lat": .., "lon": .., "accuracy": .., "timestamp": ..}.
// Lines that fail to decode are skipped; the stream keeps going. When
// the reader also implements io.Closer it is closed on context cancel,
// since cancellation alone cannot unblock a blocking Read.
type JSONSource struct {
	Reader io.Reader
}

func (s *JSONSource) Watch(ctx context.Context) (<-chan Position, <-chan error, error) {
	if s.Reader == nil {
		return nil, nil, fmt.Errorf("position input is not available")
	}
	if closer, ok := s.Reader.(io.Closer); ok {
		go func() {
			<-ctx.Done()
			_ = closer.Close()
		}()
	}

	positions := make(chan Position)
	errs := make(chan error, 1)

	go func() {
		defer close(positions)
		defer close(errs)

		scanner := bufio.NewScanner(s.Reader)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var pos Position
			if err := json.Unmarshal([]byte(line), &pos); err != nil {
				continue
			}
			if pos.Timestamp.IsZero() {
				pos.Timestamp = time.Now()
			}
			select {
			case positions <- pos:
			case <-ctx.Done():
				return
			}
		}
		// A read failure caused by our own cancellation is a clean
		// stop, not a feed error.
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case errs <- fmt.Errorf("read position stream: %w", err):
			case <-ctx.Done():
			}
		}
	}()

	return positions, errs, nil
}

// TCPSource dials a position feed (a gpsd-style daemon emitting JSON
// lines) and wraps it in a JSONSource. The dial happens inside Watch so
// an unreachable daemon is reported before tracking flips to started.
type TCPSource struct {
	Address     string
	DialTimeout time.Duration
}

func (s *TCPSource) Watch(ctx context.Context) (<-chan Position, <-chan error, error) {
	addr := strings.TrimSpace(s.Address)
	if addr == "" {
		return nil, nil, fmt.Errorf("position feed address is required")
	}
	timeout := s.DialTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connect position feed %s: %w", addr, err)
	}

	// The connection is an io.Closer, so the inner source closes it on
	// context cancel.
	inner := &JSONSource{Reader: conn}
	return inner.Watch(ctx)
}
