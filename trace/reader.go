package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader is a finite, forward-only, non-restartable sequence of trace
// Events with one-record lookahead: Current is the record the scheduler is
// about to act on, Lookahead is the one after it. Advance consumes Current,
// promotes Lookahead into its place, and draws a fresh Lookahead.
type Reader struct {
	scanner   *bufio.Scanner
	lineNum   int
	current   *Event
	lookahead *Event
}

// NewReader primes a Reader from r, reading the first two records.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{scanner: bufio.NewScanner(r)}

	var err error
	if rd.current, err = rd.readOne(); err != nil {
		return nil, err
	}
	if rd.lookahead, err = rd.readOne(); err != nil {
		return nil, err
	}

	return rd, nil
}

// Current returns the next record to be consumed, or nil if the trace is
// exhausted.
func (r *Reader) Current() *Event {
	return r.current
}

// Lookahead returns the record after Current, or nil if none exists yet.
func (r *Reader) Lookahead() *Event {
	return r.lookahead
}

// Advance consumes Current, promotes Lookahead to Current, and reads a
// fresh Lookahead from the underlying source.
func (r *Reader) Advance() error {
	next, err := r.readOne()
	if err != nil {
		return err
	}
	r.current = r.lookahead
	r.lookahead = next

	return nil
}

func (r *Reader) readOne() (*Event, error) {
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		ev, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", r.lineNum, err)
		}

		return ev, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, nil
}
