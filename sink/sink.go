// Package sink implements C6: an append-only writer of completion records.
// The sink is a scoped resource per spec §5 — opened once at construction,
// closed on every exit path including failure. It takes an advisory file
// lock via github.com/gofrs/flock for the duration it's open, so two
// simulation runs never interleave writes into the same output file.
package sink

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
)

// wireToPayload is the byte-count adjustment factor spec §4.6 mandates:
// original_bytes counts wire bytes, but num_bytes in the completion record
// reports payload bytes. tmp_pkts is round(original_bytes/1460), without
// this factor.
const wireToPayload = 1460.0 / 1500.0

// Record is one completion record: a flow's lifecycle summary as emitted
// to the output file.
type Record struct {
	Fid           int
	EndTime       float64
	StartTime     float64
	OriginalBytes float64
	Src, Dst      int
}

// Sink owns the output file handle and its advisory lock.
type Sink struct {
	file *os.File
	lock *flock.Flock
	w    *bufio.Writer
}

// Open takes an exclusive advisory lock on the sibling file path+".lock",
// creates (or truncates) path, and returns a Sink ready to accept records.
// The caller must call Close.
func Open(path string) (*Sink, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("sink: acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("sink: %s is locked by another run", path)
	}

	f, err := os.Create(path)
	if err != nil {
		_ = lock.Unlock()

		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}

	return &Sink{file: f, lock: lock, w: bufio.NewWriter(f)}, nil
}

// Write formats and appends one completion record, per spec §6:
//
//	fid <id> end_time <t> start_time <t0> fldur <d> num_bytes <b> tmp_pkts <p> gid <src>-<dst>
//
// Time fields use 12 significant digits, byte/packet fields use 5.
func (s *Sink) Write(r Record) error {
	payloadBytes := r.OriginalBytes * wireToPayload
	pkts := math.Round(r.OriginalBytes / 1460)
	duration := r.EndTime - r.StartTime

	_, err := fmt.Fprintf(s.w, "fid %d end_time %.12g start_time %.12g fldur %.12g num_bytes %.5g tmp_pkts %.5g gid %d-%d\n",
		r.Fid, r.EndTime, r.StartTime, duration, payloadBytes, pkts, r.Src, r.Dst)

	return err
}

// Close flushes, closes the file, and releases the advisory lock,
// combining any errors from each step (grounded on go.uber.org/multierr's
// role in the original's multi-resource cleanup style).
func (s *Sink) Close() error {
	var err error
	err = multierr.Append(err, s.w.Flush())
	err = multierr.Append(err, s.file.Close())
	err = multierr.Append(err, s.lock.Unlock())

	return err
}
