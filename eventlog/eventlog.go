// Package eventlog implements C7: the human-readable line stream of rate
// changes and flow completions described in spec §4.7, plus structured
// diagnostic logging via go.uber.org/zap for everything that isn't part of
// that exact-format protocol. The two are kept on separate writers — the
// protocol lines go to a plain io.Writer so their format is never touched
// by a logging encoder, while diagnostics go through *zap.Logger.
package eventlog

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
)

// Writer emits the RATE_CHANGE/DONE protocol lines. It buffers writes and
// must be flushed (via Flush) before the underlying stream is
// considered complete.
type Writer struct {
	w   *bufio.Writer
	log *zap.Logger
}

// New wraps dst with buffered protocol-line writing. A nil log is replaced
// with a no-op logger.
func New(dst io.Writer, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Writer{w: bufio.NewWriter(dst), log: log}
}

// RateChange emits one "RATE_CHANGE fid t rate" line per active flow, in
// ascending fid order, for the rates snapshot produced by one allocator
// invocation at simulation time t.
func (w *Writer) RateChange(t float64, rates map[int]float64) error {
	fids := make([]int, 0, len(rates))
	for fid := range rates {
		fids = append(fids, fid)
	}
	sort.Ints(fids)

	for _, fid := range fids {
		if _, err := fmt.Fprintf(w.w, "RATE_CHANGE %d %.12g %.12g\n", fid, t, rates[fid]); err != nil {
			return err
		}
	}

	return nil
}

// Terminated emits the terminal "RATE_CHANGE fid t 0" line for a single
// flow removed by a sweep, per spec §4.7's "followed by a terminal
// RATE_CHANGE ... per removed flow" clause.
func (w *Writer) Terminated(fid int, t float64) error {
	_, err := fmt.Fprintf(w.w, "RATE_CHANGE %d %.12g 0\n", fid, t)

	return err
}

// Done emits one "DONE n fid1 fid2 ..." line for a sweep that removed the
// given fids (already in the sweep's chosen order; eventlog does not
// re-sort them, since §4.7 only fixes their position relative to the
// per-flow RATE_CHANGE lines, not their internal order).
func (w *Writer) Done(fids []int) error {
	if _, err := fmt.Fprintf(w.w, "DONE %d", len(fids)); err != nil {
		return err
	}
	for _, fid := range fids {
		if _, err := fmt.Fprintf(w.w, " %d", fid); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString("\n")

	return err
}

// Flush pushes any buffered protocol lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Diagnostic logs a structured, out-of-protocol message — never part of the
// exact-format RATE_CHANGE/DONE stream, safe to enrich or silence freely.
func (w *Writer) Diagnostic(msg string, fields ...zap.Field) {
	w.log.Debug(msg, fields...)
}
