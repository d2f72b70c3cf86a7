// Package element implements the CEA-608-to-timed-text conversion core.
// It feeds incoming caption pairs to the decoder, buffers each completed
// caption until the next caption event supplies its end time, and pushes
// rendered subtitle buffers downstream.
//
// The decoder reports when a frame becomes ready or should be cleared, not
// when a displayed cue ends, so a cue's duration is only knowable once the
// next event's timestamp arrives. The element therefore holds at most one
// pending caption and emits it with one update of latency: the cue for
// text A goes out when text B (or a clear) arrives, using B's timestamp as
// A's end.
package element

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/zsiec/cea608tt/internal/cea608"
	"github.com/zsiec/cea608tt/internal/media"
	"github.com/zsiec/cea608tt/internal/subtitle"
)

// Sentinel errors for stream-fatal conditions, distinguishable with
// errors.Is. Unit-local problems (undersized buffers, decode or render
// failures) are logged and absorbed instead of surfacing here.
var (
	ErrNotNegotiated    = errors.New("element: output format not negotiated")
	ErrMissingTimestamp = errors.New("element: buffer has no timestamp")
	ErrEmptyCaps        = errors.New("element: empty downstream caps")
)

// Decoder is the caption-decoder contract the element drives. Decode
// reports how one pair changed decoder state, Text renders the most
// recently completed frame, and Reset reinitializes to empty/idle.
// *cea608.Decoder implements it; tests substitute scripted fakes.
type Decoder interface {
	Decode(ccData uint16, pts float64) (cea608.Status, error)
	Text() (string, error)
	Reset()
}

// Sink receives the element's output: rendered subtitle buffers plus the
// one-time capability echo fixed at negotiation. Push may apply
// backpressure by blocking or failing; the element completes all state
// changes before pushing, so a failed push never leaves state needing
// rollback.
type Sink interface {
	SetCaps(media.Caps) error
	Push(*media.Buffer) error
}

// pendingText is the one buffered caption awaiting its end time.
type pendingText struct {
	pts  media.ClockTime
	text string
}

// Element converts a stream of timestamped CEA-608 byte pairs into timed
// subtitle buffers. Events for one stream must be delivered in arrival
// order; the internal mutex guarantees exclusive state access per event
// but not ordering, which is the caller's responsibility.
type Element struct {
	log  *slog.Logger
	sink Sink

	mu          sync.Mutex
	format      subtitle.Format
	negotiated  bool
	wroteHeader bool
	dec         Decoder
	pending     *pendingText
	index       uint64
}

// New creates an Element pushing output to sink, decoding with a fresh
// CEA-608 decoder. If log is nil, slog.Default() is used.
func New(sink Sink, log *slog.Logger) *Element {
	return NewWithDecoder(sink, cea608.NewDecoder(), log)
}

// NewWithDecoder is New with an explicit decoder, used by tests to script
// decode outcomes.
func NewWithDecoder(sink Sink, dec Decoder, log *slog.Logger) *Element {
	if log == nil {
		log = slog.Default()
	}
	return &Element{
		log:   log.With("component", "cea608tt"),
		sink:  sink,
		dec:   dec,
		index: 1,
	}
}

// Negotiate fixes the output format from the downstream capability set,
// which the negotiation transport has already reduced to one concrete
// choice. It is a no-op success when a format is already set. An empty
// set fails with ErrEmptyCaps; a capability outside the declared output
// set panics, since the transport only offers what the element declares.
func (e *Element) Negotiate(offered []media.Caps) error {
	e.mu.Lock()
	if e.negotiated {
		e.mu.Unlock()
		return nil
	}
	if len(offered) == 0 {
		e.mu.Unlock()
		e.log.Error("empty downstream caps")
		return ErrEmptyCaps
	}

	caps := offered[0]
	format, ok := subtitle.FromCaps(caps)
	if !ok {
		e.mu.Unlock()
		panic("element: downstream caps outside declared set: " + caps.String())
	}
	e.format = format
	e.negotiated = true
	e.mu.Unlock()

	e.log.Debug("negotiated output format", "format", format, "caps", caps)
	return e.sink.SetCaps(format.OutputCaps())
}

// HandleBuffer processes one incoming caption data unit: the first two
// payload bytes, big-endian, form the CEA-608 pair. It returns a
// stream-fatal error when no format is negotiated or the buffer has no
// timestamp; every other per-unit problem is logged and absorbed.
func (e *Element) HandleBuffer(buf *media.Buffer) error {
	e.mu.Lock()

	if !e.negotiated {
		e.mu.Unlock()
		e.log.Error("buffer before caps negotiation")
		return ErrNotNegotiated
	}
	format := e.format

	if !buf.PTS.IsValid() {
		e.mu.Unlock()
		e.log.Error("buffer without timestamp")
		return ErrMissingTimestamp
	}

	if len(buf.Data) < 2 {
		e.mu.Unlock()
		e.log.Warn("dropping undersized caption buffer", "bytes", len(buf.Data))
		return nil
	}

	ccData := uint16(buf.Data[0])<<8 | uint16(buf.Data[1])

	var previous *pendingText
	status, err := e.dec.Decode(ccData, buf.PTS.Seconds())
	switch {
	case err != nil:
		e.mu.Unlock()
		e.log.Warn("dropping undecodable caption pair", "error", err)
		return nil
	case status == cea608.StatusOK:
		e.mu.Unlock()
		return nil
	case status == cea608.StatusClear:
		e.log.Debug("clearing displayed caption", "pts", buf.PTS)
		previous = e.pending
		e.pending = nil
	case status == cea608.StatusReady:
		text, err := e.dec.Text()
		if err != nil {
			e.mu.Unlock()
			e.log.Warn("dropping unrenderable caption frame", "error", err)
			return nil
		}
		e.log.Debug("new caption frame", "pts", buf.PTS)
		previous = e.pending
		e.pending = &pendingText{pts: buf.PTS, text: text}
	}

	if previous == nil {
		e.mu.Unlock()
		e.log.Debug("no previous caption to close")
		return nil
	}

	header, cue := e.closeCue(format, previous, buf.PTS)
	e.mu.Unlock()

	if header != nil {
		if err := e.sink.Push(header); err != nil {
			return err
		}
	}
	return e.sink.Push(cue)
}

// FlushStop handles a mid-stream discontinuity: decoder state and the
// pending caption are discarded without emitting, while the negotiated
// format, header bookkeeping, and cue index all survive.
func (e *Element) FlushStop() {
	e.mu.Lock()
	e.dec.Reset()
	e.pending = nil
	e.mu.Unlock()
	e.log.Debug("flush-stop, discarded pending caption")
}

// EndOfStream flushes the pending caption, if any, as a final cue with
// zero duration; no later event exists to bound it. Downstream push
// failures are logged only, since nothing can follow end-of-stream.
func (e *Element) EndOfStream() {
	e.mu.Lock()
	if e.pending == nil {
		e.mu.Unlock()
		return
	}
	previous := e.pending
	e.pending = nil
	format := e.format
	e.log.Debug("flushing final caption at end of stream")
	header, cue := e.closeCue(format, previous, previous.pts)
	e.mu.Unlock()

	if header != nil {
		if err := e.sink.Push(header); err != nil {
			e.log.Warn("header push failed at end of stream", "error", err)
		}
	}
	if err := e.sink.Push(cue); err != nil {
		e.log.Warn("cue push failed at end of stream", "error", err)
	}
}

// Reset reinitializes all per-stream state to its defaults, as when the
// element leaves or re-enters active playback.
func (e *Element) Reset() {
	e.mu.Lock()
	e.dec.Reset()
	e.format = 0
	e.negotiated = false
	e.wroteHeader = false
	e.pending = nil
	e.index = 1
	e.mu.Unlock()
	e.log.Debug("state reset")
}

// closeCue renders the pending caption as a cue ending at end, flooring
// the duration at zero for non-monotonic timestamps, and produces the
// one-time header first when the format requires one. Called with the
// state lock held; all state changes land here, before any push, so a
// downstream failure never needs rollback.
func (e *Element) closeCue(format subtitle.Format, previous *pendingText, end media.ClockTime) (header, cue *media.Buffer) {
	duration := media.ClockTime(0)
	if end > previous.pts {
		duration = end - previous.pts
	}

	if !e.wroteHeader {
		e.wroteHeader = true
		if format.NeedsHeader() {
			header = subtitle.Header(format, previous.pts)
		}
	}

	cue = subtitle.Render(format, subtitle.Cue{
		PTS:      previous.pts,
		Duration: duration,
		Text:     previous.text,
		Index:    e.index,
	})
	e.index++
	return header, cue
}
