// Package cea608 decodes CEA-608 closed-caption byte pairs into display
// text, reporting frame readiness and clear events to the caller. The
// bit-level decode is delegated to github.com/zsiec/ccx; this package adds
// parity validation and the Ok/Ready/Clear protocol the conversion element
// drives on.
package cea608

import (
	"errors"
	"math/bits"

	"github.com/zsiec/ccx"
)

// Status is the outcome of feeding one byte pair to the decoder.
type Status int

const (
	// StatusOK means the pair was absorbed with no actionable change.
	StatusOK Status = iota
	// StatusReady means a complete caption frame is available via Text.
	StatusReady
	// StatusClear means the currently displayed caption should end.
	StatusClear
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusReady:
		return "ready"
	case StatusClear:
		return "clear"
	}
	return "unknown"
}

var (
	// ErrParity indicates a byte pair that fails CEA-608 odd parity.
	ErrParity = errors.New("cea608: parity error")
	// ErrNoText indicates Text was called before any frame completed.
	ErrNoText = errors.New("cea608: no completed caption frame")
)

// Decoder is a stateful CEA-608 decoder for a single caption channel. The
// zero value is not usable; create one with NewDecoder.
type Decoder struct {
	dec  *ccx.CEA608Decoder
	text string
	has  bool
}

// NewDecoder returns a Decoder in its empty, idle state.
func NewDecoder() *Decoder {
	return &Decoder{dec: ccx.NewCEA608Decoder()}
}

// Decode feeds one 16-bit caption pair (first byte in the high bits) to
// the decoder. pts is the pair's stream position in seconds; CEA-608 is a
// constant-rate channel, so the position only informs the caller's timing
// bookkeeping, not the decode itself.
func (d *Decoder) Decode(ccData uint16, pts float64) (Status, error) {
	_ = pts

	cc1 := byte(ccData >> 8)
	cc2 := byte(ccData)
	if !oddParity(cc1) || !oddParity(cc2) {
		return StatusOK, ErrParity
	}
	cc1 &= 0x7F
	cc2 &= 0x7F

	if isEraseDisplayed(cc1, cc2) {
		d.dec.Decode(cc1, cc2)
		return StatusClear, nil
	}

	if text := d.dec.Decode(cc1, cc2); text != "" {
		d.text = text
		d.has = true
		return StatusReady, nil
	}
	return StatusOK, nil
}

// Text returns the display text of the most recently completed caption
// frame.
func (d *Decoder) Text() (string, error) {
	if !d.has {
		return "", ErrNoText
	}
	return d.text, nil
}

// Reset returns the decoder to its empty, idle state.
func (d *Decoder) Reset() {
	d.dec = ccx.NewCEA608Decoder()
	d.text = ""
	d.has = false
}

// isEraseDisplayed reports whether the parity-stripped pair is an Erase
// Displayed Memory control code, on either caption channel or field.
func isEraseDisplayed(cc1, cc2 byte) bool {
	switch cc1 {
	case 0x14, 0x15, 0x1C, 0x1D:
		return cc2 == 0x2C
	}
	return false
}

// oddParity reports whether b carries valid CEA-608 odd parity.
func oddParity(b byte) bool {
	return bits.OnesCount8(b)%2 == 1
}
