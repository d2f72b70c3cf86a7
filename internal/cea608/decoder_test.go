package cea608

import (
	"errors"
	"testing"
)

func TestOddParity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		b    byte
		want bool
	}{
		{0x80, true},  // null padding byte
		{0x00, false}, // even (zero) ones
		{0x94, true},  // 0x14 with parity bit
		{0x2C, true},  // three ones, parity already odd
		{0x14, false}, // control byte missing its parity bit
	}
	for _, tt := range tests {
		if got := oddParity(tt.b); got != tt.want {
			t.Errorf("oddParity(%#02x) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestDecodeParityError(t *testing.T) {
	t.Parallel()
	d := NewDecoder()
	status, err := d.Decode(0x0000, 1.0)
	if !errors.Is(err, ErrParity) {
		t.Fatalf("err = %v, want ErrParity", err)
	}
	if status != StatusOK {
		t.Errorf("status = %v, want ok", status)
	}
}

func TestDecodeEraseDisplayedMemory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		ccData uint16
	}{
		{"channel 1", 0x942C},
		{"channel 2", 0x1C2C},
		{"field 2 channel 1", 0x152C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDecoder()
			status, err := d.Decode(tt.ccData, 1.0)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if status != StatusClear {
				t.Errorf("status = %v, want clear", status)
			}
		})
	}
}

func TestDecodeNullPadding(t *testing.T) {
	t.Parallel()
	d := NewDecoder()
	status, err := d.Decode(0x8080, 0.5)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if status != StatusOK {
		t.Errorf("status = %v, want ok", status)
	}
}

func TestTextBeforeAnyFrame(t *testing.T) {
	t.Parallel()
	d := NewDecoder()
	if _, err := d.Text(); !errors.Is(err, ErrNoText) {
		t.Fatalf("err = %v, want ErrNoText", err)
	}
}

func TestResetClearsLatchedText(t *testing.T) {
	t.Parallel()
	d := NewDecoder()
	d.text = "HELLO"
	d.has = true
	d.Reset()
	if _, err := d.Text(); !errors.Is(err, ErrNoText) {
		t.Fatalf("err after reset = %v, want ErrNoText", err)
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()
	for s, want := range map[Status]string{
		StatusOK: "ok", StatusReady: "ready", StatusClear: "clear", Status(7): "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
