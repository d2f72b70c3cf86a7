package scc

import (
	"strings"
	"testing"

	"github.com/zsiec/cea608tt/internal/media"
)

func TestReadBasic(t *testing.T) {
	t.Parallel()
	doc := "Scenarist_SCC V1.0\r\n\r\n00:00:01:00\t9420 9420 c8c5 d3d4\r\n"
	bufs, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(bufs) != 4 {
		t.Fatalf("got %d buffers, want 4", len(bufs))
	}

	if got := bufs[0].Data; got[0] != 0x94 || got[1] != 0x20 {
		t.Errorf("first word = %x", got)
	}
	if got := bufs[2].Data; got[0] != 0xc8 || got[1] != 0xc5 {
		t.Errorf("third word = %x", got)
	}

	// Timecode 00:00:01:00 is frame 30; at 30000/1001 fps that is 1.001s.
	if bufs[0].PTS != 1_001_000_000 {
		t.Errorf("first PTS = %d, want 1001000000", bufs[0].PTS)
	}
	// Words advance one frame each.
	if bufs[1].PTS != 1_034_366_666 {
		t.Errorf("second PTS = %d, want 1034366666", bufs[1].PTS)
	}
	if bufs[0].Duration != media.ClockTimeNone {
		t.Errorf("duration = %d, want none", bufs[0].Duration)
	}
}

func TestReadMultipleLines(t *testing.T) {
	t.Parallel()
	doc := strings.Join([]string{
		"Scenarist_SCC V1.0",
		"",
		"00:00:01:00\t9420",
		"",
		"00:00:05:00 942f",
		"",
	}, "\n")
	bufs, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(bufs) != 2 {
		t.Fatalf("got %d buffers, want 2", len(bufs))
	}
	// Frame 150 at 30000/1001 fps.
	if bufs[1].PTS != 5_005_000_000 {
		t.Errorf("second line PTS = %d, want 5005000000", bufs[1].PTS)
	}
}

func TestReadDropFrameTimecode(t *testing.T) {
	t.Parallel()
	doc := "Scenarist_SCC V1.0\n\n00:01:00;02\t9420\n"
	bufs, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Minute 1 drops frames 0 and 1, so 00:01:00;02 is frame 1800,
	// exactly one minute of wall clock: 60.06s.
	if bufs[0].PTS != 60_060_000_000 {
		t.Errorf("PTS = %d, want 60060000000", bufs[0].PTS)
	}
}

func TestReadMissingHeader(t *testing.T) {
	t.Parallel()
	if _, err := Read(strings.NewReader("00:00:01:00\t9420\n")); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestReadEmptyDocument(t *testing.T) {
	t.Parallel()
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestReadBadWord(t *testing.T) {
	t.Parallel()
	doc := "Scenarist_SCC V1.0\n\n00:00:01:00\t94zz\n"
	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for bad caption word")
	}
	doc = "Scenarist_SCC V1.0\n\n00:00:01:00\t94200\n"
	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for overlong caption word")
	}
}

func TestReadBadTimecode(t *testing.T) {
	t.Parallel()
	for _, tc := range []string{"1:00", "00:00:61:00", "00:00:01:30", "aa:00:01:00"} {
		doc := "Scenarist_SCC V1.0\n\n" + tc + "\t9420\n"
		if _, err := Read(strings.NewReader(doc)); err == nil {
			t.Errorf("expected error for timecode %q", tc)
		}
	}
}

func TestParseTimecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int64
	}{
		{"00:00:00:00", 0},
		{"00:00:01:00", 30},
		{"00:00:01:29", 59},
		{"01:00:00:00", 108000},
		{"00:10:00;00", 17982}, // 600*30 minus 18 dropped pairs
	}
	for _, tt := range tests {
		got, err := parseTimecode(tt.in)
		if err != nil {
			t.Errorf("parseTimecode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimecode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
