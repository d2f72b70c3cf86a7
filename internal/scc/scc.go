// Package scc reads Scenarist Closed Caption (.scc) files, the common
// interchange format for raw CEA-608 byte-pair streams: a header line
// followed by caption lines of "HH:MM:SS:FF<tab>hex words", one 16-bit
// word per video frame at 29.97 fps.
package scc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zsiec/cea608tt/internal/media"
)

const headerLine = "Scenarist_SCC V1.0"

// SCC timecodes run at NTSC video rate, 30000/1001 frames per second.
const (
	frameRateNum = 30000
	frameRateDen = 1001
)

// Read parses an SCC document into a sequence of timestamped 2-byte
// caption buffers. Words within one caption line are spaced one frame
// apart starting at the line's timecode; a ";" before the frame field
// marks drop-frame timecode.
func Read(r io.Reader) ([]*media.Buffer, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("scc: empty document")
	}
	if strings.TrimSpace(sc.Text()) != headerLine {
		return nil, fmt.Errorf("scc: line 1: missing %q header", headerLine)
	}

	var out []*media.Buffer
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		tc, rest, ok := strings.Cut(line, "\t")
		if !ok {
			// Some writers separate the timecode with a space instead.
			tc, rest, ok = strings.Cut(line, " ")
			if !ok {
				return nil, fmt.Errorf("scc: line %d: missing timecode separator", lineNo)
			}
		}
		start, err := parseTimecode(tc)
		if err != nil {
			return nil, fmt.Errorf("scc: line %d: %w", lineNo, err)
		}

		for i, word := range strings.Fields(rest) {
			w, err := strconv.ParseUint(word, 16, 16)
			if err != nil || len(word) != 4 {
				return nil, fmt.Errorf("scc: line %d: bad caption word %q", lineNo, word)
			}
			out = append(out, &media.Buffer{
				PTS:      frameTime(start + int64(i)),
				Duration: media.ClockTimeNone,
				Data:     []byte{byte(w >> 8), byte(w)},
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseTimecode converts "HH:MM:SS:FF" (";" before FF for drop-frame) to
// an absolute frame number.
func parseTimecode(s string) (int64, error) {
	drop := strings.Contains(s, ";")
	parts := strings.Split(strings.ReplaceAll(s, ";", ":"), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("bad timecode %q", s)
	}

	var v [4]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("bad timecode %q", s)
		}
		v[i] = n
	}
	h, m, sec, f := v[0], v[1], v[2], v[3]
	if m > 59 || sec > 59 || f > 29 {
		return 0, fmt.Errorf("bad timecode %q", s)
	}

	frames := (3600*h+60*m+sec)*30 + f
	if drop {
		// Drop-frame timecode skips frame numbers 0 and 1 of every minute
		// not divisible by ten.
		minutes := 60*h + m
		frames -= 2 * (minutes - minutes/10)
	}
	return frames, nil
}

// frameTime converts an absolute frame number to its stream position.
func frameTime(frame int64) media.ClockTime {
	return media.ClockTime(frame * frameRateDen * 1_000_000_000 / frameRateNum)
}
