// Package convert wires the SCC reader, the conversion element, and an
// output writer into one-shot document conversions for the CLI.
package convert

import (
	"io"
	"log/slog"

	"github.com/zsiec/cea608tt/internal/element"
	"github.com/zsiec/cea608tt/internal/media"
	"github.com/zsiec/cea608tt/internal/scc"
	"github.com/zsiec/cea608tt/internal/subtitle"
)

// writerSink streams rendered subtitle buffers to an io.Writer, dropping
// the stream-position metadata that file output has no channel for.
type writerSink struct {
	w io.Writer
}

func (s *writerSink) SetCaps(media.Caps) error { return nil }

func (s *writerSink) Push(b *media.Buffer) error {
	_, err := s.w.Write(b.Data)
	return err
}

// cueSink collects cues from a raw-format element, reconstructing each
// from the buffer payload and its timing metadata.
type cueSink struct {
	cues []subtitle.Cue
}

func (s *cueSink) SetCaps(media.Caps) error { return nil }

func (s *cueSink) Push(b *media.Buffer) error {
	s.cues = append(s.cues, subtitle.Cue{
		PTS:      b.PTS,
		Duration: b.Duration,
		Text:     string(b.Data),
		Index:    uint64(len(s.cues) + 1),
	})
	return nil
}

// File converts one SCC document to subtitles in the given format,
// writing the rendered bytes to out.
func File(in io.Reader, out io.Writer, format subtitle.Format, log *slog.Logger) error {
	bufs, err := scc.Read(in)
	if err != nil {
		return err
	}
	return run(element.New(&writerSink{w: out}, log), format, bufs)
}

// Cues decodes an SCC document and returns its cues without rendering
// them into a subtitle container format.
func Cues(in io.Reader, log *slog.Logger) ([]subtitle.Cue, error) {
	bufs, err := scc.Read(in)
	if err != nil {
		return nil, err
	}
	sink := &cueSink{}
	if err := run(element.New(sink, log), subtitle.FormatRaw, bufs); err != nil {
		return nil, err
	}
	return sink.cues, nil
}

// run drives one element through a complete stream: negotiation, every
// caption buffer in order, then end-of-stream.
func run(el *element.Element, format subtitle.Format, bufs []*media.Buffer) error {
	if err := el.Negotiate([]media.Caps{format.OutputCaps()}); err != nil {
		return err
	}
	for _, b := range bufs {
		if err := el.HandleBuffer(b); err != nil {
			return err
		}
	}
	el.EndOfStream()
	return nil
}
