package mex

import "io"

// Sink receives expanded output. Both implementations used by the tool
// satisfy it directly: a *bytes.Buffer captures a sub-expansion as data
// (\expandafter's AFTER operand, or a held-back top-level run) and a
// *bufio.Writer streams straight to the process output. The engine is
// sink-agnostic; dispatch never depends on which implementation is live.
type Sink interface {
	io.ByteWriter
	io.StringWriter
}

// streamSink adapts a plain io.Writer for writers that do not already
// provide byte and string methods.
type streamSink struct {
	w io.Writer
}

// NewStreamSink wraps w so it can be used as an expansion Sink.
func NewStreamSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return &streamSink{w: w}
}

func (s *streamSink) WriteByte(c byte) error {
	_, err := s.w.Write([]byte{c})
	return err
}

func (s *streamSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}
