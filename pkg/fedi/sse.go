package fedi

import (
	"bufio"
	"io"
	"strings"
)

// DefaultEventName is assigned to frames whose wire form omitted the
// event field, per the SSE default-event rule.
const DefaultEventName = "message"

// EventFrame is one decoded unit of the streaming wire format: an event
// name plus its payload. Frames are created by the decoder, dispatched
// exactly once, and not retained.
type EventFrame struct {
	Name    string
	Payload string
}

// StreamDecoder converts an unbounded, arbitrarily-chunked byte stream
// into complete EventFrames. Wire frames are newline-delimited field lines
// ("event: <name>", "data: <payload>") terminated by a blank line; comment
// lines start with ':'.
type StreamDecoder struct {
	reader *bufio.Reader
}

// NewStreamDecoder creates a decoder over r.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{reader: bufio.NewReader(r)}
}

// Next blocks until a complete frame has been assembled and returns it. A
// frame's fields may arrive split across any number of underlying reads;
// partial lines are buffered until their newline arrives. At end of stream
// Next returns the reader's error (io.EOF on a clean close); an incomplete
// trailing frame is discarded, never emitted, since it cannot be proven
// complete.
func (d *StreamDecoder) Next() (*EventFrame, error) {
	var (
		name      string
		dataLines []string
		sawField  bool
	)

	for {
		line, err := d.reader.ReadString('\n')
		if err != nil {
			// Whatever was read before the error is an unterminated frame.
			return nil, err
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if !sawField {
				// Stray separator between frames.
				continue
			}

			if name == "" {
				name = DefaultEventName
			}

			return &EventFrame{
				Name:    name,
				Payload: strings.Join(dataLines, "\n"),
			}, nil
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			name = value
			sawField = true
		case "data":
			dataLines = append(dataLines, value)
			sawField = true
		default:
			// Unrecognized fields are ignored per the wire format's
			// extensibility rule.
		}
	}
}
