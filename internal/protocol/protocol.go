// Package protocol implements the length-prefixed framing used on the game
// wire. Every logical message is an 8-digit zero-padded ASCII decimal length
// header followed by exactly that many payload bytes. The framer is
// encoding-agnostic; payload interpretation belongs to the caller.
package protocol

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// HeaderLen is the fixed width of the decimal length header.
	HeaderLen = 8
	// MaxPayload is the largest payload the 8-digit header can describe.
	MaxPayload = 99_999_999
)

// ErrDisconnected reports that the peer is gone: the stream closed or reset
// mid-read, or the header bytes did not parse as a non-negative integer.
// Callers treat it as a normal disconnect, never as a fault to propagate.
var ErrDisconnected = errors.New("peer disconnected")

// Send frames payload with its length header and writes both as a single
// logical write. A failed write means the peer vanished.
func Send(w io.Writer, payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("payload of %d bytes exceeds header capacity", len(payload))
	}
	frame := make([]byte, 0, HeaderLen+len(payload))
	frame = append(frame, fmt.Sprintf("%0*d", HeaderLen, len(payload))...)
	frame = append(frame, payload...)
	if _, err := w.Write(frame); err != nil {
		return ErrDisconnected
	}
	return nil
}

// Receive reads one framed message: exactly HeaderLen header bytes, then
// exactly the declared payload length. Any short read or a malformed header
// yields ErrDisconnected.
func Receive(r io.Reader) ([]byte, error) {
	header := make([]byte, HeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrDisconnected
	}
	n, err := strconv.Atoi(string(header))
	if err != nil || n < 0 {
		return nil, ErrDisconnected
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ErrDisconnected
	}
	return payload, nil
}
