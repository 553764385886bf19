package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// MaxFrameSize bounds a single read. The peers send one blob per write with
// no length prefix, so a frame is assumed to arrive in one read.
const MaxFrameSize = 2048

// Conn frames messages over a net.Conn: each message is one encrypted opaque
// blob per network write. Not safe for concurrent use; each connection is
// owned by exactly one worker.
type Conn struct {
	nc          net.Conn
	codec       *Codec
	readTimeout time.Duration
	buf         []byte
}

// NewConn wraps a net.Conn with the codec. A zero readTimeout disables read
// deadlines, mirroring the reference behavior; the servers pass a non-zero
// timeout so a vanished peer is detected without an OS-level reset.
func NewConn(nc net.Conn, codec *Codec, readTimeout time.Duration) *Conn {
	return &Conn{
		nc:          nc,
		codec:       codec,
		readTimeout: readTimeout,
		buf:         make([]byte, MaxFrameSize),
	}
}

// ReadFrame reads and decrypts one blob
func (c *Conn) ReadFrame() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.nc.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
	}

	n, err := c.nc.Read(c.buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrPeerClosed
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}
	if n == 0 {
		return nil, ErrPeerClosed
	}

	return c.codec.Decrypt(c.buf[:n])
}

// WriteFrame encrypts and sends one blob
func (c *Conn) WriteFrame(plaintext []byte) error {
	blob, err := c.codec.Encrypt(plaintext)
	if err != nil {
		return err
	}
	if _, err := c.nc.Write(blob); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadJSON reads one frame and unmarshals it into v. A frame that decrypts
// but does not parse is a malformed payload, not a transport failure.
func (c *Conn) ReadJSON(v any) error {
	plaintext, err := c.ReadFrame()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

// WriteJSON marshals v and sends it as one frame
func (c *Conn) WriteJSON(v any) error {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.WriteFrame(plaintext)
}

// ReadText reads one frame as a string
func (c *Conn) ReadText() (string, error) {
	plaintext, err := c.ReadFrame()
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// WriteText sends a string as one frame
func (c *Conn) WriteText(s string) error {
	return c.WriteFrame([]byte(s))
}

// RemoteAddr returns the peer address
func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}

// Close closes the underlying connection
func (c *Conn) Close() error {
	return c.nc.Close()
}
