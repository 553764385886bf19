package wire

import (
	"errors"
	"io"
	"net"
)

// Sentinel errors for the distinct ways an exchange can fail. Workers treat
// all of them as fatal for their own connection only, but tests and logs
// need to tell them apart.
var (
	ErrPeerClosed       = errors.New("peer closed connection")
	ErrDecryptFailure   = errors.New("frame failed decryption")
	ErrMalformedPayload = errors.New("malformed payload")
)

// CloseKind classifies why an exchange failed
type CloseKind int

const (
	// KindNone means the error was nil
	KindNone CloseKind = iota
	// KindGracefulClose is a zero-length read or EOF from the peer
	KindGracefulClose
	// KindDecryptFailure is a frame that failed Fernet verification
	KindDecryptFailure
	// KindMalformedPayload is a decrypted frame with bad or missing JSON
	KindMalformedPayload
	// KindIOError is any other socket-level failure, timeouts included
	KindIOError
)

// String returns the kind's log label
func (k CloseKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGracefulClose:
		return "graceful_close"
	case KindDecryptFailure:
		return "decrypt_failure"
	case KindMalformedPayload:
		return "malformed_payload"
	case KindIOError:
		return "io_error"
	default:
		return "unknown"
	}
}

// Classify maps an exchange error to its CloseKind
func Classify(err error) CloseKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrPeerClosed), errors.Is(err, io.EOF):
		return KindGracefulClose
	case errors.Is(err, ErrDecryptFailure):
		return KindDecryptFailure
	case errors.Is(err, ErrMalformedPayload):
		return KindMalformedPayload
	default:
		return KindIOError
	}
}

// IsTimeout reports whether err is a network timeout, as produced by an
// expired read deadline
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
