package resp

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies codec failures. NotComplete is a retry signal, every
// other kind is fatal for the frame being decoded.
type ErrorKind uint8

const (
	KindInvalidFrame ErrorKind = iota + 1
	KindInvalidFrameType
	KindInvalidFrameLength
	KindNotComplete
	KindParseInt
	KindUtf8
	KindParseFloat
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidFrame:
		return "invalid frame"
	case KindInvalidFrameType:
		return "invalid frame type"
	case KindInvalidFrameLength:
		return "invalid frame length"
	case KindNotComplete:
		return "frame is not complete"
	case KindParseInt:
		return "parse int error"
	case KindUtf8:
		return "utf8 error"
	case KindParseFloat:
		return "parse float error"
	default:
		return "unknown error"
	}
}

// Error is the only error type returned by the codec.
type Error struct {
	Kind ErrorKind
	// Text is the offending input, kept for diagnostics.
	Text string
	// Length is the offending length for KindInvalidFrameLength when the
	// header parsed as an integer.
	Length int64
	// Err is the underlying strconv error, if any.
	Err error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidFrame       = &Error{Kind: KindInvalidFrame}
	ErrInvalidFrameType   = &Error{Kind: KindInvalidFrameType}
	ErrInvalidFrameLength = &Error{Kind: KindInvalidFrameLength}
	ErrNotComplete        = &Error{Kind: KindNotComplete}
	ErrParseInt           = &Error{Kind: KindParseInt}
	ErrUtf8               = &Error{Kind: KindUtf8}
	ErrParseFloat         = &Error{Kind: KindParseFloat}
)

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNotComplete:
		return e.Kind.String()
	case e.Kind == KindInvalidFrameLength && e.Text == "":
		return fmt.Sprintf("%s: %d", e.Kind, e.Length)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, strconv.Quote(e.Text), e.Err)
	case e.Text != "":
		return fmt.Sprintf("%s: %s", e.Kind, strconv.Quote(e.Text))
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsNotComplete reports whether err only means that more bytes are needed.
func IsNotComplete(err error) bool {
	return errors.Is(err, ErrNotComplete)
}

// IsFatal reports whether err is a codec error other than NotComplete.
func IsFatal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != KindNotComplete
}

func errInvalidFrame(text string) error {
	return &Error{Kind: KindInvalidFrame, Text: text}
}

func errInvalidFrameType(b byte) error {
	return &Error{Kind: KindInvalidFrameType, Text: string([]byte{b})}
}

func errInvalidLength(n int64) error {
	return &Error{Kind: KindInvalidFrameLength, Length: n}
}

func errInvalidLengthText(text string, err error) error {
	return &Error{Kind: KindInvalidFrameLength, Text: text, Err: err}
}
