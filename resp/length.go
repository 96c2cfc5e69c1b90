package resp

import (
	"bytes"
	"strconv"
)

var crlf = []byte(CRLF)

// ExpectLength reports the total byte length of the frame of kind prefix at
// the start of buf, headers and terminators included. It only reads buf.
//
// ErrNotComplete means buf holds a prefix of a valid frame and the caller
// should retry once more bytes arrive. Any other error is fatal.
func ExpectLength(buf []byte, prefix byte) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNotComplete
	}
	if buf[0] != prefix {
		return 0, errInvalidFrameType(buf[0])
	}

	switch prefix {
	case TypeSimple, TypeError, TypeInteger, TypeBoolean, TypeDouble, TypeNull:
		end := findCRLF(buf)
		if end < 0 {
			return 0, ErrNotComplete
		}
		return end + crlfLen, nil
	case TypeBlob:
		return bulkLength(buf)
	case TypeArray, TypeSet:
		return aggregateLength(buf, 1)
	case TypeMap:
		return aggregateLength(buf, 2)
	default:
		return 0, errInvalidFrameType(prefix)
	}
}

// FrameLength is ExpectLength for whatever frame kind buf starts with.
func FrameLength(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNotComplete
	}
	return ExpectLength(buf, buf[0])
}

// findCRLF returns the offset of the first CRLF after the marker byte, or -1.
func findCRLF(buf []byte) int {
	if len(buf) < 1 {
		return -1
	}
	idx := bytes.Index(buf[1:], crlf)
	if idx < 0 {
		return -1
	}
	return idx + 1
}

// parseLength parses a length header line such as "$5" or "*-1".
// Only an optional minus sign may precede the digits.
func parseLength(line []byte) (int64, error) {
	if len(line) > 0 && line[0] == '+' {
		return 0, errInvalidLengthText(string(line), nil)
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, errInvalidLengthText(string(line), err)
	}
	if n < nullLength {
		return 0, errInvalidLength(n)
	}
	return n, nil
}

// header returns the declared length and the byte length of the header line.
func header(buf []byte) (int64, int, error) {
	end := findCRLF(buf)
	if end < 0 {
		return 0, 0, ErrNotComplete
	}
	n, err := parseLength(buf[1:end])
	if err != nil {
		return 0, 0, err
	}
	return n, end + crlfLen, nil
}

func bulkLength(buf []byte) (int, error) {
	n, hdr, err := header(buf)
	if err != nil {
		return 0, err
	}
	if n == nullLength {
		return hdr, nil
	}
	if int64(len(buf)-hdr-crlfLen) < n {
		return 0, ErrNotComplete
	}
	return hdr + int(n) + crlfLen, nil
}

// aggregateLength probes an array, set or map. per is the number of nested
// frames each declared element stands for: 1, or 2 for map pairs.
func aggregateLength(buf []byte, per int) (int, error) {
	n, total, err := header(buf)
	if err != nil {
		return 0, err
	}
	if n == nullLength {
		return total, nil
	}

	for i := int64(0); i < n; i++ {
		for j := 0; j < per; j++ {
			l, err := FrameLength(buf[total:])
			if err != nil {
				return 0, err
			}
			total += l
		}
	}
	return total, nil
}
