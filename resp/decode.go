package resp

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decode removes one complete frame from the front of b and returns it.
//
// If b does not hold a complete frame yet, Decode returns ErrNotComplete and
// leaves b untouched so the call can be retried after more bytes are written.
// Fatal errors also leave b untouched; the caller decides whether to drop the
// connection.
func Decode(b *Buffer) (Frame, error) {
	f, n, err := DecodeBytes(b.Bytes())
	if err != nil {
		return nil, err
	}
	b.Next(n)
	return f, nil
}

// DecodeBytes decodes the frame at the start of p and returns it along with
// the number of bytes it occupied. Bytes after the frame are not read.
func DecodeBytes(p []byte) (Frame, int, error) {
	n, err := FrameLength(p)
	if err != nil {
		return nil, 0, err
	}

	d := decoder{data: p[:n]}
	f, err := d.next()
	if err != nil {
		return nil, 0, err
	}
	if d.pos != n {
		return nil, 0, errInvalidFrame(string(p[d.pos:n]))
	}
	return f, n, nil
}

// decoder is a read cursor over bytes the prober already found complete.
type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) next() (Frame, error) {
	if d.pos >= len(d.data) {
		return nil, ErrNotComplete
	}

	switch d.data[d.pos] {
	case TypeSimple:
		s, err := d.readText()
		if err != nil {
			return nil, err
		}
		return SimpleString{Value: s}, nil
	case TypeError:
		s, err := d.readText()
		if err != nil {
			return nil, err
		}
		return SimpleError{Message: s}, nil
	case TypeInteger:
		return d.readInteger()
	case TypeBlob:
		return d.readBulk()
	case TypeArray:
		elems, isNull, err := d.readElements()
		if err != nil {
			return nil, err
		}
		if isNull {
			return NullArray{}, nil
		}
		return Array{Elements: elems}, nil
	case TypeSet:
		elems, isNull, err := d.readElements()
		if err != nil {
			return nil, err
		}
		if isNull {
			return Null{}, nil
		}
		return Set{Elements: elems}, nil
	case TypeMap:
		return d.readMap()
	case TypeNull:
		return d.readNull()
	case TypeBoolean:
		return d.readBoolean()
	case TypeDouble:
		return d.readDouble()
	default:
		return nil, errInvalidFrameType(d.data[d.pos])
	}
}

// readLine returns the bytes between the marker and the next CRLF and moves
// past the CRLF.
func (d *decoder) readLine() ([]byte, error) {
	rest := d.data[d.pos:]
	end := findCRLF(rest)
	if end < 0 {
		return nil, ErrNotComplete
	}
	d.pos += end + crlfLen
	return rest[1:end], nil
}

func (d *decoder) readText() (string, error) {
	line, err := d.readLine()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(line) {
		return "", &Error{Kind: KindUtf8, Text: string(line)}
	}
	return string(line), nil
}

func (d *decoder) readLength() (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}
	return parseLength(line)
}

func (d *decoder) readInteger() (Frame, error) {
	s, err := d.readText()
	if err != nil {
		return nil, err
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &Error{Kind: KindParseInt, Text: s, Err: err}
	}
	return Integer{Value: i}, nil
}

func (d *decoder) readDouble() (Frame, error) {
	s, err := d.readText()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(s, "-nan") {
		return Double{Value: math.NaN()}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &Error{Kind: KindParseFloat, Text: s, Err: err}
	}
	return Double{Value: f}, nil
}

func (d *decoder) readBoolean() (Frame, error) {
	s, err := d.readText()
	if err != nil {
		return nil, err
	}
	switch s {
	case "t":
		return Boolean{Value: true}, nil
	case "f":
		return Boolean{Value: false}, nil
	default:
		return nil, errInvalidFrame(s)
	}
}

func (d *decoder) readNull() (Frame, error) {
	line, err := d.readLine()
	if err != nil {
		return nil, err
	}
	if len(line) != 0 {
		return nil, errInvalidFrame(string(line))
	}
	return Null{}, nil
}

func (d *decoder) readBulk() (Frame, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	if n == nullLength {
		return NullBulkString{}, nil
	}

	if int64(len(d.data)-d.pos-crlfLen) < n {
		return nil, ErrNotComplete
	}
	end := d.pos + int(n)
	value := make([]byte, n)
	copy(value, d.data[d.pos:end])

	if !bytes.Equal(d.data[end:end+crlfLen], crlf) {
		return nil, errInvalidFrame(string(d.data[end : end+crlfLen]))
	}
	d.pos = end + crlfLen
	return BulkString{Value: value}, nil
}

// readElements decodes the nested frames of an array or set. isNull is set
// for a declared count of -1.
func (d *decoder) readElements() ([]Frame, bool, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, false, err
	}
	if n == nullLength {
		return nil, true, nil
	}

	var elems []Frame
	if n > 0 {
		elems = make([]Frame, 0, n)
	}
	for i := int64(0); i < n; i++ {
		f, err := d.next()
		if err != nil {
			return nil, false, err
		}
		elems = append(elems, f)
	}
	return elems, false, nil
}

func (d *decoder) readMap() (Frame, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	if n == nullLength {
		return Null{}, nil
	}

	m := NewMap()
	for i := int64(0); i < n; i++ {
		k, err := d.next()
		if err != nil {
			return nil, err
		}
		key, err := mapKey(k)
		if err != nil {
			return nil, err
		}
		v, err := d.next()
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, nil
}

// mapKey accepts simple strings, and bulk strings holding valid UTF-8.
func mapKey(f Frame) (string, error) {
	switch k := f.(type) {
	case SimpleString:
		return k.Value, nil
	case BulkString:
		if !utf8.Valid(k.Value) {
			return "", &Error{Kind: KindUtf8, Text: string(k.Value)}
		}
		return string(k.Value), nil
	default:
		return "", errInvalidFrameType(f.Prefix())
	}
}
