package resp

import (
	"math"
	"strconv"
	"strings"
)

// Encode returns the canonical wire bytes of f. A nil frame encodes as Null.
func Encode(f Frame) []byte {
	return AppendFrame(nil, f)
}

// AppendFrame appends the canonical wire bytes of f to dst.
func AppendFrame(dst []byte, f Frame) []byte {
	if f == nil {
		return Null{}.appendRESP(dst)
	}
	return f.appendRESP(dst)
}

// EncodeCommand encodes a command name and its arguments as a request array.
func EncodeCommand(name string, args ...string) []byte {
	return Encode(Command(name, args...))
}

// - simple string: "+OK\r\n"
func (s SimpleString) appendRESP(dst []byte) []byte {
	return appendLine(dst, TypeSimple, s.Value)
}

// - error: "-ERR unknown command\r\n"
func (e SimpleError) appendRESP(dst []byte) []byte {
	return appendLine(dst, TypeError, e.Message)
}

// - integer: ":1000\r\n"
func (i Integer) appendRESP(dst []byte) []byte {
	dst = append(dst, TypeInteger)
	dst = strconv.AppendInt(dst, i.Value, 10)
	return append(dst, CRLF...)
}

// - bulk string: "$5\r\nhello\r\n"
func (b BulkString) appendRESP(dst []byte) []byte {
	dst = appendHeader(dst, TypeBlob, len(b.Value))
	dst = append(dst, b.Value...)
	return append(dst, CRLF...)
}

// - null bulk string: "$-1\r\n"
func (NullBulkString) appendRESP(dst []byte) []byte {
	return appendHeader(dst, TypeBlob, nullLength)
}

// - array: "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"
func (a Array) appendRESP(dst []byte) []byte {
	dst = appendHeader(dst, TypeArray, len(a.Elements))
	for _, e := range a.Elements {
		dst = AppendFrame(dst, e)
	}
	return dst
}

// - null array: "*-1\r\n"
func (NullArray) appendRESP(dst []byte) []byte {
	return appendHeader(dst, TypeArray, nullLength)
}

// - null: "_\r\n"
func (Null) appendRESP(dst []byte) []byte {
	return append(dst, TypeNull, '\r', '\n')
}

// - boolean: "#t\r\n" or "#f\r\n"
func (b Boolean) appendRESP(dst []byte) []byte {
	if b.Value {
		return append(dst, TypeBoolean, 't', '\r', '\n')
	}
	return append(dst, TypeBoolean, 'f', '\r', '\n')
}

// - double: ",3.14\r\n"
func (d Double) appendRESP(dst []byte) []byte {
	dst = append(dst, TypeDouble)
	dst = appendDouble(dst, d.Value)
	return append(dst, CRLF...)
}

// - map: "%2\r\n+a\r\n:1\r\n+b\r\n:2\r\n", keys in ascending order.
// A key holding CR or LF is written as a bulk string.
func (m Map) appendRESP(dst []byte) []byte {
	dst = appendHeader(dst, TypeMap, len(m.entries))
	for _, e := range m.entries {
		if strings.ContainsAny(e.Key, CRLF) {
			dst = NewBulkStringFromString(e.Key).appendRESP(dst)
		} else {
			dst = appendLine(dst, TypeSimple, e.Key)
		}
		dst = AppendFrame(dst, e.Value)
	}
	return dst
}

// - set: "~2\r\n+a\r\n+b\r\n"
func (s Set) appendRESP(dst []byte) []byte {
	dst = appendHeader(dst, TypeSet, len(s.Elements))
	for _, e := range s.Elements {
		dst = AppendFrame(dst, e)
	}
	return dst
}

func appendLine(dst []byte, prefix byte, s string) []byte {
	dst = append(dst, prefix)
	dst = append(dst, s...)
	return append(dst, CRLF...)
}

// appendDouble writes the shortest decimal that parses back to f.
func appendDouble(dst []byte, f float64) []byte {
	switch {
	case math.IsInf(f, 1):
		return append(dst, "inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	case math.IsNaN(f):
		return append(dst, "nan"...)
	default:
		return strconv.AppendFloat(dst, f, 'g', -1, 64)
	}
}

func appendHeader(dst []byte, prefix byte, n int) []byte {
	dst = append(dst, prefix)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, CRLF...)
}
