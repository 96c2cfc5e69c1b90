package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders f the way redis-cli prints replies on a terminal.
func Format(f Frame) string {
	var b strings.Builder
	formatFrame(&b, f, "")
	return b.String()
}

// FormatRaw renders f without type annotations or quoting, one line per
// scalar, which is what scripts reading from a pipe expect.
func FormatRaw(f Frame) string {
	var lines []string
	lines = formatRaw(lines, f)
	return strings.Join(lines, "\n")
}

func formatFrame(b *strings.Builder, f Frame, indent string) {
	switch v := f.(type) {
	case SimpleString:
		b.WriteString(v.Value)
	case SimpleError:
		b.WriteString("(error) ")
		b.WriteString(v.Message)
	case Integer:
		b.WriteString("(integer) ")
		b.WriteString(strconv.FormatInt(v.Value, 10))
	case BulkString:
		b.WriteString(strconv.Quote(string(v.Value)))
	case NullBulkString, NullArray, Null, nil:
		b.WriteString("(nil)")
	case Boolean:
		if v.Value {
			b.WriteString("(true)")
		} else {
			b.WriteString("(false)")
		}
	case Double:
		b.WriteString("(double) ")
		b.WriteString(formatDouble(v.Value))
	case Array:
		formatElements(b, v.Elements, indent, "(empty array)")
	case Set:
		formatElements(b, v.Elements, indent, "(empty set)")
	case Map:
		if v.Len() == 0 {
			b.WriteString("(empty hash)")
			return
		}
		width := len(strconv.Itoa(v.Len()))
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(indent)
			}
			prefix := fmt.Sprintf("%*d# ", width, i+1)
			b.WriteString(prefix)
			b.WriteString(strconv.Quote(e.Key))
			b.WriteString(" => ")
			formatFrame(b, e.Value, indent+strings.Repeat(" ", len(prefix)))
		}
	}
}

func formatElements(b *strings.Builder, elems []Frame, indent, empty string) {
	if len(elems) == 0 {
		b.WriteString(empty)
		return
	}

	width := len(strconv.Itoa(len(elems)))
	for i, e := range elems {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(indent)
		}
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		b.WriteString(prefix)
		formatFrame(b, e, indent+strings.Repeat(" ", len(prefix)))
	}
}

func formatRaw(lines []string, f Frame) []string {
	switch v := f.(type) {
	case SimpleString:
		return append(lines, v.Value)
	case SimpleError:
		return append(lines, v.Message)
	case Integer:
		return append(lines, strconv.FormatInt(v.Value, 10))
	case BulkString:
		return append(lines, string(v.Value))
	case NullBulkString, NullArray, Null, nil:
		return append(lines, "")
	case Boolean:
		return append(lines, strconv.FormatBool(v.Value))
	case Double:
		return append(lines, formatDouble(v.Value))
	case Array:
		for _, e := range v.Elements {
			lines = formatRaw(lines, e)
		}
	case Set:
		for _, e := range v.Elements {
			lines = formatRaw(lines, e)
		}
	case Map:
		for _, e := range v.entries {
			lines = append(lines, e.Key)
			lines = formatRaw(lines, e.Value)
		}
	}
	return lines
}

func formatDouble(f float64) string {
	return string(appendDouble(nil, f))
}
