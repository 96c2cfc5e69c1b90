package resp

// Frame is one protocol value. The set of implementations is closed: every
// type below carries both an encode path (appendRESP) and a decode path
// (see decode.go), and no type outside this package can satisfy Frame.
type Frame interface {
	// Prefix returns the marker byte the frame is encoded with.
	Prefix() byte

	appendRESP(dst []byte) []byte
}

// SimpleString is a single line string. It must not contain CR or LF.
type SimpleString struct {
	Value string
}

// SimpleError is an error message, framed like a SimpleString.
type SimpleError struct {
	Message string
}

type Integer struct {
	Value int64
}

// BulkString is a binary safe string.
type BulkString struct {
	Value []byte
}

// NullBulkString is the RESP2 null, "$-1\r\n".
type NullBulkString struct{}

// Array represents an array in RESP
type Array struct {
	Elements []Frame
}

// NullArray is the RESP2 null array, "*-1\r\n".
type NullArray struct{}

// Null is the RESP3 null, "_\r\n".
type Null struct{}

type Boolean struct {
	Value bool
}

type Double struct {
	Value float64
}

// Set is framed like an Array. Elements are kept in wire order and
// duplicates are not removed.
type Set struct {
	Elements []Frame
}

func (SimpleString) Prefix() byte   { return TypeSimple }
func (SimpleError) Prefix() byte    { return TypeError }
func (Integer) Prefix() byte        { return TypeInteger }
func (BulkString) Prefix() byte     { return TypeBlob }
func (NullBulkString) Prefix() byte { return TypeBlob }
func (Array) Prefix() byte          { return TypeArray }
func (NullArray) Prefix() byte      { return TypeArray }
func (Null) Prefix() byte           { return TypeNull }
func (Boolean) Prefix() byte        { return TypeBoolean }
func (Double) Prefix() byte         { return TypeDouble }
func (Map) Prefix() byte            { return TypeMap }
func (Set) Prefix() byte            { return TypeSet }

func NewSimpleString(s string) SimpleString {
	return SimpleString{Value: s}
}

func NewSimpleError(msg string) SimpleError {
	return SimpleError{Message: msg}
}

func NewInteger(i int64) Integer {
	return Integer{Value: i}
}

func NewBulkString(b []byte) BulkString {
	return BulkString{Value: b}
}

func NewBulkStringFromString(s string) BulkString {
	return BulkString{Value: []byte(s)}
}

func NewArray(elems ...Frame) Array {
	return Array{Elements: elems}
}

func NewSet(elems ...Frame) Set {
	return Set{Elements: elems}
}

func NewBoolean(b bool) Boolean {
	return Boolean{Value: b}
}

func NewDouble(f float64) Double {
	return Double{Value: f}
}

// String returns the payload as a string.
func (b BulkString) String() string {
	return string(b.Value)
}

// Error lets a SimpleError travel as a Go error.
func (e SimpleError) Error() string {
	return e.Message
}

// Len returns the number of elements.
func (a Array) Len() int {
	return len(a.Elements)
}

// Len returns the number of elements, duplicates included.
func (s Set) Len() int {
	return len(s.Elements)
}

// FromBytes wraps raw bytes into a BulkString frame.
func FromBytes(b []byte) Frame {
	return NewBulkString(b)
}

// FromString wraps s into a BulkString frame.
func FromString(s string) Frame {
	return NewBulkStringFromString(s)
}

// Command builds the request form of a command: an array of bulk strings
// holding the command name followed by its arguments.
func Command(name string, args ...string) Array {
	elems := make([]Frame, 0, len(args)+1)
	elems = append(elems, NewBulkStringFromString(name))
	for _, arg := range args {
		elems = append(elems, NewBulkStringFromString(arg))
	}
	return Array{Elements: elems}
}

// Text returns the textual payload of a SimpleString or BulkString.
func Text(f Frame) (string, bool) {
	switch v := f.(type) {
	case SimpleString:
		return v.Value, true
	case BulkString:
		return string(v.Value), true
	default:
		return "", false
	}
}
