package resp

// RESP is the Redis serialization protocol.
// https://github.com/redis/redis-specifications/blob/master/protocol/RESP3.md

const CRLF string = "\r\n"

const crlfLen = len(CRLF)

// Types equivalent to RESP version 2
const (
	TypeArray   byte = '*'
	TypeBlob    byte = '$'
	TypeSimple  byte = '+'
	TypeError   byte = '-'
	TypeInteger byte = ':'
)

// Types introduced by RESP3
const (
	TypeNull    byte = '_'
	TypeDouble  byte = ','
	TypeBoolean byte = '#'
	TypeMap     byte = '%'
	TypeSet     byte = '~'
)

// nullLength is the length header of a null bulk string or null aggregate.
const nullLength = -1
