package osr

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Cursor is a forward-only decoder over an in-memory byte slice. Each
// read advances the offset by the consumed width on success and leaves
// it untouched on failure.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data. The cursor borrows the slice and never
// modifies it.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadInt16 reads a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a little-endian int64.
func (c *Cursor) ReadInt64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return int64(v), nil
}

// ReadULEB128 decodes an unsigned little-endian base-128 varint,
// capped at 32 bits.
func (c *Cursor) ReadULEB128() (uint32, error) {
	var v uint64
	var shift uint

	for n := 0; ; n++ {
		if n >= c.Remaining() {
			return 0, fmt.Errorf("%w: unterminated uleb128 at offset %d", ErrUnexpectedEOF, c.pos)
		}

		b := c.data[c.pos+n]
		if n == 4 && b > 0x0f { // 5th byte may only carry 4 bits
			return 0, fmt.Errorf("%w: uleb128 at offset %d exceeds 32 bits", ErrOverflow, c.pos)
		}

		v |= uint64(b&0x7f) << shift
		if v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: uleb128 at offset %d exceeds 32 bits", ErrOverflow, c.pos)
		}

		if b&0x80 == 0 {
			c.pos += n + 1
			return uint32(v), nil
		}
		shift += 7
	}
}

// ReadString decodes a length-prefixed string. A 0x00 tag denotes the
// empty string; a 0x0b tag is followed by a ULEB128 byte length and
// that many bytes of UTF-8 text.
func (c *Cursor) ReadString() (string, error) {
	start := c.pos

	tag, err := c.ReadUint8()
	if err != nil {
		return "", err
	}

	switch tag {
	case 0x00:
		return "", nil
	case 0x0b:
	default:
		c.pos = start
		return "", fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidStringTag, tag, start)
	}

	n, err := c.ReadULEB128()
	if err != nil {
		c.pos = start
		return "", err
	}

	raw, err := c.ReadBytes(int(n))
	if err != nil {
		c.pos = start
		return "", err
	}

	if !utf8.Valid(raw) {
		c.pos = start
		return "", fmt.Errorf("%w: string at offset %d", ErrInvalidUTF8, start)
	}
	return string(raw), nil
}

// ReadBytes returns a view of the next n bytes. The slice aliases the
// underlying buffer and must be copied if retained beyond its
// lifetime.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

func (c *Cursor) need(n int) error {
	if rem := c.Remaining(); rem < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, c.pos, rem)
	}
	return nil
}
