package codec

import (
	"bytes"
	"fmt"
)

// StringBlock owns the trailing string heap of a DBC file: a run of
// nul-terminated byte strings addressed by offset. Offset 0 conventionally
// holds the empty string.
type StringBlock struct {
	data []byte
}

// NewStringBlock wraps raw string-block bytes read from a file. The block
// takes ownership of data.
func NewStringBlock(data []byte) *StringBlock {
	return &StringBlock{data: data}
}

// Len returns the current byte length of the block.
func (b *StringBlock) Len() int { return len(b.data) }

// Bytes returns the raw block for serialization. Callers must not modify it.
func (b *StringBlock) Bytes() []byte { return b.data }

// Get returns the nul-terminated string starting at offset. Offsets outside
// the block, or entries with no terminator, are rejected rather than read
// past the buffer.
func (b *StringBlock) Get(offset uint32) (string, error) {
	if int64(offset) >= int64(len(b.data)) {
		return "", fmt.Errorf("string offset %d out of bounds (block is %d bytes)", offset, len(b.data))
	}
	end := bytes.IndexByte(b.data[offset:], 0)
	if end < 0 {
		return "", fmt.Errorf("unterminated string at offset %d", offset)
	}
	return string(b.data[offset : int(offset)+end]), nil
}

// Find returns the offset of an existing entry equal to s.
func (b *StringBlock) Find(s string) (uint32, bool) {
	for off := 0; off < len(b.data); {
		end := bytes.IndexByte(b.data[off:], 0)
		if end < 0 {
			break
		}
		if end == len(s) && string(b.data[off:off+end]) == s {
			return uint32(off), true
		}
		off += end + 1
	}
	return 0, false
}

// Intern returns the offset of s, appending a new nul-terminated entry when
// the block has no matching one. An empty block gains a leading nul first so
// that offset 0 keeps denoting the empty string.
func (b *StringBlock) Intern(s string) uint32 {
	if len(b.data) == 0 {
		b.data = append(b.data, 0)
	}
	if off, ok := b.Find(s); ok {
		return off
	}
	off := uint32(len(b.data))
	b.data = append(b.data, s...)
	b.data = append(b.data, 0)
	return off
}
