package codec

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed on-disk size of a DBC header.
const HeaderSize = 20

// Header is the 20-byte DBC file header.
// Format: [Magic(4)][RecordCount(4)][FieldCount(4)][RecordSize(4)][StringBlockSize(4)]
// All integers are little-endian.
type Header struct {
	Magic           [4]byte
	RecordCount     uint32
	FieldCount      uint32
	RecordSize      uint32
	StringBlockSize uint32
}

// Encode serializes the header into a fresh 20-byte buffer.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:], h.RecordCount)
	binary.LittleEndian.PutUint32(buf[8:], h.FieldCount)
	binary.LittleEndian.PutUint32(buf[12:], h.RecordSize)
	binary.LittleEndian.PutUint32(buf[16:], h.StringBlockSize)
	return buf
}

// DecodeHeader parses a header from the start of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("data too short for header: %d < %d", len(data), HeaderSize)
	}

	var h Header
	copy(h.Magic[:], data[0:4])
	h.RecordCount = binary.LittleEndian.Uint32(data[4:8])
	h.FieldCount = binary.LittleEndian.Uint32(data[8:12])
	h.RecordSize = binary.LittleEndian.Uint32(data[12:16])
	h.StringBlockSize = binary.LittleEndian.Uint32(data[16:20])
	return h, nil
}
