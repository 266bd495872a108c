// Package codec implements the on-disk format of DBC files, the fixed-layout
// binary record databases shipped with the game client.
//
// A DBC file has three regions:
//
//	[Header(20)][RecordCount × RecordSize][StringBlock]
//
// The header carries four little-endian uint32 counters behind a 4-byte
// magic tag. Each record is a run of FieldCount 4-byte slots; the logical
// type of a slot (uint32, int32, float, string) comes from a caller-supplied
// schema, never from the file itself. String-typed slots store uint32
// offsets into the trailing string block, which is a run of nul-terminated
// byte strings; offset 0 conventionally denotes the empty string.
//
// The package provides the header codec, the typed slot codec built around
// the Value tagged union, and the StringBlock heap with offset lookup and
// interning.
package codec
