package store

// Errors
var (
	ErrTruncated             = &StoreError{"input truncated"}
	ErrSchemaMismatch        = &StoreError{"schema field count disagrees with header"}
	ErrIndexOutOfRange       = &StoreError{"record index out of range"}
	ErrUnknownField          = &StoreError{"unknown field"}
	ErrDestinationUnwritable = &StoreError{"destination not writable"}
	ErrMalformed             = &StoreError{"malformed data"}
	ErrBadMagic              = &StoreError{"unexpected magic bytes"}
	ErrTypeMismatch          = &StoreError{"value type does not match field type"}
)

// StoreError represents a DBC store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
