package address

import "errors"

var (
	// ErrTooLong is returned when an address string exceeds the maximum
	// length of its kind. The length is checked before any checksum work.
	ErrTooLong = errors.New("address string too long")

	// ErrInvalidEncoding is returned when an address string is not valid
	// bech32, e.g. because of a bad checksum or mixed case.
	ErrInvalidEncoding = errors.New("invalid address encoding")

	// ErrUnknownNetwork is returned when the prefix of an address string
	// doesn't belong to any known network.
	ErrUnknownNetwork = errors.New("unparseable network")

	// ErrVersionMismatch is returned when the leading byte of a payload
	// isn't the version byte of the expected kind.
	ErrVersionMismatch = errors.New("address version mismatch")

	// ErrMalformedKeyBytes is returned when the key material of a payload
	// isn't a valid compressed public key.
	ErrMalformedKeyBytes = errors.New("malformed public key bytes")

	// ErrWrongAddressKind is returned when an address of one kind is fed
	// to the codec of another kind.
	ErrWrongAddressKind = errors.New("wrong address kind")

	// ErrBadBufferLength is returned when a raw buffer is neither a bare
	// compressed public key nor a versioned payload of the expected kind.
	ErrBadBufferLength = errors.New("bad address buffer length")

	// ErrUnreachableInvariant is the panic value used when encoding fails
	// for an input that is guaranteed to be encodable. Reaching it means
	// the prefix registry or the payload format is broken.
	ErrUnreachableInvariant = errors.New("unreachable invariant violated")
)
