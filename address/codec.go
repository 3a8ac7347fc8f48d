package address

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/lightningnetwork/walletkit/kitutils"
	"github.com/lightningnetwork/walletkit/monitoring"
	"github.com/lightningnetwork/walletkit/netparams"
)

// Codec converts between public keys, address strings and raw buffers for a
// single address kind. A Codec is safe for concurrent use.
type Codec struct {
	kind     *Kind
	registry *netparams.Registry
	cache    DecodeCache
}

// NewCodec creates a codec for the given kind. A nil registry selects
// netparams.DefaultRegistry and a nil cache selects a new MapCache.
func NewCodec(kind Kind, registry *netparams.Registry,
	cache DecodeCache) *Codec {

	if registry == nil {
		registry = netparams.DefaultRegistry
	}
	if cache == nil {
		cache = NewMapCache()
	}

	return &Codec{
		kind:     &kind,
		registry: registry,
		cache:    cache,
	}
}

// NewAccountCodec creates a codec for account addresses.
func NewAccountCodec(registry *netparams.Registry,
	cache DecodeCache) *Codec {

	return NewCodec(AccountKind, registry, cache)
}

// NewValidatorCodec creates a codec for validator addresses.
func NewValidatorCodec(registry *netparams.Registry,
	cache DecodeCache) *Codec {

	return NewCodec(ValidatorKind, registry, cache)
}

// Kind returns the address kind of the codec.
func (c *Codec) Kind() Kind {
	return *c.kind
}

// Cache returns the decode cache of the codec.
func (c *Codec) Cache() DecodeCache {
	return c.cache
}

// FromPublicKey encodes the public key as an address on the given network.
// Every valid key can be encoded on every registered network, so a failure
// here is a programming error and results in a panic.
func (c *Codec) FromPublicKey(pub *btcec.PublicKey,
	net netparams.Network) *Address {

	if pub == nil {
		panic(fmt.Errorf("%w: nil public key", ErrUnreachableInvariant))
	}

	encoded, err := c.encode(pub, net)
	if err != nil {
		panic(fmt.Errorf("%w: unable to encode %v address on %v: %v",
			ErrUnreachableInvariant, c.kind, net, err))
	}

	return &Address{
		kind:    c.kind,
		pubKey:  pub,
		network: net,
		encoded: encoded,
	}
}

// encode returns the bech32 string of the versioned payload of pub.
func (c *Codec) encode(pub *btcec.PublicKey,
	net netparams.Network) (string, error) {

	prefix, err := c.registry.PrefixFor(net, c.kind.AddressKind)
	if err != nil {
		return "", err
	}

	payload := c.kind.FormatPayload(pub.SerializeCompressed())
	log.Tracef("Encoding %v payload %v with prefix %s", c.kind,
		kitutils.NewLogClosure(func() string {
			return hex.EncodeToString(payload)
		}), prefix)

	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}

	encoded, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", err
	}

	if len(encoded) > c.kind.MaxLength {
		return "", fmt.Errorf("%w: %d chars", ErrTooLong, len(encoded))
	}

	return encoded, nil
}

// FromString decodes an address string. Successful decodes are stored in the
// decode cache under the exact input string, so later calls with the same
// string return the same *Address.
func (c *Codec) FromString(s string) (*Address, error) {
	if addr, ok := c.cache.Get(s); ok {
		monitoring.IncrementAddrCacheHit()
		log.Tracef("Decode cache hit for %v address %s", c.kind, s)

		return addr, nil
	}
	monitoring.IncrementAddrCacheMiss()

	addr, err := c.decode(s)
	if err != nil {
		log.Debugf("Unable to decode %v address %q: %v", c.kind, s,
			err)

		return nil, err
	}

	log.Tracef("Decoded %v address %s: %v", c.kind, s,
		kitutils.SpewLogClosure(addr))

	return c.cache.LoadOrStore(s, addr), nil
}

// decode parses an address string without consulting the cache.
func (c *Codec) decode(s string) (*Address, error) {
	// The length must be checked before the checksum is computed over a
	// possibly huge input.
	if len(s) > c.kind.MaxLength {
		return nil, fmt.Errorf("%w: %d chars, max %d", ErrTooLong,
			len(s), c.kind.MaxLength)
	}

	prefix, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	net, err := c.registry.NetworkFor(prefix, c.kind.AddressKind)
	switch {
	// A prefix of another address kind means the string was produced by
	// another codec.
	case errors.Is(err, netparams.ErrKindMismatch):
		return nil, fmt.Errorf("%w: %v", ErrWrongAddressKind, err)

	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnknownNetwork, err)
	}

	keyBytes, err := c.kind.ExtractKeyBytes(payload)
	if err != nil {
		return nil, err
	}

	pub, err := parseKeyBytes(keyBytes)
	if err != nil {
		return nil, err
	}

	// The input is kept as is, so an all upper case string renders back
	// in upper case.
	return &Address{
		kind:    c.kind,
		pubKey:  pub,
		network: net,
		encoded: s,
	}, nil
}

// FromBuffer decodes a raw buffer on the given network. The buffer is either a
// bare compressed public key or a versioned payload of the codec's kind.
func (c *Codec) FromBuffer(buf []byte,
	net netparams.Network) (*Address, error) {

	if !net.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNetwork, net)
	}

	var keyBytes []byte
	switch {
	case len(buf) == btcec.PubKeyBytesLenCompressed:
		keyBytes = buf

	case len(buf) == payloadLength && buf[0] == c.kind.VersionByte:
		keyBytes = buf[1:]

	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrBadBufferLength,
			len(buf))
	}

	pub, err := parseKeyBytes(keyBytes)
	if err != nil {
		return nil, err
	}

	return c.FromPublicKey(pub, net), nil
}

// parseKeyBytes parses a compressed public key.
func parseKeyBytes(keyBytes []byte) (*btcec.PublicKey, error) {
	if len(keyBytes) != btcec.PubKeyBytesLenCompressed {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedKeyBytes,
			len(keyBytes))
	}

	pub, err := btcec.ParsePubKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeyBytes, err)
	}

	return pub, nil
}
