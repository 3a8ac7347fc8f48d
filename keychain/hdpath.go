package keychain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// ErrInvalidPath is returned when a string can't be parsed as an HD path.
var ErrInvalidPath = errors.New("invalid HD path")

// HDPath is a BIP32 derivation path. Components at or above
// hdkeychain.HardenedKeyStart denote hardened derivation. An HDPath is
// immutable once created.
type HDPath struct {
	components []uint32
}

// NewHDPath creates a path from raw BIP32 child indexes.
func NewHDPath(components ...uint32) HDPath {
	c := make([]uint32, len(components))
	copy(c, components)

	return HDPath{components: c}
}

// Hardened returns the hardened form of the given child index.
func Hardened(index uint32) uint32 {
	return index + hdkeychain.HardenedKeyStart
}

// BIP44Path returns the path m/44'/1022'/account'/change/index' used for the
// keys of a wallet account.
//
// NOTE: the address index is hardened while the change level isn't.
func BIP44Path(account, change, index uint32) HDPath {
	return NewHDPath(
		Hardened(BIP0044Purpose), Hardened(CoinType),
		Hardened(account), change, Hardened(index),
	)
}

// Components returns a copy of the child indexes of the path.
func (p HDPath) Components() []uint32 {
	c := make([]uint32, len(p.components))
	copy(c, p.components)

	return c
}

// Len returns the depth of the path.
func (p HDPath) Len() int {
	return len(p.components)
}

// String returns the path in BIP32 notation, e.g. m/44'/1022'/0'/0/0'.
func (p HDPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, c := range p.components {
		b.WriteString("/")
		if c >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(
				uint64(c-hdkeychain.HardenedKeyStart), 10,
			))
			b.WriteString("'")

			continue
		}

		b.WriteString(strconv.FormatUint(uint64(c), 10))
	}

	return b.String()
}

// ParseHDPath parses a path in BIP32 notation. Both ' and h are accepted as
// the hardened marker.
func ParseHDPath(s string) (HDPath, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return HDPath{}, fmt.Errorf("%w: %q must start with m",
			ErrInvalidPath, s)
	}

	components := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := false
		switch {
		case strings.HasSuffix(part, "'"):
			hardened = true
			part = strings.TrimSuffix(part, "'")

		case strings.HasSuffix(part, "h"):
			hardened = true
			part = strings.TrimSuffix(part, "h")
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return HDPath{}, fmt.Errorf("%w: %q: bad component "+
				"%q", ErrInvalidPath, s, part)
		}

		if index >= hdkeychain.HardenedKeyStart {
			return HDPath{}, fmt.Errorf("%w: %q: component %d out "+
				"of range", ErrInvalidPath, s, index)
		}

		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		components = append(components, uint32(index))
	}

	return HDPath{components: components}, nil
}

// Compare orders paths component by component. A path that is a prefix of
// another sorts first. The result is -1, 0 or 1.
func (p HDPath) Compare(other HDPath) int {
	for i := 0; i < len(p.components) && i < len(other.components); i++ {
		switch {
		case p.components[i] < other.components[i]:
			return -1
		case p.components[i] > other.components[i]:
			return 1
		}
	}

	switch {
	case len(p.components) < len(other.components):
		return -1
	case len(p.components) > len(other.components):
		return 1
	default:
		return 0
	}
}

// Equal returns true if both paths have the same components.
func (p HDPath) Equal(other HDPath) bool {
	return p.Compare(other) == 0
}
