package address

import (
	"fmt"
	"sync"

	"github.com/lightningnetwork/walletkit/netparams"
)

// wrapperState tracks which forms of the address a Wrapper has resolved.
type wrapperState uint8

const (
	// stateStringOnly means only the string form is known.
	stateStringOnly wrapperState = iota

	// stateAddressOnly means only the decoded address is known.
	stateAddressOnly

	// stateBoth means both forms are known. It is terminal.
	stateBoth
)

// String returns a human readable name of the state.
func (s wrapperState) String() string {
	switch s {
	case stateStringOnly:
		return "StringOnly"
	case stateAddressOnly:
		return "AddressOnly"
	case stateBoth:
		return "Both"
	default:
		return fmt.Sprintf("wrapperState(%d)", uint8(s))
	}
}

// Wrapper holds an address in string form, decoded form or both, and resolves
// the missing form the first time it is asked for. Once resolved a form is
// never recomputed.
//
// The accessors panic if the held string doesn't decode. Callers that need to
// handle malformed input should use Codec.FromString directly.
type Wrapper struct {
	codec *Codec

	mtx     sync.Mutex
	state   wrapperState
	addr    *Address
	encoded string
}

// WrapAddress creates a Wrapper around a decoded address.
func WrapAddress(codec *Codec, addr *Address) *Wrapper {
	return &Wrapper{
		codec: codec,
		state: stateAddressOnly,
		addr:  addr,
	}
}

// WrapString creates a Wrapper around an address string. The string isn't
// validated until the address is requested.
func WrapString(codec *Codec, s string) *Wrapper {
	return &Wrapper{
		codec:   codec,
		state:   stateStringOnly,
		encoded: s,
	}
}

// WrapBuffer creates a Wrapper from a raw buffer, decoding it right away. The
// buffer must already be known to be valid: a bad buffer results in a panic.
func WrapBuffer(codec *Codec, buf []byte, net netparams.Network) *Wrapper {
	addr, err := codec.FromBuffer(buf, net)
	if err != nil {
		panic(fmt.Errorf("unable to wrap address buffer: %w", err))
	}

	return WrapAddress(codec, addr)
}

// Address returns the decoded address, decoding the held string if needed.
func (w *Wrapper) Address() *Address {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.state == stateStringOnly {
		addr, err := w.codec.FromString(w.encoded)
		if err != nil {
			panic(fmt.Errorf("unable to resolve wrapped address "+
				"%q: %w", w.encoded, err))
		}

		w.addr = addr
		w.state = stateBoth
	}

	return w.addr
}

// AddressString returns the string form of the address, rendering the held
// address if needed.
func (w *Wrapper) AddressString() string {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.state == stateAddressOnly {
		w.encoded = w.addr.String()
		w.state = stateBoth
	}

	return w.encoded
}

// Equals returns true if both the string forms and the decoded addresses of
// the two wrappers are equal. Both forms are resolved, so a wrapper holding a
// malformed string panics even when compared with itself.
func (w *Wrapper) Equals(other *Wrapper) bool {
	if w == nil || other == nil {
		return w == other
	}

	return w.AddressString() == other.AddressString() &&
		w.Address().Equals(other.Address())
}

// String returns the string form of the address.
func (w *Wrapper) String() string {
	return w.AddressString()
}
