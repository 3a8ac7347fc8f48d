package hwdevice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/walletkit/keychain"
	"github.com/lightningnetwork/walletkit/kitutils"
	"github.com/lightningnetwork/walletkit/monitoring"
	"github.com/lightningnetwork/walletkit/signingkey"
)

const (
	// DefaultTimeout is the default time a single request may take.
	DefaultTimeout = 30 * time.Second

	// Names of the device operations, used for logging and metrics.
	opPubKey         = "pubkey"
	opSign           = "sign"
	opSignHash       = "signhash"
	opKeyExchange    = "keyexchange"
	opDisplayAddress = "displayaddress"
)

// Config holds the dependencies of a Device.
type Config struct {
	// Transport is the connection to the device.
	Transport Transport

	// Clock is used to time out requests.
	Clock clock.Clock

	// Timeout is the time a single request may take, including the time
	// it waits for the request before it.
	Timeout time.Duration
}

// request is a single call to the transport.
type request struct {
	ctx  context.Context
	op   string
	run  func(ctx context.Context) error
	done chan error
}

// Device serializes the requests to a signing device. Devices handle one
// request at a time, so all calls to the transport are made from a single
// worker goroutine.
type Device struct {
	started sync.Once
	stopped sync.Once

	cfg *Config

	requests chan *request

	gm *fn.GoroutineManager
}

// NewDevice creates a Device. Start must be called before it is used.
func NewDevice(cfg *Config) *Device {
	if cfg.Clock == nil {
		cfg.Clock = clock.NewDefaultClock()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Device{
		cfg:      cfg,
		requests: make(chan *request),
		gm:       fn.NewGoroutineManager(),
	}
}

// Start launches the request worker.
func (d *Device) Start() error {
	var err error
	d.started.Do(func() {
		log.Info("Signing device starting")

		if !d.gm.Go(context.Background(), d.worker) {
			err = ErrDeviceStopped
		}
	})

	return err
}

// Stop stops the request worker. Pending and future requests fail with
// ErrDeviceStopped.
func (d *Device) Stop() error {
	d.stopped.Do(func() {
		log.Info("Signing device shutting down...")
		defer log.Debug("Signing device shutdown complete")

		d.gm.Stop()
	})

	return nil
}

// worker runs the requests one at a time until the device is stopped.
//
// NOTE: This MUST be run as a goroutine.
func (d *Device) worker(ctx context.Context) {
	for {
		select {
		case req := <-d.requests:
			log.TraceS(req.ctx, "Running device request",
				"op", req.op)

			// The channel is buffered, the requester may have
			// given up already.
			req.done <- req.run(req.ctx)

		case <-ctx.Done():
			return
		}
	}
}

// doRequest hands f to the worker and waits for its result. The request is
// abandoned with ErrTimeout if it doesn't complete within the configured
// timeout or before ctx is done.
func doRequest[T any](ctx context.Context, d *Device, op string,
	f func(ctx context.Context) (T, error)) (T, error) {

	var (
		zero   T
		result T
	)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req := &request{
		ctx: reqCtx,
		op:  op,
		run: func(ctx context.Context) error {
			var err error
			result, err = f(ctx)

			return err
		},
		done: make(chan error, 1),
	}

	timeout := d.cfg.Clock.TickAfter(d.cfg.Timeout)

	fail := func(err error) (T, error) {
		monitoring.IncrementDeviceRequest(op, resultLabel(err))
		log.DebugS(ctx, "Device request failed", "op", op,
			btclog.Fmt("err", "%v", err))

		return zero, err
	}

	select {
	case d.requests <- req:

	case <-timeout:
		return fail(fmt.Errorf("%w: %s request not accepted within "+
			"%v", ErrTimeout, op, d.cfg.Timeout))

	case <-ctx.Done():
		return fail(fmt.Errorf("%w: %s: %v", ErrTimeout, op, ctx.Err()))

	case <-d.gm.Done():
		return fail(ErrDeviceStopped)
	}

	select {
	case err := <-req.done:
		if err != nil {
			return fail(normalizeErr(op, err))
		}

	case <-timeout:
		return fail(fmt.Errorf("%w: no answer to %s request within "+
			"%v", ErrTimeout, op, d.cfg.Timeout))

	case <-ctx.Done():
		return fail(fmt.Errorf("%w: %s: %v", ErrTimeout, op, ctx.Err()))

	case <-d.gm.Done():
		return fail(ErrDeviceStopped)
	}

	monitoring.IncrementDeviceRequest(op, resultLabel(nil))

	return result, nil
}

// normalizeErr maps a transport error onto the device error taxonomy.
func normalizeErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrTransport), errors.Is(err, ErrTimeout):
		return err

	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):

		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)

	default:
		return fmt.Errorf("%w: %s: %v", ErrTransport, op, err)
	}
}

// resultLabel returns the metrics label of a request result.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrDeviceStopped):
		return "stopped"
	default:
		return "error"
	}
}

// PubKey returns the public key at path.
func (d *Device) PubKey(ctx context.Context,
	path keychain.HDPath) (*btcec.PublicKey, error) {

	return doRequest(ctx, d, opPubKey, func(
		ctx context.Context) (*btcec.PublicKey, error) {

		return d.cfg.Transport.PubKey(ctx, path)
	})
}

// Sign signs a built transaction with the key at path.
func (d *Device) Sign(ctx context.Context, path keychain.HDPath,
	tx *signingkey.TxReadyToSign,
	hrp fn.Option[string]) (*ecdsa.Signature, error) {

	return doRequest(ctx, d, opSign, func(
		ctx context.Context) (*ecdsa.Signature, error) {

		return d.cfg.Transport.Sign(ctx, path, tx, hrp)
	})
}

// SignHash signs a 32 byte hash with the key at path.
func (d *Device) SignHash(ctx context.Context, path keychain.HDPath,
	hash [32]byte) (*ecdsa.Signature, error) {

	return doRequest(ctx, d, opSignHash, func(
		ctx context.Context) (*ecdsa.Signature, error) {

		return d.cfg.Transport.SignHash(ctx, path, hash)
	})
}

// KeyExchange returns the point shared between the key at path and other.
func (d *Device) KeyExchange(ctx context.Context, path keychain.HDPath,
	other *btcec.PublicKey,
	purpose signingkey.KeyExchangePurpose) (*btcec.PublicKey, error) {

	return doRequest(ctx, d, opKeyExchange, func(
		ctx context.Context) (*btcec.PublicKey, error) {

		return d.cfg.Transport.KeyExchange(ctx, path, other, purpose)
	})
}

// DisplayAddress shows the address of the key at path on the device.
func (d *Device) DisplayAddress(ctx context.Context,
	path keychain.HDPath) (*btcec.PublicKey, error) {

	return doRequest(ctx, d, opDisplayAddress, func(
		ctx context.Context) (*btcec.PublicKey, error) {

		return d.cfg.Transport.DisplayAddress(ctx, path)
	})
}

// KeyAt fetches the public key at path and returns a handle to it.
func (d *Device) KeyAt(ctx context.Context, path keychain.HDPath) (*Key,
	error) {

	pub, err := d.PubKey(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch key at %v: %w", path,
			err)
	}

	log.DebugS(ctx, "Fetched device key", "path", path,
		kitutils.LogFullPubKey("pubkey", pub))

	return &Key{
		dev:    d,
		path:   path,
		pubKey: pub,
	}, nil
}

// SigningKeyAt returns a signing key for the device key at path.
func (d *Device) SigningKeyAt(ctx context.Context,
	path keychain.HDPath) (*signingkey.HardwareHDKey, error) {

	key, err := d.KeyAt(ctx, path)
	if err != nil {
		return nil, err
	}

	return signingkey.FromHardwareKey(path, key), nil
}
