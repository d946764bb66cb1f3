package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/hupe1980/netslab"
	"github.com/hupe1980/netslab/netlist"
	"github.com/hupe1980/netslab/resource"
)

type options struct {
	compression Compression
	rc          *resource.Controller
	logger      *netslab.Logger
	tableOpts   []netslab.Option
}

// Option configures Encode, Decode and the store helpers.
type Option func(*options)

// WithCompression sets the payload compression. The default is none.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithResourceController rate limits snapshot IO and charges the decoded
// payload against the controller's memory budget while a snapshot loads.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger logs saves and loads.
func WithLogger(l *netslab.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTableOptions applies opts to every table of a decoded design.
func WithTableOptions(opts ...netslab.Option) Option {
	return func(o *options) {
		o.tableOpts = append(o.tableOpts, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{logger: netslab.NoopLogger()}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Encode writes a snapshot of d to w.
func Encode(ctx context.Context, w io.Writer, d *netlist.Design, optFns ...Option) error {
	o := applyOptions(optFns)
	_, err := encode(ctx, w, d, o)
	return err
}

func encode(ctx context.Context, w io.Writer, d *netlist.Design, o options) (int, error) {
	raw, err := encodeDesign(d)
	if err != nil {
		return 0, fmt.Errorf("snapshot: encode: %w", err)
	}
	if len(raw) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(raw))
	}

	payload, used, err := compress(raw, o.compression)
	if err != nil {
		return 0, err
	}
	h := header{
		Version:     Version,
		Compression: used,
		RawLen:      uint32(len(raw)),
		Checksum:    checksum(raw),
	}

	if o.rc != nil {
		w = resource.NewRateLimitedWriter(ctx, w, o.rc)
	}
	if _, err := w.Write(h.marshal()); err != nil {
		return 0, err
	}
	if _, err := w.Write(payload); err != nil {
		return 0, err
	}

	o.logger.LogAttrs(ctx, slog.LevelDebug, "snapshot encoded",
		slog.String("design", d.Name()),
		slog.Int("modules", d.NumModules()),
		slog.Int("raw_bytes", len(raw)),
		slog.Int("stored_bytes", HeaderSize+len(payload)),
		slog.String("compression", used.String()),
	)
	return HeaderSize + len(payload), nil
}

// Decode reads a snapshot from r. The decoded design issues the same
// indices as the encoded one.
func Decode(ctx context.Context, r io.Reader, optFns ...Option) (*netlist.Design, error) {
	return decode(ctx, r, applyOptions(optFns))
}

func decode(ctx context.Context, r io.Reader, o options) (*netlist.Design, error) {
	if o.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.rc)
	}

	hbuf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, hbuf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrInvalidMagic
		}
		return nil, err
	}
	h, err := parseHeader(hbuf)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := checkRawLen(payload, h.Compression, int(h.RawLen)); err != nil {
		return nil, err
	}

	if err := o.rc.AcquireMemory(int64(h.RawLen)); err != nil {
		return nil, fmt.Errorf("snapshot: %d byte payload: %w", h.RawLen, err)
	}
	defer o.rc.ReleaseMemory(int64(h.RawLen))

	raw, err := decompress(payload, h.Compression, int(h.RawLen))
	if err != nil {
		return nil, err
	}
	if got := checksum(raw); got != h.Checksum {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, got, h.Checksum)
	}

	d, err := decodeDesign(raw, o.tableOpts)
	if err != nil {
		return nil, err
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "snapshot decoded",
		slog.String("design", d.Name()),
		slog.Int("modules", d.NumModules()),
		slog.Int("raw_bytes", len(raw)),
		slog.String("compression", h.Compression.String()),
	)
	return d, nil
}
