package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress returns the compressed payload and the compression actually used.
// A payload that does not shrink is stored uncompressed.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("snapshot: lz4: %w", err)
		}
		if n == 0 {
			return raw, CompressionNone, nil
		}
		out = dst[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(raw, make([]byte, 0, len(raw)))
		zstdEncoderPool.Put(enc)
	default:
		return nil, 0, fmt.Errorf("snapshot: unknown compression %s", c)
	}

	if len(out) >= len(raw) {
		return raw, CompressionNone, nil
	}
	return out, c, nil
}

// lz4MaxRatio bounds LZ4 expansion: a match length byte of 255 spells at
// most 255 output bytes.
const lz4MaxRatio = 255

// checkRawLen rejects a declared payload size that payload cannot decode to,
// so no buffer is sized from an unchecked header.
func checkRawLen(payload []byte, c Compression, rawLen int) error {
	switch c {
	case CompressionNone:
		if len(payload) != rawLen {
			return fmt.Errorf("%w: payload is %d bytes, want %d", ErrCorrupt, len(payload), rawLen)
		}
	case CompressionLZ4:
		if limit := lz4MaxRatio * (len(payload) + 1); rawLen > limit {
			return fmt.Errorf("%w: %d lz4 bytes cannot decode to %d", ErrCorrupt, len(payload), rawLen)
		}
	case CompressionZSTD:
		var h zstd.Header
		if err := h.Decode(payload); err != nil {
			return fmt.Errorf("%w: zstd frame header: %v", ErrCorrupt, err)
		}
		if !h.HasFCS || h.FrameContentSize != uint64(rawLen) {
			return fmt.Errorf("%w: zstd frame size does not match %d", ErrCorrupt, rawLen)
		}
	default:
		return fmt.Errorf("%w: unknown compression %s", ErrCorrupt, c)
	}
	return nil
}

func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	if err := checkRawLen(payload, c, rawLen); err != nil {
		return nil, err
	}
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, want %d", ErrCorrupt, n, rawLen)
		}
		return raw, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		raw, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, want %d", ErrCorrupt, len(raw), rawLen)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: unknown compression %s", ErrCorrupt, c)
}
