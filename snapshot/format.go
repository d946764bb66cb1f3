package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/crc32"
)

// File format:
//
//	[Magic "NSNP"][Version u8][Compression u8][RawLen u32][CRC32C u32][Payload]
//
// RawLen and CRC32C describe the payload before compression. All integers
// are little-endian.
const (
	Magic      = "NSNP"
	Version    = 1
	HeaderSize = 14

	// Extension is appended to generated snapshot names.
	Extension = ".nsnap"
)

var (
	// ErrInvalidMagic is returned when the input is not a snapshot.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

	// ErrCorrupt is returned when the payload cannot be decoded.
	ErrCorrupt = errors.New("snapshot: corrupt payload")

	// ErrTooLarge is returned when a payload does not fit the format.
	ErrTooLarge = errors.New("snapshot: payload too large")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func checksum(p []byte) uint32 {
	return crc32.Checksum(p, castagnoli)
}

// Compression selects how the payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD, slower than LZ4 with a better ratio.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as printed by String.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown compression %q", s)
	}
}

type header struct {
	Version     uint8
	Compression Compression
	RawLen      uint32
	Checksum    uint32
}

func (h header) marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic)
	buf[4] = h.Version
	buf[5] = byte(h.Compression)
	binary.LittleEndian.PutUint32(buf[6:], h.RawLen)
	binary.LittleEndian.PutUint32(buf[10:], h.Checksum)
	return buf
}

func parseHeader(buf []byte) (header, error) {
	if len(buf) < HeaderSize || string(buf[:4]) != Magic {
		return header{}, ErrInvalidMagic
	}
	h := header{
		Version:     buf[4],
		Compression: Compression(buf[5]),
		RawLen:      binary.LittleEndian.Uint32(buf[6:]),
		Checksum:    binary.LittleEndian.Uint32(buf[10:]),
	}
	if h.Version != Version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}
