package persistence

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec for the optional snapshot container.
type Compression uint8

const (
	// CompressionNone writes the bare snapshot layout, no container.
	CompressionNone Compression = 0
	// CompressionZstd wraps the snapshot in a zstd frame (better ratio).
	CompressionZstd Compression = 1
	// CompressionLZ4 wraps the snapshot in an LZ4 frame (faster).
	CompressionLZ4 Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression converts a codec name (as produced by String) back to
// a Compression value.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodec, s)
	}
}

// EncodeCompressed writes a snapshot wrapped in a compressed container:
//
//	[magic uint32][version uint8][codec uint8][reserved uint16]
//	[codec frame carrying the bare Encode layout]
//
// Both codec frames carry their own integrity checksums, so corrupted
// containers fail on decode. CompressionNone falls through to the bare
// layout.
func EncodeCompressed(w io.Writer, dimension int, vectors map[string][]float32, c Compression) error {
	if c == CompressionNone {
		return Encode(w, dimension, vectors)
	}

	var hdr [8]byte
	byteOrder.PutUint32(hdr[0:], ContainerMagic)
	hdr[4] = ContainerVersion
	hdr[5] = uint8(c)
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write container header: %w", err)
	}

	switch c {
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := Encode(zw, dimension, vectors); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if err := Encode(lw, dimension, vectors); err != nil {
			_ = lw.Close()
			return err
		}
		return lw.Close()
	default:
		return fmt.Errorf("%w: %d", ErrInvalidCodec, uint8(c))
	}
}

// readContainerHeader consumes and validates the 8-byte container header.
func readContainerHeader(r io.Reader) (Compression, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("%w: container header: %w", ErrCorruptSnapshot, err)
	}

	if magic := byteOrder.Uint32(hdr[0:]); magic != ContainerMagic {
		return 0, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}
	if hdr[4] != ContainerVersion {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidVersion, hdr[4])
	}

	c := Compression(hdr[5])
	if c != CompressionZstd && c != CompressionLZ4 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCodec, hdr[5])
	}

	return c, nil
}

func decodeContainer(r *bufio.Reader) (int, map[string][]float32, error) {
	c, err := readContainerHeader(r)
	if err != nil {
		return 0, nil, err
	}

	switch c {
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return 0, nil, err
		}
		defer zr.Close()
		return decodeBare(zr)
	default: // CompressionLZ4, validated above
		return decodeBare(lz4.NewReader(r))
	}
}

// Info summarizes a snapshot header without decoding its records.
type Info struct {
	Dimension   int
	Count       int
	Compression Compression
}

// ReadInfo reads just enough of a snapshot to report its header. For
// compressed containers only the head of the frame is decompressed.
func ReadInfo(r io.Reader) (Info, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	head, err := br.Peek(4)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if byteOrder.Uint32(head) != ContainerMagic {
		dimension, count, err := readHeaderPair(br)
		if err != nil {
			return Info{}, err
		}
		return Info{Dimension: int(dimension), Count: int(count)}, nil
	}

	c, err := readContainerHeader(br)
	if err != nil {
		return Info{}, err
	}

	var payload io.Reader
	switch c {
	case CompressionZstd:
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return Info{}, err
		}
		defer zr.Close()
		payload = zr
	default: // CompressionLZ4, validated above
		payload = lz4.NewReader(br)
	}

	dimension, count, err := readHeaderPair(payload)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Dimension:   int(dimension),
		Count:       int(count),
		Compression: c,
	}, nil
}
