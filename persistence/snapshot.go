// Package persistence implements the binary snapshot format for vector
// stores.
//
// Bare layout (little-endian, fixed width):
//
//	[dimension uint64][record count uint64]
//	repeated per record:
//	  [id length uint64][id bytes, no terminator][dimension × float32]
//
// Record order is whatever map iteration produced at encode time; readers
// must not rely on it. The format is an internal snapshot, not an
// interchange format: it assumes 64-bit little-endian platforms (enforced
// at init, see safety.go) and does not port across architectures with a
// different integer width or endianness.
//
// Snapshots may optionally be wrapped in a compressed container
// (see EncodeCompressed); Decode detects the container by its magic bytes.
package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unsafe"
)

var byteOrder = binary.LittleEndian // Native on x86/ARM

// Encode writes the bare snapshot layout for the given vectors.
func Encode(w io.Writer, dimension int, vectors map[string][]float32) error {
	if err := writeUint64(w, uint64(dimension)); err != nil {
		return fmt.Errorf("write dimension: %w", err)
	}
	if err := writeUint64(w, uint64(len(vectors))); err != nil {
		return fmt.Errorf("write record count: %w", err)
	}

	for id, vec := range vectors {
		if err := writeUint64(w, uint64(len(id))); err != nil {
			return fmt.Errorf("write id length: %w", err)
		}
		if _, err := io.WriteString(w, id); err != nil {
			return fmt.Errorf("write id: %w", err)
		}
		if err := writeFloat32Slice(w, vec); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}

	return nil
}

// Decode reads a snapshot produced by Encode or EncodeCompressed,
// detecting the compressed container by its magic bytes. The result is a
// freshly allocated map; nothing the caller owns is touched, so a failed
// decode leaves no partial state behind.
func Decode(r io.Reader) (int, map[string][]float32, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	head, err := br.Peek(4)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	// A bare snapshot cannot begin with the container magic: its first
	// field is a dimension bounded by MaxDimension, far below the magic
	// value.
	if byteOrder.Uint32(head) == ContainerMagic {
		return decodeContainer(br)
	}
	return decodeBare(br)
}

func decodeBare(r io.Reader) (int, map[string][]float32, error) {
	dimension, count, err := readHeaderPair(r)
	if err != nil {
		return 0, nil, err
	}

	// Cap the allocation hint; a corrupt count fails at read time instead
	// of as one giant make.
	hint := count
	if hint > 1<<20 {
		hint = 1 << 20
	}
	vectors := make(map[string][]float32, hint)

	for i := uint64(0); i < count; i++ {
		idLen, err := readUint64(r)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: record %d id length: %w", ErrCorruptSnapshot, i, err)
		}
		if idLen == 0 || idLen > MaxIDLength {
			return 0, nil, fmt.Errorf("%w: record %d id length %d out of range", ErrCorruptSnapshot, i, idLen)
		}

		idBuf := make([]byte, idLen)
		if _, err := io.ReadFull(r, idBuf); err != nil {
			return 0, nil, fmt.Errorf("%w: record %d id: %w", ErrCorruptSnapshot, i, err)
		}

		vec := make([]float32, dimension)
		if err := readFloat32SliceInto(r, vec); err != nil {
			return 0, nil, fmt.Errorf("%w: record %d vector: %w", ErrCorruptSnapshot, i, err)
		}

		vectors[string(idBuf)] = vec
	}

	return int(dimension), vectors, nil
}

// readHeaderPair reads the leading dimension and record count fields.
func readHeaderPair(r io.Reader) (uint64, uint64, error) {
	dimension, err := readUint64(r)
	if err != nil {
		return 0, 0, fmt.Errorf("read dimension: %w", err)
	}
	if dimension > MaxDimension {
		return 0, 0, fmt.Errorf("%w: dimension %d out of range", ErrCorruptSnapshot, dimension)
	}

	count, err := readUint64(r)
	if err != nil {
		return 0, 0, fmt.Errorf("read record count: %w", err)
	}

	return dimension, count, nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	byteOrder.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(buf[:]), nil
}

// writeFloat32Slice writes a float32 slice as raw bytes (zero-copy).
// Safety: validates alignment before the unsafe conversion.
func writeFloat32Slice(w io.Writer, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}

	if err := validateFloat32SliceAlignment(vec); err != nil {
		return err
	}

	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	_, err := w.Write(byteSlice)
	return err
}

// readFloat32SliceInto fills vec from raw bytes (zero-copy).
func readFloat32SliceInto(r io.Reader, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}

	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	_, err := io.ReadFull(r, byteSlice)
	return err
}

// SaveToFile writes a snapshot to filename via writeFunc, atomically:
// the data lands in a temp file in the same directory and is renamed over
// the target only after a successful flush and fsync.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	// Buffered writer to batch the many small record writes.
	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile opens filename and hands a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 256*1024)
	return readFunc(buf)
}
