package vecdb

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"time"

	"github.com/hupe1980/vecdb/blobstore"
	"github.com/hupe1980/vecdb/persistence"
)

const storeBufferSize = 256 * 1024

func applySaveOptions(optFns []SaveOption) *saveOptions {
	o := &saveOptions{compression: persistence.CompressionNone}
	for _, fn := range optFns {
		fn(o)
	}
	return o
}

// Save writes a snapshot of the store to w.
// It is the raw primitive behind SaveFile and SaveToStore.
func (d *DB) Save(w io.Writer, optFns ...SaveOption) error {
	_, err := d.encodeTo(w, applySaveOptions(optFns))
	return err
}

// Load replaces the store contents from a snapshot read from r.
// The snapshot dimension must match the configured dimension; on any
// failure the store is left untouched.
func (d *DB) Load(r io.Reader) error {
	_, err := d.decodeFrom(r)
	return err
}

// SaveFile writes a snapshot to path through a temp file and an atomic
// rename, so a crash mid-save never corrupts an existing snapshot.
func (d *DB) SaveFile(path string, optFns ...SaveOption) error {
	start := time.Now()
	o := applySaveOptions(optFns)

	var count int
	err := persistence.SaveToFile(path, func(w io.Writer) error {
		var encErr error
		count, encErr = d.encodeTo(w, o)
		return encErr
	})

	d.collector.RecordSave(time.Since(start), err)
	d.logger.LogSave(path, count, err)

	return err
}

// LoadFile replaces the store contents from the snapshot at path.
// See Load for the failure semantics.
func (d *DB) LoadFile(path string) error {
	start := time.Now()

	var count int
	err := persistence.LoadFromFile(path, func(r io.Reader) error {
		var decErr error
		count, decErr = d.decodeFrom(r)
		return decErr
	})

	d.collector.RecordLoad(time.Since(start), err)
	d.logger.LogLoad(path, count, err)

	return err
}

// SaveToStore streams a snapshot into a blob store under name.
// The blob only becomes visible when the write completes.
func (d *DB) SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, optFns ...SaveOption) error {
	start := time.Now()
	count, err := d.saveToStore(ctx, store, name, applySaveOptions(optFns))

	d.collector.RecordSave(time.Since(start), err)
	d.logger.LogSave(name, count, err)

	return err
}

func (d *DB) saveToStore(ctx context.Context, store blobstore.BlobStore, name string, o *saveOptions) (int, error) {
	w, err := store.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriterSize(w, storeBufferSize)

	count, err := d.encodeTo(bw, o)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		abortWritable(w)
		return count, err
	}

	return count, w.Close()
}

// LoadFromStore replaces the store contents from a snapshot blob.
// See Load for the failure semantics.
func (d *DB) LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string) error {
	start := time.Now()
	count, err := d.loadFromStore(ctx, store, name)

	d.collector.RecordLoad(time.Since(start), err)
	d.logger.LogLoad(name, count, err)

	return err
}

func (d *DB) loadFromStore(ctx context.Context, store blobstore.BlobStore, name string) (int, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer blob.Close()

	// Memory-mapped blobs decode straight from the mapping.
	if m, ok := blob.(blobstore.Mappable); ok {
		if data, mErr := m.Bytes(); mErr == nil {
			return d.decodeFrom(bytes.NewReader(data))
		}
	}

	r, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return d.decodeFrom(bufio.NewReaderSize(r, storeBufferSize))
}

func (d *DB) encodeTo(w io.Writer, o *saveOptions) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.vectors), persistence.EncodeCompressed(w, d.dimension, d.vectors, o.compression)
}

func (d *DB) decodeFrom(r io.Reader) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dimension, vectors, err := persistence.Decode(r)
	if err != nil {
		return 0, err
	}
	if dimension != d.dimension {
		return 0, &ErrDimensionMismatch{Expected: d.dimension, Actual: dimension}
	}

	// Wholesale replacement happens only after a fully successful decode;
	// any failure above leaves the store untouched. Snapshots load past
	// the capacity bound.
	d.vectors = vectors

	return len(vectors), nil
}

func abortWritable(w blobstore.WritableBlob) {
	if a, ok := w.(blobstore.Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = w.Close()
}
