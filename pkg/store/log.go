// Package store persists the coherence log on disk so the field server can
// serve history across restarts.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/wiltonos/field-viz/pkg/field"
)

// ErrInvalidSample is returned when a caller tries to persist a sample that
// failed domain validation.
var ErrInvalidSample = errors.New("store: invalid sample")

// Log is an append-only record of field samples backed by badger, keyed by
// big-endian unix-nano timestamp so iteration order is chronological.
type Log struct {
	db *badger.DB
}

func Open(path string) (*Log, error) {
	opts := badger.DefaultOptions(path)
	// Decrease logging verbosity
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

func sampleKey(s field.Sample) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(s.Timestamp.UnixNano()))
	return key
}

// Append writes one sample. Invalid samples are refused here too; the log
// must never replay a value the renderer would have to re-sanitize.
func (l *Log) Append(s field.Sample) error {
	if !s.Valid() {
		return ErrInvalidSample
	}
	val, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sampleKey(s), val)
	})
}

// AppendBatch bulk-writes samples through a write batch, skipping invalid
// ones.
func (l *Log) AppendBatch(samples []field.Sample) error {
	wb := l.db.NewWriteBatch()
	defer wb.Cancel()

	for _, s := range samples {
		if !s.Valid() {
			slog.Warn("skipping invalid sample in batch", slog.Time("ts", s.Timestamp))
			continue
		}
		val, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if err := wb.Set(sampleKey(s), val); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Recent returns up to n samples, newest first.
func (l *Log) Recent(n int) ([]field.Sample, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []field.Sample
	err := l.db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.Reverse = true
		it := txn.NewIterator(iopts)
		defer it.Close()

		// Reverse iteration starts from the highest possible key.
		maxKey := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
		for it.Seek(maxKey); it.Valid() && len(out) < n; it.Next() {
			var s field.Sample
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &s)
			}); err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

// Range returns samples with from <= timestamp < to, oldest first.
func (l *Log) Range(fromNano, toNano int64) ([]field.Sample, error) {
	var out []field.Sample
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		start := make([]byte, 8)
		binary.BigEndian.PutUint64(start, uint64(fromNano))
		for it.Seek(start); it.Valid(); it.Next() {
			ts := int64(binary.BigEndian.Uint64(it.Item().Key()))
			if ts >= toNano {
				break
			}
			var s field.Sample
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &s)
			}); err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	return out, err
}
