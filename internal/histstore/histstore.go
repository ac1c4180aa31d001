// Package histstore keeps the REPL input history in a bbolt database.
package histstore

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketLines = "lines"

// ErrNoMatch is returned by Prev when no earlier line has the prefix.
var ErrNoMatch = errors.New("no matching history entry")

// Entry is one submitted line with its sequence number, starting at 1.
type Entry struct {
	Seq  int
	Text string
}

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLines))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DefaultPath is $XDG_STATE_HOME/lamb/history.db, falling back to the user
// cache directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lamb", "history.db"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lamb", "history.db"), nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add appends line and returns its sequence number. Consecutive duplicates
// are stored once.
func (s *Store) Add(line string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLines))
		if k, v := b.Cursor().Last(); k != nil && string(v) == line {
			seq = unmarshalSeq(k)
			return nil
		}
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(line))
	})
	return int(seq), err //nolint:gosec // sequence numbers stay far below MaxInt
}

// Recent returns up to n latest entries, oldest first. n <= 0 returns all.
func (s *Store) Recent(n int) ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketLines)).Cursor()
		for k, v := c.Last(); k != nil && (n <= 0 || len(out) < n); k, v = c.Prev() {
			out = append(out, Entry{Seq: int(unmarshalSeq(k)), Text: string(v)}) //nolint:gosec // see Add
		}
		return nil
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, err
}

// Prev finds the latest entry before seq (exclusive) starting with prefix.
func (s *Store) Prev(seq int, prefix string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketLines)).Cursor()
		k, v := c.Seek(marshalSeq(uint64(max(seq, 0)))) //nolint:gosec // clamped
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if len(v) >= len(prefix) && string(v[:len(prefix)]) == prefix {
				e = Entry{Seq: int(unmarshalSeq(k)), Text: string(v)} //nolint:gosec // see Add
				return nil
			}
		}
		return ErrNoMatch
	})
	return e, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
