package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	. "src.nfsh.sh/pkg/store/storedefs"
)

const bucketCmd = "cmd"

func init() {
	initDB["create command history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

func cmdBucket(tx *bolt.Tx) *bolt.Bucket {
	return tx.Bucket([]byte(bucketCmd))
}

func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = cmdBucket(tx).Sequence() + 1
		return nil
	})
	return int(seq), err
}

func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := cmdBucket(tx)
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return cmdBucket(tx).Delete(marshalSeq(uint64(seq)))
	})
}

func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := cmdBucket(tx).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

func (s *dbStore) Cmds(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, p) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmdBucket(tx).Cursor()
		p := []byte(prefix)

		// Position on the last key before upto.
		k, v := c.Seek(marshalSeq(uint64(upto)))
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// Sequence numbers are stored big-endian so that keys sort numerically.
func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
