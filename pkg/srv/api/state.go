/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package api

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-rfdc/pkg/log"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

const (
	BucketNamePrefix = "journal_"
)

// Entry is one successful write
type Entry struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Field    string        `json:"field"`
	Target   rfdc.Target   `json:"target"`
	Args     []interface{} `json:"args"`
	Readback *rfdc.Result  `json:"readback"`
}

// Journal keeps the writes done through the server, one bucket per board
type Journal struct {
	DB *bbolt.DB
}

func NewJournal(path string, boards []string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, board := range boards {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucketName(board))); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{DB: db}, nil
}

func bucketName(board string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, board)
}

func uint64ToByte(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func (j *Journal) Close() error {
	return j.DB.Close()
}

// Append stores the entry, ID and Time are filled in when empty
func (j *Journal) Append(board string, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	data, err := yaml.Marshal(entry)
	if err != nil {
		return err
	}
	log.Debug("Journal %s: %s %s %v", board, entry.Field, entry.Target, entry.Args)
	return j.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(board))
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(uint64ToByte(seq), data)
	})
}

// List returns the entries of a board in insertion order
func (j *Journal) List(board string) ([]*Entry, error) {
	entries := []*Entry{}
	if err := j.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(board)))
		if b == nil {
			return fmt.Errorf("Bucket not found: %s", bucketName(board))
		}
		return b.ForEach(func(k, v []byte) error {
			entry := &Entry{}
			if err := yaml.Unmarshal(v, entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return entries, nil
}
