// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package graph

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// subjectKeyPrefix namespaces snapshot keys in BadgerDB.
const subjectKeyPrefix = "subj:"

// SaveSnapshot persists the full store to BadgerDB, one key per subject.
// Existing snapshot keys for subjects no longer present are not removed;
// the engine never deletes entities, so the set only grows.
func (st *Store) SaveSnapshot(db *badger.DB) error {
	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for _, s := range st.Subjects() {
		preds := st.predicateMap(s)
		data, err := json.Marshal(preds)
		if err != nil {
			return fmt.Errorf("marshal subject %s: %w", s, err)
		}
		if err := wb.Set([]byte(subjectKeyPrefix+s), data); err != nil {
			return fmt.Errorf("write subject %s: %w", s, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores a store from a BadgerDB snapshot. Returns the
// number of triples loaded; zero with a nil error means no snapshot exists.
func (st *Store) LoadSnapshot(db *badger.DB) (int, error) {
	loaded := 0

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(subjectKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			subject := string(item.Key()[len(subjectKeyPrefix):])

			err := item.Value(func(val []byte) error {
				var preds map[string][]Term
				if err := json.Unmarshal(val, &preds); err != nil {
					return fmt.Errorf("decode subject %s: %w", subject, err)
				}
				for p, objs := range preds {
					for _, o := range objs {
						st.Add(subject, p, o)
						loaded++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	return loaded, nil
}

// seedFile is the on-disk seed format: a flat triple list.
type seedFile struct {
	Triples []Triple `json:"triples"`
}

// LoadSeed populates the store from a JSON triples file.
// Returns the number of triples added.
func (st *Store) LoadSeed(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	return st.AddAll(seed.Triples), nil
}
