// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
//
// Each save writes a new generation of tag and item records, then switches
// the meta record to it in a single transaction. Readers always see one
// complete generation.
type SnapshotRepository struct {
	backend *Backend
	genSeq  *badger.Sequence
	mu      sync.Mutex // serializes saves
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	genSeq, err := backend.GetSequence(generationSeq)
	if err != nil {
		return nil, err
	}

	return &SnapshotRepository{
		backend: backend,
		genSeq:  genSeq,
	}, nil
}

// Close releases the generation sequence.
func (r *SnapshotRepository) Close() error {
	return r.genSeq.Release()
}

// SaveSnapshot stores snapshot as the current generation and assigns
// snapshot.Meta.Generation. The previous generation is removed afterwards.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *storage.Snapshot) error {
	if snapshot == nil {
		return storage.ErrInvalidSnapshot
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous, err := r.LoadMeta(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	generation, err := r.nextGeneration()
	if err != nil {
		return err
	}

	meta := snapshot.Meta
	meta.Generation = generation
	meta.NumTags = len(snapshot.Tags)
	meta.NumItems = len(snapshot.Items)

	err = r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for i, tag := range snapshot.Tags {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeTagKey(generation, i), storage.MarshalCanonicalTag(tag)); err != nil {
				return err
			}
		}
		for i, item := range snapshot.Items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeItemKey(generation, i), storage.MarshalItemRecord(item)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.discard(generation)
		return fmt.Errorf("write snapshot generation %d: %w", generation, err)
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(snapshotMetaKey), storage.MarshalMeta(&meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		r.discard(generation)
		return fmt.Errorf("publish snapshot generation %d: %w", generation, err)
	}
	snapshot.Meta = meta

	r.backend.logger.Info("saved snapshot",
		"generation", generation,
		"tags", meta.NumTags,
		"items", meta.NumItems)

	if previous != nil {
		r.discard(previous.Generation)
	}
	return nil
}

// LoadSnapshot retrieves the current generation.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	snapshot := &storage.Snapshot{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx)
		if err != nil {
			return err
		}
		snapshot.Meta = *meta

		snapshot.Tags = make([]*core.CanonicalTag, 0, meta.NumTags)
		err = scanGeneration(ctx, tx, makeGenerationPrefix(snapshotTagPrefix, meta.Generation), func(val []byte) error {
			tag, err := storage.UnmarshalCanonicalTag(val)
			if err != nil {
				return err
			}
			snapshot.Tags = append(snapshot.Tags, tag)
			return nil
		})
		if err != nil {
			return err
		}

		snapshot.Items = make([]*storage.ItemRecord, 0, meta.NumItems)
		return scanGeneration(ctx, tx, makeGenerationPrefix(snapshotItemPrefix, meta.Generation), func(val []byte) error {
			item, err := storage.UnmarshalItemRecord(val)
			if err != nil {
				return err
			}
			snapshot.Items = append(snapshot.Items, item)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	if len(snapshot.Tags) != snapshot.Meta.NumTags || len(snapshot.Items) != snapshot.Meta.NumItems {
		return nil, fmt.Errorf("%w: generation %d has %d tags and %d items, meta records %d and %d",
			storage.ErrInvalidSnapshot, snapshot.Meta.Generation,
			len(snapshot.Tags), len(snapshot.Items), snapshot.Meta.NumTags, snapshot.Meta.NumItems)
	}
	return snapshot, nil
}

// LoadMeta retrieves the metadata of the current generation.
func (r *SnapshotRepository) LoadMeta(ctx context.Context) (*storage.Meta, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var meta *storage.Meta
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx)
		return err
	}, false)
	return meta, err
}

func (r *SnapshotRepository) nextGeneration() (uint64, error) {
	generation, err := r.genSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if generation == 0 {
		return r.genSeq.Next()
	}
	return generation, nil
}

// discard removes the records of a generation. Failures leave orphaned
// records behind but never affect the published generation.
func (r *SnapshotRepository) discard(generation uint64) {
	err := r.backend.DropPrefix(
		makeGenerationPrefix(snapshotTagPrefix, generation),
		makeGenerationPrefix(snapshotItemPrefix, generation),
	)
	if err != nil {
		r.backend.logger.Warn("failed to drop snapshot generation", "generation", generation, "err", err)
	}
}

func readMeta(tx *badger.Txn) (*storage.Meta, error) {
	item, err := tx.Get([]byte(snapshotMetaKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var meta *storage.Meta
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		meta, unmarshalErr = storage.UnmarshalMeta(val)
		return unmarshalErr
	})
	return meta, err
}

// scanGeneration calls fn with every value under prefix in key order.
func scanGeneration(ctx context.Context, tx *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := iter.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
