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


// Package storage provides the storage abstraction layer for tagraph.
//
// This package defines the snapshot model and the SnapshotRepository
// interface that decouples persistence from index construction. A Snapshot
// is an opaque image of a built vocabulary and graph; restoring it yields
// the same index as rebuilding from the same corpus and frequency floor.
//
// # Architecture
//
//   - Snapshot: metadata, canonical tags, and items with their tag keys
//   - SnapshotRepository: save / load of the current snapshot
//   - Serialization: mus-format encoders for every snapshot record
//
// # Usage
//
// Persist an index:
//
//	repo, err := badger.NewSnapshotRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//	err = repo.SaveSnapshot(ctx, storage.NewSnapshot(vocab, g, "russian", time.Now()))
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemorySnapshotRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
