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

package storage

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/tagraph/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, wrapDecodeErr(err)
}

// MarshalMeta serializes snapshot metadata to bytes.
func MarshalMeta(meta *Meta) []byte {
	buf := make([]byte, MetaMUS.Size(*meta))
	MetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalMeta deserializes snapshot metadata from bytes.
func UnmarshalMeta(data []byte) (*Meta, error) {
	meta, _, err := MetaMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapDecodeErr(err)
	}
	return &meta, nil
}

// MarshalCanonicalTag serializes a CanonicalTag to bytes.
func MarshalCanonicalTag(tag *core.CanonicalTag) []byte {
	buf := make([]byte, core.CanonicalTagMUS.Size(*tag))
	core.CanonicalTagMUS.Marshal(*tag, buf)
	return buf
}

// UnmarshalCanonicalTag deserializes a CanonicalTag from bytes.
func UnmarshalCanonicalTag(data []byte) (*core.CanonicalTag, error) {
	tag, _, err := core.CanonicalTagMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapDecodeErr(err)
	}
	return &tag, nil
}

// MarshalItemRecord serializes an ItemRecord to bytes.
func MarshalItemRecord(record *ItemRecord) []byte {
	buf := make([]byte, ItemRecordMUS.Size(*record))
	ItemRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalItemRecord deserializes an ItemRecord from bytes.
func UnmarshalItemRecord(data []byte) (*ItemRecord, error) {
	record, _, err := ItemRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapDecodeErr(err)
	}
	return &record, nil
}

func wrapDecodeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mus.ErrTooSmallByteSlice):
		return fmt.Errorf("%w: %w: %w", ErrSerializationFailed, ErrTruncatedData, err)
	default:
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
}
