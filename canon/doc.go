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

// Package canon collapses raw tag strings into canonical tags.
//
// Canonicalization runs in three steps:
//
//  1. A Counter tallies every raw tag string across all items and categories.
//     Category is not part of the key, and ingredients contribute only their
//     primary name.
//  2. Canonicalize strips parenthesized fragments, lemmatizes each raw string
//     and groups raw strings sharing a lemma tuple into one core.CanonicalTag.
//  3. Canonical tags whose aggregate count is below the frequency floor are
//     discarded.
//
// The resulting Vocabulary is immutable. Its tag order (category rank, then
// lemma key) is deterministic and does not depend on corpus order.
package canon
