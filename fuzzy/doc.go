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

// Package fuzzy expands a query with the single-word tags it nearly spells.
//
// The Expander is a lexical pre-filter that runs before lemma-based
// resolution. Each query token is ranked against the single-word vocabulary
// by a Scorer, and the top candidate is kept only when its normalized edit
// distance similarity to the token reaches the configured floor (0.5 by
// default). Accepted tags are appended to the query text with Enrich.
package fuzzy
