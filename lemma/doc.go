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

// Package lemma reduces free text to an ordered sequence of lemmas.
//
// A Lemmatizer runs a fixed pipeline: Unicode NFC normalization, removal of
// Latin letters, digits and punctuation, lowercasing, whitespace
// tokenization, stopword removal, and finally a Morphology backend that maps
// each token to its normal form.
//
// The same pipeline is applied to tags and to queries, which is what lets
// "завтрак" and "завтраки" collapse to one identity and later match a query
// containing "завтраку".
//
// Backends:
//   - SnowballMorphology stems with the Snowball algorithm for a language
//   - DictionaryMorphology looks tokens up in an explicit map
//   - MorphologyFunc adapts any function
package lemma
