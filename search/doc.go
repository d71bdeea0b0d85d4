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


// Package search resolves free-text queries against the tag graph.
//
// The Resolver lemmatizes a query and walks the vocabulary in its fixed
// order. Every tag whose lemmas all occur in the query narrows the candidate
// set to the items adjacent to that tag. When a step would leave fewer than
// minNumber candidates the walk stops, and both the too-small set and the
// last set that was still large enough are returned so the caller can choose.
//
// Results are unranked; order follows item insertion order in the graph.
package search
