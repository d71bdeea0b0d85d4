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

package fuzzy

import (
	"unicode/utf8"

	"github.com/xrash/smetrics"
)

// DefaultMinSimilarity is the acceptance floor for fuzzy matches.
const DefaultMinSimilarity = 0.5

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	x, y, ok := recode(a, b)
	if !ok {
		return runeDistance([]rune(a), []rune(b))
	}
	return smetrics.WagnerFischer(x, y, 1, 1, 1)
}

// Similarity returns 1 - Distance(a, b) / max(len(a), len(b)) with lengths in
// runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// recode maps the runes of a and b onto single bytes so the byte-oriented
// smetrics routines count one edit per character. It reports false when the
// pair uses more than 256 distinct runes.
func recode(a, b string) (string, string, bool) {
	alphabet := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			c, ok := alphabet[r]
			if !ok {
				if len(alphabet) == 256 {
					return nil, false
				}
				c = byte(len(alphabet))
				alphabet[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}

	x, ok := encode(a)
	if !ok {
		return "", "", false
	}
	y, ok := encode(b)
	if !ok {
		return "", "", false
	}
	return string(x), string(y), true
}

// runeDistance is unit-cost Levenshtein over runes, for pairs too varied to recode.
func runeDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
