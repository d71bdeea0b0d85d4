package fuzzy

import "github.com/xrash/smetrics"

// Scorer picks the closest candidate for a token.
// Implementations only rank; the acceptance floor is applied by the Expander.
type Scorer interface {
	BestMatch(token string, candidates []string) (string, bool)
}

// JaroWinklerScorer ranks candidates by Jaro-Winkler similarity.
// Ties go to the earliest candidate.
type JaroWinklerScorer struct {
	BoostThreshold float64
	PrefixSize     int
}

var _ Scorer = (*JaroWinklerScorer)(nil)

// NewJaroWinklerScorer creates a scorer with the usual Winkler parameters.
func NewJaroWinklerScorer() *JaroWinklerScorer {
	return &JaroWinklerScorer{BoostThreshold: 0.7, PrefixSize: 4}
}

// BestMatch returns the highest scoring candidate. It returns false when
// there are no candidates.
func (s *JaroWinklerScorer) BestMatch(token string, candidates []string) (string, bool) {
	best, bestScore := "", -1.0
	for _, c := range candidates {
		x, y, ok := recode(token, c)
		if !ok {
			// ranking only; byte-level scores are close enough
			x, y = token, c
		}
		score := smetrics.JaroWinkler(x, y, s.BoostThreshold, s.PrefixSize)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(token string, candidates []string) (string, bool)

var _ Scorer = ScorerFunc(nil)

// BestMatch calls f(token, candidates).
func (f ScorerFunc) BestMatch(token string, candidates []string) (string, bool) {
	return f(token, candidates)
}
