package rating

import "strings"

// Resolver maps raw feed team names to known rated team names.
type Resolver interface {
	Resolve(raw string, known []string) (string, bool)
}

// SimilarityResolver is a pluggable string-similarity resolver with an
// explicit minimum-confidence threshold. Ties break deterministically:
// the first closest match in the (stable) input ordering wins.
type SimilarityResolver struct {
	MinSimilarity float64
}

// NewSimilarityResolver creates a resolver with the given threshold.
func NewSimilarityResolver(minSimilarity float64) *SimilarityResolver {
	return &SimilarityResolver{MinSimilarity: minSimilarity}
}

// Resolve returns the known name closest to raw, or false when no
// candidate reaches the similarity threshold.
func (r *SimilarityResolver) Resolve(raw string, known []string) (string, bool) {
	needle := canonical(raw)
	if needle == "" {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range known {
		score := similarity(needle, canonical(candidate))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore < r.MinSimilarity {
		return "", false
	}
	return best, true
}

func canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	// Feed sources disagree on club suffixes; drop the common ones.
	for _, suffix := range []string{" fc", " cf", " afc"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// similarity is 1 - normalizedLevenshtein, in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
