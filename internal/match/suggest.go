package match

import (
	"path"
	"sort"
)

// minSimilarity is the lowest score a candidate needs to be suggested.
const minSimilarity = 0.5

// Suggestion is a candidate URL with its similarity to the query.
type Suggestion struct {
	URL   string
	Score float64
}

// Suggest returns up to limit candidates similar to query, best first.
// Candidates are scored on their normalized full path and on their base name;
// the better of the two counts. Ties keep candidate order.
func Suggest(query string, candidates []string, limit int) []Suggestion {
	if limit <= 0 {
		return nil
	}

	q := NormalizeURL(query)
	qBase := path.Base(q)

	var out []Suggestion

	for _, c := range candidates {
		n := NormalizeURL(c)

		score := max(Similarity(q, n), Similarity(qBase, path.Base(n)))
		if score < minSimilarity {
			continue
		}

		out = append(out, Suggestion{URL: c, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}

// URLs returns the URLs of suggestions.
func URLs(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.URL
	}

	return out
}
