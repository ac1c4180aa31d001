package elab

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggest returns the candidate closest to name, or "" when none is close.
// A candidate matches when either string is a fuzzy subsequence of the
// other ("suc" and "succ" match both ways).
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(candidates))
	uniq := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == name {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}

	ranks := fuzzy.RankFindFold(name, uniq)
	for _, c := range uniq {
		if fuzzy.MatchFold(c, name) {
			ranks = append(ranks, fuzzy.Rank{Source: c, Target: c, Distance: fuzzy.LevenshteinDistance(c, name)})
		}
	}
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}
