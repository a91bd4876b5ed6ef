package domain

import (
	"sort"
	"strings"
)

// Search rank values; lower ranks sort first
const (
	RankExactHandle = iota
	RankHandlePrefix
	RankNamePrefix
	RankHandleSubstring
	RankNameSubstring
	RankUnranked
)

// SearchRank ranks a candidate against a case-insensitive query
func SearchRank(query string, u *User) int {
	q := strings.ToLower(strings.TrimSpace(query))
	handle := strings.ToLower(u.Username)
	name := strings.ToLower(u.DisplayName())

	switch {
	case q == "":
		return RankUnranked
	case handle == q:
		return RankExactHandle
	case strings.HasPrefix(handle, q):
		return RankHandlePrefix
	case strings.HasPrefix(name, q):
		return RankNamePrefix
	case strings.Contains(handle, q):
		return RankHandleSubstring
	case strings.Contains(name, q):
		return RankNameSubstring
	default:
		return RankUnranked
	}
}

// RankCandidates orders users by SearchRank then by lower-cased handle and keeps at most limit.
// limit <= 0 keeps everything.
func RankCandidates(query string, users []*User, limit int) []*User {
	ranked := make([]*User, len(users))
	copy(ranked, users)

	ranks := make(map[*User]int, len(ranked))
	for _, u := range ranked {
		ranks[u] = SearchRank(query, u)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranks[ranked[i]], ranks[ranked[j]]
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(ranked[i].Username) < strings.ToLower(ranked[j].Username)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
