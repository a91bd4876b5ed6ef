package domain

import (
	"testing"
)

func TestSearchRank(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		username string
		display  string
		want     int
	}{
		{"exact handle", "ann", "ann", "Zed", RankExactHandle},
		{"exact handle ignores case", "ANN", "Ann", "", RankExactHandle},
		{"handle prefix", "ann", "annabel", "Zed", RankHandlePrefix},
		{"name prefix", "ann", "zz", "Anna Smith", RankNamePrefix},
		{"handle substring", "ann", "joanne", "Jo", RankHandleSubstring},
		{"name substring", "ann", "zz", "Joanna", RankNameSubstring},
		{"no match", "ann", "bob", "Robert", RankUnranked},
		{"empty query", "", "ann", "", RankUnranked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Username: tt.username, Name: tt.display}
			if got := SearchRank(tt.query, u); got != tt.want {
				t.Errorf("SearchRank(%q, %s/%s) = %d, want %d", tt.query, tt.username, tt.display, got, tt.want)
			}
		})
	}
}

func TestRankCandidates_Order(t *testing.T) {
	users := []*User{
		{Username: "Zoe", Name: "Annie"},     // name prefix
		{Username: "joanne", Name: "Jo"},     // handle substring
		{Username: "annabel"},                // handle prefix
		{Username: "Ann"},                    // exact
		{Username: "bob", Name: "Hannah"},    // name substring
		{Username: "Annika"},                 // handle prefix, ties on lower handle
		{Username: "aaron", Name: "Lee Ann"}, // name substring
	}

	got := RankCandidates("ann", users, 0)
	want := []string{"Ann", "annabel", "Annika", "Zoe", "joanne", "aaron", "bob"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, u := range got {
		if u.Username != want[i] {
			t.Errorf("position %d: got %s, want %s", i, u.Username, want[i])
		}
	}

	if users[0].Username != "Zoe" {
		t.Error("input slice must not be reordered")
	}
}

func TestRankCandidates_Limit(t *testing.T) {
	users := []*User{{Username: "ann1"}, {Username: "ann2"}, {Username: "ann3"}}
	if got := RankCandidates("ann", users, 2); len(got) != 2 || got[1].Username != "ann2" {
		t.Errorf("unexpected result %v", got)
	}
}
