package models

import "testing"

func TestSearchURL(t *testing.T) {
	q := SearchQuery{Category: "Community Service/Non-Profit", Location: "Toronto, ON"}
	got := q.SearchURL("https://www.yelp.com/search?find_desc=%s&find_loc=%s")
	want := "https://www.yelp.com/search?find_desc=Community+Service%2FNon-Profit&find_loc=Toronto%2C+ON"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	r := &BusinessRecord{URL: "https://www.yelp.com/biz/x"}
	if r.DisplayName() != r.URL {
		t.Errorf("DisplayName() without name = %q", r.DisplayName())
	}
	r.Name = String("Second Chance")
	if r.DisplayName() != "Second Chance" {
		t.Errorf("DisplayName() = %q", r.DisplayName())
	}
}
