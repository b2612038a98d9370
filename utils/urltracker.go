package utils

// VisitedSet tracks detail URLs already processed in the current run.
// It lives in memory only; a new run starts empty.
type VisitedSet struct {
	seen map[string]struct{}
}

// NewVisitedSet creates an empty set, optionally seeded with urls
func NewVisitedSet(urls ...string) *VisitedSet {
	v := &VisitedSet{seen: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		v.Add(u)
	}
	return v
}

// Add returns true if the URL is new (not seen before), false if duplicate
func (v *VisitedSet) Add(url string) bool {
	if _, exists := v.seen[url]; exists {
		return false
	}
	v.seen[url] = struct{}{}
	return true
}

// Has reports whether url was already processed
func (v *VisitedSet) Has(url string) bool {
	_, ok := v.seen[url]
	return ok
}

// Count returns the number of tracked URLs
func (v *VisitedSet) Count() int {
	return len(v.seen)
}
