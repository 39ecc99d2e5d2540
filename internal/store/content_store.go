// Package store keeps the scraped text of the current ingestion, keyed by URL.
package store

import "sync"

// ContentStore maps a source URL to its scraped text. Values come back in first-insertion
// order so the concatenated corpus, and therefore the chunk layout, is reproducible.
type ContentStore struct {
	mu    sync.RWMutex
	order []string
	texts map[string]string
}

func NewContentStore() *ContentStore {
	return &ContentStore{texts: make(map[string]string)}
}

// Clear drops every stored document.
func (s *ContentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.texts = make(map[string]string)
}

// Put stores text under url, overwriting any previous value for the same url.
func (s *ContentStore) Put(url, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.texts[url]; !ok {
		s.order = append(s.order, url)
	}
	s.texts[url] = text
}

// Clone returns an independent copy, so later Clear or Put calls leave it untouched.
func (s *ContentStore) Clone() *ContentStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := &ContentStore{
		order: append([]string(nil), s.order...),
		texts: make(map[string]string, len(s.texts)),
	}
	for url, text := range s.texts {
		c.texts[url] = text
	}
	return c
}

func (s *ContentStore) Values() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]string, 0, len(s.order))
	for _, url := range s.order {
		values = append(values, s.texts[url])
	}
	return values
}

func (s *ContentStore) URLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
