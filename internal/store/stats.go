package store

import (
	"os"
	"time"
)

// Stats summarizes the store file.
type Stats struct {
	TotalApps   int       `json:"totalApps"`
	LastUpdated time.Time `json:"lastUpdated"`
	Version     string    `json:"version"`
	Path        string    `json:"dbPath"`
	Size        int64     `json:"dbSize"`
}

// Stats reports counts and file metadata. A missing file reports size 0.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	st := Stats{
		TotalApps:   len(doc.Apps),
		LastUpdated: doc.LastUpdated,
		Version:     doc.Version,
		Path:        s.path,
	}
	if info, err := os.Stat(s.path); err == nil {
		st.Size = info.Size()
	}
	return st
}
