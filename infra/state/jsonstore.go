// Package state implements the persisted recovery-store file: a single
// JSON document keyed by team id, rewritten in full after every mutation.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgoulet/dugout/core/model"
	"github.com/rgoulet/dugout/core/recovery"
)

// FileStore reads and rewrites the recovery store at a fixed path. It is a
// write-behind snapshot with no locking; concurrent writers are
// unsupported (last writer wins).
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore for the given path.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted document. A missing file yields an empty store;
// a malformed one returns an error so the caller can reset and log.
func (s *FileStore) Load() (*recovery.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return recovery.NewStore(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc.toStore(), nil
}

// Save rewrites the whole document through a temp-file rename.
func (s *FileStore) Save(store *recovery.Store) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(fromStore(store), "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".recovery-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// File schema. Dates travel as YYYY-MM-DD strings; absent or unparseable
// values decode to the epoch sentinel (always available).

type fileDoc struct {
	Teams map[string]teamRecord `json:"teams"`
}

type teamRecord struct {
	Rotation  []string                 `json:"rotation"`
	NextIndex int                      `json:"next_index"`
	Pitchers  map[string]pitcherRecord `json:"pitchers"`
}

type pitcherRecord struct {
	AvailableOn      string        `json:"available_on"`
	LastUsed         string        `json:"last_used"`
	LastPitches      int           `json:"last_pitches"`
	LastRole         string        `json:"last_role"`
	MaxPitches       float64       `json:"max_pitches"`
	AvailablePitches float64       `json:"available_pitches"`
	Recent           []usageRecord `json:"recent,omitempty"`
}

type usageRecord struct {
	Date             string  `json:"date"`
	Pitches          int     `json:"pitches"`
	Appeared         bool    `json:"appeared"`
	WarmedOnly       bool    `json:"warmed_only"`
	AvailablePitches float64 `json:"available_pitches"`
}

func fromStore(store *recovery.Store) fileDoc {
	doc := fileDoc{Teams: map[string]teamRecord{}}
	if store == nil {
		return doc
	}
	for teamID, entry := range store.Teams {
		rec := teamRecord{
			Rotation:  append([]string(nil), entry.Rotation...),
			NextIndex: entry.NextIndex,
			Pitchers:  map[string]pitcherRecord{},
		}
		for pid, st := range entry.Pitchers {
			pr := pitcherRecord{
				AvailableOn:      recovery.FormatDate(st.AvailableOn),
				LastUsed:         recovery.FormatDate(st.LastUsed),
				LastPitches:      st.LastPitches,
				LastRole:         string(st.LastRole),
				MaxPitches:       st.MaxBudget,
				AvailablePitches: st.AvailableBudget,
			}
			for _, e := range st.Recent {
				pr.Recent = append(pr.Recent, usageRecord{
					Date:             recovery.FormatDate(e.Date),
					Pitches:          e.Pitches,
					Appeared:         e.Appeared,
					WarmedOnly:       e.WarmedOnly,
					AvailablePitches: e.AvailableBudget,
				})
			}
			rec.Pitchers[pid] = pr
		}
		doc.Teams[teamID] = rec
	}
	return doc
}

func (d fileDoc) toStore() *recovery.Store {
	store := recovery.NewStore()
	for teamID, rec := range d.Teams {
		entry := &recovery.TeamEntry{
			Rotation:  append([]string(nil), rec.Rotation...),
			NextIndex: rec.NextIndex,
			Pitchers:  map[string]*recovery.PitcherStatus{},
		}
		for pid, pr := range rec.Pitchers {
			st := &recovery.PitcherStatus{
				AvailableOn:     recovery.ParseDate(pr.AvailableOn),
				LastUsed:        recovery.ParseDate(pr.LastUsed),
				LastPitches:     pr.LastPitches,
				LastRole:        model.NormalizeRole(pr.LastRole),
				MaxBudget:       pr.MaxPitches,
				AvailableBudget: pr.AvailablePitches,
			}
			for _, ur := range pr.Recent {
				st.Recent = append(st.Recent, recovery.UsageEntry{
					Date:            recovery.ParseDate(ur.Date),
					Pitches:         ur.Pitches,
					Appeared:        ur.Appeared,
					WarmedOnly:      ur.WarmedOnly,
					AvailableBudget: ur.AvailablePitches,
				})
			}
			entry.Pitchers[pid] = st
		}
		store.Teams[teamID] = entry
	}
	return store
}
