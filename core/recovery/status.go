package recovery

import (
	"time"

	"github.com/rgoulet/dugout/core/model"
)

// DateFormat is the wire format for all persisted dates.
const DateFormat = "2006-01-02"

// historyWindowDays bounds the rolling usage history kept per pitcher.
const historyWindowDays = 14

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Epoch is the sentinel meaning "always available".
func Epoch() time.Time { return epoch }

// ParseDate parses a YYYY-MM-DD string. Empty or malformed input resolves
// to the epoch sentinel, which reads as available.
func ParseDate(value string) time.Time {
	if value == "" {
		return epoch
	}
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return epoch
	}
	return t
}

// FormatDate renders a date in the persisted YYYY-MM-DD form.
func FormatDate(t time.Time) string { return t.Format(DateFormat) }

// Day truncates a timestamp to a UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// UsageEntry is one day of recorded activity for a pitcher.
type UsageEntry struct {
	Date       time.Time
	Pitches    int
	Appeared   bool
	WarmedOnly bool
	// AvailableBudget snapshots the stamina pool after the entry was charged.
	AvailableBudget float64
}

// PitcherStatus is the persisted per-pitcher recovery state.
type PitcherStatus struct {
	AvailableOn time.Time
	LastUsed    time.Time
	LastPitches int
	Recent      []UsageEntry
	LastRole    model.Role
	// MaxBudget is endurance x role multiplier; zero means unconstrained.
	MaxBudget       float64
	AvailableBudget float64
}

// addEntry appends a usage entry and prunes history older than the rolling
// window relative to the entry's day.
func (s *PitcherStatus) addEntry(e UsageEntry) {
	e.Date = Day(e.Date)
	s.Recent = append(s.Recent, e)
	s.pruneRecent(e.Date)
}

func (s *PitcherStatus) pruneRecent(today time.Time) {
	cutoff := Day(today).AddDate(0, 0, -historyWindowDays)
	kept := s.Recent[:0]
	for _, e := range s.Recent {
		if e.Date.After(cutoff) {
			kept = append(kept, e)
		}
	}
	s.Recent = kept
}

// appearanceOn returns the appearance entry for the given day, if any.
// Warmup-only and penalty entries are not appearances.
func (s *PitcherStatus) appearanceOn(day time.Time) (UsageEntry, bool) {
	day = Day(day)
	for i := len(s.Recent) - 1; i >= 0; i-- {
		e := s.Recent[i]
		if e.Appeared && e.Date.Equal(day) {
			return e, true
		}
	}
	return UsageEntry{}, false
}

// appearancesBetween counts appearance days in [from, to).
func (s *PitcherStatus) appearancesBetween(from, to time.Time) int {
	from, to = Day(from), Day(to)
	seen := map[time.Time]bool{}
	for _, e := range s.Recent {
		if !e.Appeared {
			continue
		}
		if !e.Date.Before(from) && e.Date.Before(to) {
			seen[e.Date] = true
		}
	}
	return len(seen)
}

// consecutiveAppearanceDays walks backward from the day before the given
// date while an appearance exists for each prior day.
func (s *PitcherStatus) consecutiveAppearanceDays(day time.Time) int {
	count := 0
	cursor := Day(day).AddDate(0, 0, -1)
	for {
		if _, ok := s.appearanceOn(cursor); !ok {
			return count
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// TeamEntry is the per-team unit of recovery state.
type TeamEntry struct {
	Rotation  []string
	NextIndex int
	Pitchers  map[string]*PitcherStatus

	// staff mirrors the latest active roster (endurance, role) supplied by
	// the roster source. Rebuilt on every ensure; never persisted.
	staff map[string]model.Pitcher
}

func newTeamEntry() *TeamEntry {
	return &TeamEntry{Pitchers: map[string]*PitcherStatus{}}
}

func (e *TeamEntry) status(pid string) *PitcherStatus {
	st, ok := e.Pitchers[pid]
	if !ok {
		st = &PitcherStatus{AvailableOn: epoch, LastUsed: epoch}
		e.Pitchers[pid] = st
	}
	return st
}

// Store is the full persisted recovery state, keyed by team id.
type Store struct {
	Teams map[string]*TeamEntry
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{Teams: map[string]*TeamEntry{}} }
