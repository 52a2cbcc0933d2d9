package roster

import "github.com/rgoulet/dugout/core/model"

// Source supplies the active pitching staff for a team. Implementations
// must degrade to an empty result rather than failing hard: a team with
// unreadable data is simply a team with no pitchers.
type Source interface {
	// ActivePitchers returns the currently active pitchers for the team.
	ActivePitchers(teamID string) []model.Pitcher
	// SavedRotation returns an externally authored starting-rotation order
	// (SP1..SP5 by id), or nil when none exists.
	SavedRotation(teamID string) []string
}

// Static is an in-memory Source used by the season driver and by tests.
type Static struct {
	Pitchers  map[string][]model.Pitcher
	Rotations map[string][]string
}

func (s *Static) ActivePitchers(teamID string) []model.Pitcher {
	if s == nil {
		return nil
	}
	return s.Pitchers[teamID]
}

func (s *Static) SavedRotation(teamID string) []string {
	if s == nil {
		return nil
	}
	return s.Rotations[teamID]
}
