package recovery

import (
	"sort"
	"time"

	"github.com/rgoulet/dugout/core/model"
)

const rotationSize = 5

// BuildRotation selects a starting rotation from the active staff. An
// externally authored order takes precedence, filtered to active pitchers.
// Otherwise starters are ranked by endurance and any shortfall is filled
// from the highest-endurance relievers.
func BuildRotation(active []model.Pitcher, saved []string) []string {
	if len(saved) > 0 {
		ids := activeIDs(active)
		rotation := make([]string, 0, rotationSize)
		for _, pid := range saved {
			if ids[pid] && !contains(rotation, pid) {
				rotation = append(rotation, pid)
			}
		}
		if len(rotation) > 0 {
			return rotation
		}
	}

	var starters, relievers []model.Pitcher
	for _, p := range active {
		if p.ID == "" {
			continue
		}
		if p.Role.IsStarter() {
			starters = append(starters, p)
		} else {
			relievers = append(relievers, p)
		}
	}
	byEndurance(starters)
	byEndurance(relievers)

	rotation := make([]string, 0, rotationSize)
	for _, p := range starters {
		if len(rotation) == rotationSize {
			break
		}
		rotation = append(rotation, p.ID)
	}
	for _, p := range relievers {
		if len(rotation) >= rotationSize {
			break
		}
		if !contains(rotation, p.ID) {
			rotation = append(rotation, p.ID)
		}
	}
	return rotation
}

// refreshRotation re-filters the rotation to the current staff, tops it
// back up to five arms and clamps the cursor.
func (e *TeamEntry) refreshRotation(active []model.Pitcher, saved []string) {
	ids := activeIDs(active)

	if len(saved) > 0 {
		rotation := make([]string, 0, rotationSize)
		for _, pid := range saved {
			if ids[pid] && !contains(rotation, pid) {
				rotation = append(rotation, pid)
			}
		}
		if len(rotation) > 0 {
			e.Rotation = rotation
			e.clampCursor()
			return
		}
	}

	rotation := e.Rotation[:0]
	for _, pid := range e.Rotation {
		if ids[pid] {
			rotation = append(rotation, pid)
		}
	}
	if len(rotation) < rotationSize {
		ordered := append([]model.Pitcher(nil), active...)
		byEndurance(ordered)
		for _, p := range ordered {
			if len(rotation) >= rotationSize {
				break
			}
			if !contains(rotation, p.ID) {
				rotation = append(rotation, p.ID)
			}
		}
	}
	if len(rotation) == 0 {
		rotation = BuildRotation(active, nil)
	}
	e.Rotation = rotation
	e.clampCursor()
}

func (e *TeamEntry) clampCursor() {
	if len(e.Rotation) == 0 {
		e.NextIndex = 0
		return
	}
	e.NextIndex = ((e.NextIndex % len(e.Rotation)) + len(e.Rotation)) % len(e.Rotation)
}

// assignStarter scans the rotation from the cursor, wrapping once, for the
// first arm past its rest date. When everyone is still resting it falls
// back to the closest-to-ready arm; the rotation always produces a starter
// unless it is empty. The cursor advances one past the chosen slot.
func (e *TeamEntry) assignStarter(day time.Time) (pid string, fallback, ok bool) {
	total := len(e.Rotation)
	if total == 0 {
		return "", false, false
	}
	day = Day(day)
	chosen := -1
	for offset := 0; offset < total; offset++ {
		idx := (e.NextIndex + offset) % total
		st := e.status(e.Rotation[idx])
		if !st.AvailableOn.After(day) {
			chosen = idx
			break
		}
	}
	if chosen == -1 {
		// Everyone is tired; take the least-rested arm.
		fallback = true
		chosen = 0
		earliest := e.status(e.Rotation[0]).AvailableOn
		for idx := 1; idx < total; idx++ {
			if on := e.status(e.Rotation[idx]).AvailableOn; on.Before(earliest) {
				earliest = on
				chosen = idx
			}
		}
	}
	e.NextIndex = (chosen + 1) % total
	return e.Rotation[chosen], fallback, true
}

func byEndurance(ps []model.Pitcher) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Endurance > ps[j].Endurance })
}

func activeIDs(active []model.Pitcher) map[string]bool {
	ids := make(map[string]bool, len(active))
	for _, p := range active {
		if p.ID != "" {
			ids[p.ID] = true
		}
	}
	return ids
}

func contains(ids []string, pid string) bool {
	for _, v := range ids {
		if v == pid {
			return true
		}
	}
	return false
}
