package recovery

import (
	"sort"
	"time"

	"github.com/rgoulet/dugout/core/logger"
	"github.com/rgoulet/dugout/core/metrics"
	"github.com/rgoulet/dugout/core/model"
	"github.com/rgoulet/dugout/core/playbalance"
	"github.com/rgoulet/dugout/core/roster"
)

// Persister loads and rewrites the persisted store. The store is written in
// full after every mutating call; there is no incremental log.
type Persister interface {
	Load() (*Store, error)
	Save(*Store) error
}

// Tracker orchestrates rest, budget and rotation state for every team. It
// is an explicitly constructed value owned by the simulation loop; callers
// share one instance and drive it single-threaded, one simulated day at a
// time (StartDay before any same-day assignment or recording).
type Tracker struct {
	model   Model
	engine  Engine
	src     roster.Source
	persist Persister
	log     logger.Logger
	sink    metrics.UsageSink

	store    *Store
	assigned map[string]string
}

// New builds a Tracker. persist may be nil for a purely in-memory tracker;
// log and sink may be nil. A corrupted persisted store resets to empty.
func New(cfg *playbalance.Settings, src roster.Source, persist Persister, log logger.Logger, sink metrics.UsageSink) *Tracker {
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	m := NewModel(cfg)
	t := &Tracker{
		model:    m,
		engine:   NewEngine(m),
		src:      src,
		persist:  persist,
		log:      log,
		sink:     sink,
		store:    NewStore(),
		assigned: map[string]string{},
	}
	if persist != nil {
		st, err := persist.Load()
		if err != nil {
			log.Warnf("recovery store unreadable, starting empty: %v", err)
		} else if st != nil {
			t.store = st
		}
	}
	return t
}

// Teams lists every tracked team id in stable order.
func (t *Tracker) Teams() []string {
	ids := make([]string, 0, len(t.store.Teams))
	for id := range t.store.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StartDay applies one day of stamina recovery to every tracked pitcher and
// clears the previous day's starter assignments. Call it exactly once per
// simulated day, before any same-day AssignStarter or Record* call; calling
// it twice double-applies recovery.
func (t *Tracker) StartDay(day time.Time) {
	t.assigned = map[string]string{}
	for _, entry := range t.store.Teams {
		for _, st := range entry.Pitchers {
			t.model.ApplyDailyRecovery(st, model.NormalizeRole(string(st.LastRole)))
		}
	}
	t.persistStore()
}

// EnsureTeam lazily creates or refreshes the team's recovery entry from the
// current active roster. Idempotent and safe to call redundantly.
func (t *Tracker) EnsureTeam(teamID string) {
	_, existed := t.store.Teams[teamID]
	t.ensureTeam(teamID)
	if !existed {
		t.persistStore()
	}
}

func (t *Tracker) ensureTeam(teamID string) *TeamEntry {
	var active []model.Pitcher
	var saved []string
	if t.src != nil {
		active = t.src.ActivePitchers(teamID)
		saved = t.src.SavedRotation(teamID)
	}

	entry, ok := t.store.Teams[teamID]
	if !ok {
		entry = newTeamEntry()
		entry.Rotation = BuildRotation(active, saved)
		t.store.Teams[teamID] = entry
	} else {
		// Refresh on roster change: keep status for pitchers still active,
		// drop the rest.
		ids := activeIDs(active)
		for pid := range entry.Pitchers {
			if !ids[pid] {
				delete(entry.Pitchers, pid)
			}
		}
		entry.refreshRotation(active, saved)
	}

	entry.staff = make(map[string]model.Pitcher, len(active))
	for _, p := range active {
		if p.ID == "" {
			continue
		}
		p.Role = model.NormalizeRole(string(p.Role))
		entry.staff[p.ID] = p
		st := entry.status(p.ID)
		if st.LastRole == "" {
			st.LastRole = p.Role
		}
		t.model.EnsureBudgetInitialized(st, p.Endurance, p.Role)
	}
	return entry
}

// AssignStarter picks the next rotation arm for the team on the given day
// and remembers it for AssignedStarter read-back. The empty string with
// ok=false means the rotation is empty.
func (t *Tracker) AssignStarter(teamID string, day time.Time) (string, bool) {
	entry := t.ensureTeam(teamID)
	pid, fallback, ok := entry.assignStarter(day)
	if !ok {
		return "", false
	}
	t.assigned[teamID] = pid
	if err := t.sink.RecordStarterAssignment(metrics.StarterAssignment{
		TeamID: teamID, PitcherID: pid, Day: Day(day), Fallback: fallback,
	}); err != nil {
		t.log.Debugf("starter assignment metric: %v", err)
	}
	t.persistStore()
	return pid, true
}

// AssignedStarter returns the starter chosen earlier today, if any.
// Assignments are in-process only and reset on StartDay.
func (t *Tracker) AssignedStarter(teamID string) (string, bool) {
	pid, ok := t.assigned[teamID]
	return pid, ok
}

// GameStatus is the per-pitcher snapshot consumed by bullpen management.
type GameStatus struct {
	Available       bool
	Reason          Reason
	DaysSinceUse    int
	LastPitches     int
	AvailableOn     time.Time
	Apps3           int
	Apps7           int
	ConsecutiveDays int
	AvailablePct    float64
}

// neverUsedDays is reported for pitchers without a recorded appearance.
const neverUsedDays = 9999

// BullpenGameStatus reports every tracked pitcher's availability for the
// day. Read-only with respect to rest state; budget fields are lazily
// initialized from the roster.
func (t *Tracker) BullpenGameStatus(teamID string, day time.Time) map[string]GameStatus {
	entry := t.ensureTeam(teamID)
	day = Day(day)
	out := make(map[string]GameStatus, len(entry.Pitchers))
	for pid, st := range entry.Pitchers {
		role := t.roleFor(entry, pid, st)
		available, reason := t.engine.Check(st, role, day)
		days := neverUsedDays
		if !st.LastUsed.Equal(epoch) {
			days = int(day.Sub(Day(st.LastUsed)).Hours() / 24)
		}
		out[pid] = GameStatus{
			Available:       available,
			Reason:          reason,
			DaysSinceUse:    days,
			LastPitches:     st.LastPitches,
			AvailableOn:     st.AvailableOn,
			Apps3:           st.appearancesBetween(day.AddDate(0, 0, -3), day),
			Apps7:           st.appearancesBetween(day.AddDate(0, 0, -7), day),
			ConsecutiveDays: st.consecutiveAppearanceDays(day),
			AvailablePct:    st.AvailableFraction(),
		}
	}
	return out
}

// PitcherUsage describes one pitcher's workload in a finished game.
// SimulatedPitches is an opaque extra pitch-equivalent supplied by the game
// simulation; it is charged against the budget but never fed to the rest
// curve.
type PitcherUsage struct {
	PitcherID        string
	Role             model.Role
	Pitches          int
	SimulatedPitches float64
}

// RecordGame records post-game workloads. Pitchers with zero pitches are
// untouched.
func (t *Tracker) RecordGame(teamID string, day time.Time, usage []PitcherUsage) {
	entry := t.ensureTeam(teamID)
	day = Day(day)
	updated := false
	for _, u := range usage {
		if u.PitcherID == "" || u.Pitches <= 0 {
			continue
		}
		st := entry.status(u.PitcherID)
		role := u.Role
		if role == "" {
			role = t.roleFor(entry, u.PitcherID, st)
		}
		role = model.NormalizeRole(string(role))
		if p, ok := entry.staff[u.PitcherID]; ok {
			t.model.EnsureBudgetInitialized(st, p.Endurance, role)
		}
		rest := t.model.RestDays(u.Pitches)
		st.AvailableOn = day.AddDate(0, 0, rest)
		st.LastUsed = day
		st.LastPitches = u.Pitches
		st.LastRole = role
		t.model.ApplyBudgetPenalty(st, role, float64(u.Pitches)+u.SimulatedPitches)
		st.addEntry(UsageEntry{
			Date:            day,
			Pitches:         u.Pitches,
			Appeared:        true,
			AvailableBudget: st.AvailableBudget,
		})
		t.recordWorkload(teamID, u.PitcherID, role, day, u.Pitches, "game")
		updated = true
	}
	if updated {
		t.persistStore()
	}
}

// RecordWarmups charges pitchers who warmed but never entered the game.
// The cost is the tracked warmup pitch count when positive, otherwise the
// flat warmup tax. Rest is only ever extended, and last-usage fields stay
// untouched. Pitchers who already appeared today are skipped.
func (t *Tracker) RecordWarmups(teamID string, day time.Time, warmed map[string]int) {
	entry := t.ensureTeam(teamID)
	day = Day(day)
	updated := false
	for pid, tracked := range warmed {
		if pid == "" {
			continue
		}
		st := entry.status(pid)
		if _, appeared := st.appearanceOn(day); appeared {
			continue
		}
		role := t.roleFor(entry, pid, st)
		cost := t.model.WarmupCost(tracked)
		t.extendRest(st, day, cost)
		t.model.ApplyBudgetPenalty(st, role, float64(cost))
		st.addEntry(UsageEntry{
			Date:            day,
			Pitches:         cost,
			WarmedOnly:      true,
			AvailableBudget: st.AvailableBudget,
		})
		t.recordWorkload(teamID, pid, role, day, cost, "warmup")
		updated = true
	}
	if updated {
		t.persistStore()
	}
}

// ApplyPenalties charges explicit penalty pitch counts: same budget and
// rest-extension mechanics as warmups, tagged as neither an appearance nor
// a warmup.
func (t *Tracker) ApplyPenalties(teamID string, day time.Time, penalties map[string]int) {
	entry := t.ensureTeam(teamID)
	day = Day(day)
	updated := false
	for pid, pitches := range penalties {
		if pid == "" || pitches <= 0 {
			continue
		}
		st := entry.status(pid)
		role := t.roleFor(entry, pid, st)
		t.extendRest(st, day, pitches)
		t.model.ApplyBudgetPenalty(st, role, float64(pitches))
		st.addEntry(UsageEntry{
			Date:            day,
			Pitches:         pitches,
			AvailableBudget: st.AvailableBudget,
		})
		t.recordWorkload(teamID, pid, role, day, pitches, "penalty")
		updated = true
	}
	if updated {
		t.persistStore()
	}
}

// IsAvailable answers whether the pitcher may be used on the day, and why
// not if not. Unknown pitcher ids read as available.
func (t *Tracker) IsAvailable(teamID, pitcherID string, role model.Role, day time.Time) (bool, Reason) {
	entry := t.ensureTeam(teamID)
	st, ok := entry.Pitchers[pitcherID]
	if !ok {
		return true, ReasonOK
	}
	role = model.NormalizeRole(string(role))
	available, reason := t.engine.Check(st, role, Day(day))
	if err := t.sink.RecordAvailabilityCheck(metrics.AvailabilityCheck{
		TeamID: teamID, PitcherID: pitcherID, Role: role, Day: Day(day),
		Available: available, Reason: string(reason),
	}); err != nil {
		t.log.Debugf("availability metric: %v", err)
	}
	return available, reason
}

// extendRest raises available_on per the rest curve; it never lowers it.
func (t *Tracker) extendRest(st *PitcherStatus, day time.Time, pitches int) {
	until := day.AddDate(0, 0, t.model.RestDays(pitches))
	if until.After(st.AvailableOn) {
		st.AvailableOn = until
	}
}

func (t *Tracker) roleFor(entry *TeamEntry, pid string, st *PitcherStatus) model.Role {
	if p, ok := entry.staff[pid]; ok {
		return p.Role
	}
	return model.NormalizeRole(string(st.LastRole))
}

func (t *Tracker) recordWorkload(teamID, pid string, role model.Role, day time.Time, pitches int, kind string) {
	if err := t.sink.RecordWorkload(metrics.WorkloadEvent{
		TeamID: teamID, PitcherID: pid, Role: role, Day: day, Pitches: pitches, Kind: kind,
	}); err != nil {
		t.log.Debugf("workload metric: %v", err)
	}
}

func (t *Tracker) persistStore() {
	if t.persist == nil {
		return
	}
	if err := t.persist.Save(t.store); err != nil {
		t.log.Errorf("persist recovery store: %v", err)
	}
}
