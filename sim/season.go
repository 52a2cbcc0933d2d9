// Package sim drives the recovery tracker through a simulated schedule:
// one StartDay per calendar day, a starter assignment and game workload per
// team, plus occasional warmups. It stands in for the full game engine so
// the usage model can be exercised and calibrated end to end.
package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rgoulet/dugout/core/logger"
	"github.com/rgoulet/dugout/core/model"
	"github.com/rgoulet/dugout/core/recovery"
	"github.com/rgoulet/dugout/core/roster"
)

// Config defines the simulated schedule.
type Config struct {
	Days  int      `json:"days"`
	Start string   `json:"start"` // YYYY-MM-DD
	Teams []string `json:"teams"`
	Seed  int64    `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Days == 0 {
		c.Days = 30
	}
	if c.Start == "" {
		c.Start = "2025-04-01"
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks the schedule parameters.
func (c Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative")
	}
	if _, err := time.Parse(recovery.DateFormat, c.Start); c.Start != "" && err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	return nil
}

// GameLog captures one simulated game for reporting and calibration.
type GameLog struct {
	ID        string
	Day       time.Time
	TeamID    string
	StarterID string
	Usage     []recovery.PitcherUsage
	Warmed    []string
}

// Driver steps the tracker through the configured schedule.
type Driver struct {
	cfg     Config
	tracker *recovery.Tracker
	src     roster.Source
	log     logger.Logger
	rng     *rand.Rand
}

// NewDriver builds a Driver. log may be nil.
func NewDriver(cfg Config, tracker *recovery.Tracker, src roster.Source, log logger.Logger) *Driver {
	if log == nil {
		log = logger.Nop{}
	}
	cfg.SetDefaults()
	return &Driver{
		cfg:     cfg,
		tracker: tracker,
		src:     src,
		log:     log,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run plays the schedule and returns one log entry per simulated game.
func (d *Driver) Run() ([]GameLog, error) {
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}
	start := recovery.ParseDate(d.cfg.Start)
	var logs []GameLog
	for i := 0; i < d.cfg.Days; i++ {
		day := start.AddDate(0, 0, i)
		d.tracker.StartDay(day)
		for _, teamID := range d.cfg.Teams {
			logs = append(logs, d.playGame(teamID, day))
		}
	}
	return logs, nil
}

func (d *Driver) playGame(teamID string, day time.Time) GameLog {
	game := GameLog{ID: uuid.NewString(), Day: day, TeamID: teamID}

	d.tracker.EnsureTeam(teamID)
	starter, ok := d.tracker.AssignStarter(teamID, day)
	if ok {
		game.StarterID = starter
		game.Usage = append(game.Usage, recovery.PitcherUsage{
			PitcherID:        starter,
			Role:             model.RoleStarter,
			Pitches:          75 + d.rng.Intn(36),
			SimulatedPitches: d.rng.Float64() * 5,
		})
	}

	relievers := d.availableRelievers(teamID, day, starter)
	appearances := 0
	var warmed []string
	for _, p := range relievers {
		if appearances >= 3 {
			break
		}
		switch {
		case d.rng.Float64() < 0.55:
			game.Usage = append(game.Usage, recovery.PitcherUsage{
				PitcherID:        p.ID,
				Role:             p.Role,
				Pitches:          8 + d.rng.Intn(23),
				SimulatedPitches: d.rng.Float64() * 3,
			})
			appearances++
		case d.rng.Float64() < 0.25:
			warmed = append(warmed, p.ID)
		}
	}

	d.tracker.RecordGame(teamID, day, game.Usage)
	if len(warmed) > 0 {
		charges := make(map[string]int, len(warmed))
		for _, pid := range warmed {
			charges[pid] = 5 + d.rng.Intn(11)
		}
		d.tracker.RecordWarmups(teamID, day, charges)
		game.Warmed = warmed
	}

	d.log.Debugw("game played", map[string]any{
		"game_id": game.ID,
		"team":    teamID,
		"day":     recovery.FormatDate(day),
		"starter": game.StarterID,
		"arms":    len(game.Usage),
	})
	return game
}

// availableRelievers lists non-starters cleared by the availability rules,
// in a stable order so runs are reproducible for a given seed.
func (d *Driver) availableRelievers(teamID string, day time.Time, starter string) []model.Pitcher {
	var out []model.Pitcher
	if d.src == nil {
		return nil
	}
	for _, p := range d.src.ActivePitchers(teamID) {
		if p.ID == starter || p.Role.IsStarter() {
			continue
		}
		if ok, _ := d.tracker.IsAvailable(teamID, p.ID, p.Role, day); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
