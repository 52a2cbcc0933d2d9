// Package roster implements a file-backed roster source over the CSV
// layout the game ships: a players file, per-team roster files listing
// roster levels, and an optional per-team pitching file assigning bullpen
// roles and the SP1..SP5 rotation slots.
package roster

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	corelogger "github.com/rgoulet/dugout/core/logger"
	"github.com/rgoulet/dugout/core/model"
)

var rotationSlots = map[string]int{"SP1": 0, "SP2": 1, "SP3": 2, "SP4": 3, "SP5": 4}

// CSVSource reads the active pitching staff from CSV files. Missing or
// malformed files degrade to an empty result; nothing here is fatal.
type CSVSource struct {
	playersPath string
	rosterDir   string
	log         corelogger.Logger
}

// NewCSVSource builds a source over the players file and the roster
// directory. log may be nil.
func NewCSVSource(playersPath, rosterDir string, log corelogger.Logger) *CSVSource {
	if log == nil {
		log = corelogger.Nop{}
	}
	return &CSVSource{playersPath: playersPath, rosterDir: rosterDir, log: log}
}

// ActivePitchers returns the team's ACT-level pitchers with endurance and
// assigned role. Role assignments come from the team's pitching file when
// present, then from the players file, then default to MR.
func (s *CSVSource) ActivePitchers(teamID string) []model.Pitcher {
	act := s.activeIDs(teamID)
	if len(act) == 0 {
		return nil
	}
	players := s.loadPlayers()
	roles := s.loadRoles(teamID)

	var out []model.Pitcher
	for _, pid := range act {
		p, ok := players[pid]
		if !ok || !p.isPitcher {
			continue
		}
		role := roles[pid]
		if role == "" {
			role = p.role
		}
		out = append(out, model.Pitcher{
			ID:        pid,
			Endurance: p.endurance,
			Role:      model.NormalizeRole(role),
		})
	}
	return out
}

// SavedRotation returns the SP1..SP5 order from the team's pitching file,
// or nil when the file is absent.
func (s *CSVSource) SavedRotation(teamID string) []string {
	rows := s.readCSV(filepath.Join(s.rosterDir, teamID+"_pitching.csv"))
	type slot struct {
		order int
		pid   string
	}
	var slots []slot
	seen := map[string]bool{}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		pid := strings.TrimSpace(row[0])
		order, ok := rotationSlots[strings.ToUpper(strings.TrimSpace(row[1]))]
		if !ok || pid == "" || seen[pid] {
			continue
		}
		slots = append(slots, slot{order: order, pid: pid})
		seen[pid] = true
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].order < slots[j].order })
	out := make([]string, 0, len(slots))
	for _, sl := range slots {
		out = append(out, sl.pid)
	}
	return out
}

func (s *CSVSource) activeIDs(teamID string) []string {
	rows := s.readCSV(filepath.Join(s.rosterDir, teamID+".csv"))
	var act []string
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(row[1])) == "ACT" {
			act = append(act, strings.TrimSpace(row[0]))
		}
	}
	return act
}

type playerRow struct {
	isPitcher bool
	endurance int
	role      string
}

// loadPlayers reads the players file, a headered CSV with at least
// player_id, is_pitcher and endurance columns (role optional).
func (s *CSVSource) loadPlayers() map[string]playerRow {
	rows := s.readCSV(s.playersPath)
	if len(rows) < 2 {
		return nil
	}
	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	idIdx, ok := col["player_id"]
	if !ok {
		s.log.Warnf("players file %s missing player_id column", s.playersPath)
		return nil
	}
	out := make(map[string]playerRow, len(rows)-1)
	for _, row := range rows[1:] {
		if idIdx >= len(row) {
			continue
		}
		pid := strings.TrimSpace(row[idIdx])
		if pid == "" {
			continue
		}
		out[pid] = playerRow{
			isPitcher: parseBool(field(row, col, "is_pitcher")),
			endurance: parseInt(field(row, col, "endurance")),
			role:      field(row, col, "role"),
		}
	}
	return out
}

// loadRoles maps pitcher id to the role token from the pitching file.
func (s *CSVSource) loadRoles(teamID string) map[string]string {
	rows := s.readCSV(filepath.Join(s.rosterDir, teamID+"_pitching.csv"))
	out := map[string]string{}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		pid := strings.TrimSpace(row[0])
		if pid != "" {
			out[pid] = strings.TrimSpace(row[1])
		}
	}
	return out
}

func (s *CSVSource) readCSV(path string) [][]string {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warnf("open %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		s.log.Warnf("parse %s: %v", path, err)
		return nil
	}
	return rows
}

func field(row []string, col map[string]int, name string) string {
	idx, ok := col[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func parseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
