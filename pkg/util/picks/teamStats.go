package picks

import (
	"strings"
	"time"
)

/////////////////////////////////////////////////////////////////////
// Season statistics
/////////////////////////////////////////////////////////////////////

// SeasonStats holds one team's aggregate statistics for a single season.
// PointDiff is derived from PointsFor and PointsAgainst before saving.
type SeasonStats struct {
	Team          string  `column:"team" dbtype:"TEXT" primary:"true"`
	Season        int     `column:"season" dbtype:"INTEGER" primary:"true" index:"true"`
	PointsFor     float64 `column:"points_for" dbtype:"REAL"`
	PointsAgainst float64 `column:"points_against" dbtype:"REAL"`
	Turnovers     float64 `column:"turnovers" dbtype:"REAL"`
	Yards         float64 `column:"yards" dbtype:"REAL"`
	PointDiff     float64 `column:"point_diff" dbtype:"REAL"`
	CreatedAt     string  `column:"created_at" dbtype:"TEXT"`
	UpdatedAt     string  `column:"updated_at" dbtype:"TEXT"`
}

func (s *SeasonStats) GetTableName() string {
	return "season_stats"
}

func (s *SeasonStats) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"team":   s.Team,
		"season": s.Season,
	}
}

// Derive recalculates fields that depend on the raw statistics
func (s *SeasonStats) Derive() {
	s.PointDiff = s.PointsFor - s.PointsAgainst
}

func (s *SeasonStats) BeforeSave() error {
	s.Derive()
	now := time.Now().Format(time.RFC3339)
	if s.CreatedAt == "" {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return nil
}

func (s *SeasonStats) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////
// Stats table
/////////////////////////////////////////////////////////////////////

// StatsTable is an in-memory lookup of season statistics keyed by team name.
// Lookups are case-insensitive on the team name.
type StatsTable struct {
	stats map[string]*SeasonStats
}

func NewStatsTable() *StatsTable {
	return &StatsTable{
		stats: make(map[string]*SeasonStats),
	}
}

// Put adds or replaces the stats entry for its team
func (t *StatsTable) Put(s *SeasonStats) {
	if s == nil || s.Team == "" {
		return
	}
	t.stats[strings.ToLower(s.Team)] = s
}

// Lookup returns the stats for the given team, or false if there are none
func (t *StatsTable) Lookup(team string) (*SeasonStats, bool) {
	s, ok := t.stats[strings.ToLower(team)]
	return s, ok
}

func (t *StatsTable) Len() int {
	return len(t.stats)
}

// SaveSeasonStats persists every entry in the table
func SaveSeasonStats(t *StatsTable) error {
	objects := make([]Persistable, 0, t.Len())
	for _, s := range t.stats {
		objects = append(objects, s)
	}
	return BulkSave(objects)
}
