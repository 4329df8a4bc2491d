package picks

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/richard-senior/gridiron/internal/logger"
)

// Ratings is the owned store of per-team Elo values. It is mutated only by
// ApplyOutcome and Set, and is always passed explicitly rather than living
// in package state so that two builds never interfere.
type Ratings struct {
	values map[string]float64
}

// NewRatings returns an empty rating store
func NewRatings() *Ratings {
	return &Ratings{values: make(map[string]float64)}
}

// Get returns the rating for a team, lazily initializing unseen teams to
// the configured base rating
func (r *Ratings) Get(team string) float64 {
	if v, ok := r.values[team]; ok {
		return v
	}
	r.values[team] = GetStartElo()
	return r.values[team]
}

// Set writes a rating for a team
func (r *Ratings) Set(team string, value float64) {
	r.values[team] = value
}

// Has reports whether a team has an explicit rating
func (r *Ratings) Has(team string) bool {
	_, ok := r.values[team]
	return ok
}

// Len returns the number of rated teams
func (r *Ratings) Len() int {
	return len(r.values)
}

// Teams returns the rated team names in alphabetical order
func (r *Ratings) Teams() []string {
	teams := make([]string, 0, len(r.values))
	for team := range r.values {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

/////////////////////////////////////////////////////////////////////////
////// Elo maths
/////////////////////////////////////////////////////////////////////////

// ExpectedScore returns the probability of side a beating side b implied by
// their ratings alone
func ExpectedScore(eloA, eloB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (eloB-eloA)/400.0))
}

// ApplyOutcome updates both participants' ratings for one completed game.
// The actual result is derived from the scores (1 win, 0 loss, 0.5 tie) and
// both sides move by K times their deviation from expectation. The home
// bonus is never applied here: a historical final score already embeds any
// home advantage, so updates use raw stored ratings only.
func (r *Ratings) ApplyOutcome(o *Outcome) {
	eloW := r.Get(o.Winner)
	eloL := r.Get(o.Loser)

	var resultW float64
	switch {
	case o.WinnerScore > o.LoserScore:
		resultW = 1.0
	case o.WinnerScore < o.LoserScore:
		resultW = 0.0
	default:
		resultW = 0.5
	}

	expW := ExpectedScore(eloW, eloL)
	k := GetKFactor()
	r.Set(o.Winner, eloW+k*(resultW-expW))
	r.Set(o.Loser, eloL+k*((1.0-resultW)-(1.0-expW)))
}

/////////////////////////////////////////////////////////////////////////
////// Builder
/////////////////////////////////////////////////////////////////////////

// BuildRatings folds a historical results CSV into a rating store.
// Rows are normalized and applied strictly in file order with no internal
// sort; chronological ordering is a documented precondition on the caller
// (files written by this module's history builder satisfy it). Unusable
// rows are skipped; a table that cannot be read at all is a returned error
// so callers can tell a broken source from an empty one.
func BuildRatings(csvPath string) (*Ratings, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open historical results %s: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged exports
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse historical results %s: %w", csvPath, err)
	}

	ratings := NewRatings()
	if len(records) == 0 {
		logger.Warn("Historical results table is empty", csvPath)
		return ratings, nil
	}

	cols := newColumnIndex(records[0])
	headers := make([]string, len(records[0]))
	for j, h := range records[0] {
		headers[j] = cleanHeader(h)
	}

	applied := 0
	for i, record := range records[1:] {
		row := make(GameRow, len(headers))
		for j, value := range record {
			if j < len(headers) {
				row[headers[j]] = value
			}
		}

		outcome, err := NormalizeRow(row, cols)
		if err != nil {
			logger.Debug("Skipping row", i+2, err)
			continue
		}
		ratings.ApplyOutcome(outcome)
		applied++
	}

	logger.Info("Built ratings from", applied, "games covering", ratings.Len(), "teams")
	return ratings, nil
}
