package picks

import (
	"fmt"
	"strconv"
	"strings"
)

// GameRow is one raw row of a results table, keyed by the original header names.
// Historical results arrive in a handful of shapes depending on where they
// were exported from; NormalizeRow decides whether a row describes a
// completed game and reduces it to a canonical Outcome.
type GameRow map[string]string

// Outcome is the canonical record of one completed game. When a game
// finished level the first-listed side occupies the winner slot; the rating
// engine derives the actual result from the scores so slot order does not
// affect the maths for ties.
type Outcome struct {
	Winner      string
	Loser       string
	WinnerScore int
	LoserScore  int
}

// IsTie returns true when the game finished level
func (o *Outcome) IsTie() bool {
	return o.WinnerScore == o.LoserScore
}

/////////////////////////////////////////////////////////////////////////
////// Schema variants
/////////////////////////////////////////////////////////////////////////

// columnIndex maps lowercased header names to their original spelling so
// that rows can be read case-insensitively but otherwise exactly
type columnIndex map[string]string

// cleanHeader strips surrounding whitespace and any UTF-8 BOM an exported
// file may carry on its first header
func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF"))
}

// newColumnIndex builds a case-insensitive lookup over a header row
func newColumnIndex(headers []string) columnIndex {
	idx := make(columnIndex, len(headers))
	for _, h := range headers {
		name := cleanHeader(h)
		if name == "" {
			continue
		}
		idx[strings.ToLower(name)] = name
	}
	return idx
}

// has reports whether every named column is present
func (c columnIndex) has(names ...string) bool {
	for _, n := range names {
		if _, ok := c[strings.ToLower(n)]; !ok {
			return false
		}
	}
	return true
}

// col returns the original spelling of a column name, or ""
func (c columnIndex) col(name string) string {
	return c[strings.ToLower(name)]
}

// scorePair names a winner-score / loser-score column alias pair
type scorePair struct {
	winnerCol string
	loserCol  string
}

// The winner/loser family appears with several score column spellings
// depending on the export. Checked strictly in this order.
var winnerLoserScorePairs = []scorePair{
	{"Points_Winner", "Points_Loser"},
	{"PtsW", "PtsL"},
	{"Pts", "Pts.1"},
}

// Column names of the two recognized schema families
const (
	winnerCol    = "Winner/tie"
	loserCol     = "Loser/tie"
	homeTeamCol  = "home_team"
	awayTeamCol  = "away_team"
	homeScoreCol = "home_score"
	awayScoreCol = "away_score"
)

/////////////////////////////////////////////////////////////////////////
////// Normalization
/////////////////////////////////////////////////////////////////////////

// NormalizeRow reduces one raw row to a canonical Outcome.
// Two schema families are recognized, tried in a fixed precedence order:
//
//  1. winner/loser: named winner and loser plus one of several score column
//     alias pairs. A row carrying the names but no usable score pair is
//     still accepted as a 1-0 result (a win recorded without margin).
//  2. home/away: named home and away teams with mandatory scores. Without
//     both scores there is no way to derive a winner, so the row is rejected.
//
// Rows matching neither family, or home/away rows with unusable scores,
// return an error. Callers treat that as skip-and-continue, never as fatal.
func NormalizeRow(row GameRow, cols columnIndex) (*Outcome, error) {
	// Winner/loser family takes priority if a row somehow matches both
	if cols.has(winnerCol, loserCol) {
		return normalizeWinnerLoser(row, cols)
	}
	if cols.has(homeTeamCol, awayTeamCol) {
		return normalizeHomeAway(row, cols)
	}
	return nil, fmt.Errorf("row matches no recognized schema family")
}

// normalizeWinnerLoser handles PFR-style rows that already name the winner
func normalizeWinnerLoser(row GameRow, cols columnIndex) (*Outcome, error) {
	winner := strings.TrimSpace(row[cols.col(winnerCol)])
	loser := strings.TrimSpace(row[cols.col(loserCol)])
	if winner == "" || loser == "" {
		return nil, fmt.Errorf("winner/loser row is missing a team name")
	}

	for _, pair := range winnerLoserScorePairs {
		if !cols.has(pair.winnerCol, pair.loserCol) {
			continue
		}
		ws, werr := parseScore(row[cols.col(pair.winnerCol)])
		ls, lerr := parseScore(row[cols.col(pair.loserCol)])
		if werr != nil || lerr != nil {
			// Pair present but unusable, try the next alias pair
			continue
		}
		return &Outcome{Winner: winner, Loser: loser, WinnerScore: ws, LoserScore: ls}, nil
	}

	// No usable score pair, still count the win/loss itself
	return &Outcome{Winner: winner, Loser: loser, WinnerScore: 1, LoserScore: 0}, nil
}

// normalizeHomeAway handles schedule-style rows where the winner must be
// derived from the scores
func normalizeHomeAway(row GameRow, cols columnIndex) (*Outcome, error) {
	home := strings.TrimSpace(row[cols.col(homeTeamCol)])
	away := strings.TrimSpace(row[cols.col(awayTeamCol)])
	if home == "" || away == "" {
		return nil, fmt.Errorf("home/away row is missing a team name")
	}

	if !cols.has(homeScoreCol) || !cols.has(awayScoreCol) {
		return nil, fmt.Errorf("home/away row has no score columns")
	}

	hs, herr := parseScore(row[cols.col(homeScoreCol)])
	as, aerr := parseScore(row[cols.col(awayScoreCol)])
	if herr != nil || aerr != nil {
		return nil, fmt.Errorf("home/away row has unparseable scores")
	}

	if as > hs {
		return &Outcome{Winner: away, Loser: home, WinnerScore: as, LoserScore: hs}, nil
	}
	// A draw leaves the home side in the winner slot
	return &Outcome{Winner: home, Loser: away, WinnerScore: hs, LoserScore: as}, nil
}

// parseScore parses a non-negative integer score
func parseScore(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty score")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("score %q is not an integer: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("score %d is negative", v)
	}
	return v, nil
}
