package picks

import (
	"testing"
)

const standingsFixture = `<html><body>
<table id="AFC">
  <thead>
    <tr><th>Tm</th><th>W</th><th>L</th><th>PF</th><th>PA</th><th>Yds</th><th>TO</th></tr>
  </thead>
  <tbody>
    <tr><th>Buffalo Bills*</th><td>13</td><td>4</td><td>525</td><td>368</td><td>6400</td><td>12</td></tr>
    <tr><th>Miami Dolphins+</th><td>11</td><td>6</td><td>496</td><td>391</td><td>6822</td><td>22</td></tr>
  </tbody>
</table>
<table id="NFC">
  <thead>
    <tr><th>Tm</th><th>W</th><th>L</th><th>PF</th><th>PA</th></tr>
  </thead>
  <tbody>
    <tr><th>Detroit Lions</th><td>12</td><td>5</td><td>461</td><td>395</td></tr>
  </tbody>
</table>
<table id="unrelated">
  <thead><tr><th>Player</th><th>G</th></tr></thead>
  <tbody><tr><td>Somebody</td><td>17</td></tr></tbody>
</table>
</body></html>`

func TestParseStandings(t *testing.T) {
	table, err := parseStandings([]byte(standingsFixture), 2023)
	if err != nil {
		t.Fatal(err)
	}

	// Both conference tables merge, the unrelated table is ignored
	if table.Len() != 3 {
		t.Fatalf("expected 3 teams, got %d", table.Len())
	}

	s, ok := table.Lookup("Buffalo Bills")
	if !ok {
		t.Fatal("playoff markers should be stripped from team names")
	}
	if s.PointsFor != 525 || s.PointsAgainst != 368 {
		t.Errorf("wrong points: %f / %f", s.PointsFor, s.PointsAgainst)
	}
	if s.Turnovers != 12 || s.Yards != 6400 {
		t.Errorf("wrong turnovers or yards: %f / %f", s.Turnovers, s.Yards)
	}
	if s.PointDiff != 157 {
		t.Errorf("point diff should be derived, got %f", s.PointDiff)
	}
	if s.Season != 2023 {
		t.Errorf("season should be carried through, got %d", s.Season)
	}

	// A table without turnover and yardage columns defaults them to zero
	s, ok = table.Lookup("Detroit Lions")
	if !ok {
		t.Fatal("expected the NFC table to be parsed too")
	}
	if s.Turnovers != 0 || s.Yards != 0 {
		t.Errorf("missing columns should default to zero, got %f / %f", s.Turnovers, s.Yards)
	}
}

func TestParseStandingsNoTeams(t *testing.T) {
	if _, err := parseStandings([]byte("<html><body></body></html>"), 2023); err == nil {
		t.Error("expected an error when no standings tables exist")
	}
}

const scheduleFixture = `<html><body>
<table id="games">
  <thead>
    <tr><th>Week</th><th>Date</th><th>Winner/tie</th><th></th><th>Loser/tie</th><th>PtsW</th><th>PtsL</th></tr>
  </thead>
  <tbody>
    <tr>
      <th data-stat="week_num">1</th>
      <td data-stat="game_date">2023-09-10</td>
      <td data-stat="winner">Green Bay Packers</td>
      <td data-stat="game_location">@</td>
      <td data-stat="loser">Chicago Bears</td>
      <td data-stat="pts_win">38</td>
      <td data-stat="pts_lose">20</td>
      <td data-stat="yards_win">330</td>
      <td data-stat="to_win">0</td>
      <td data-stat="yards_lose">311</td>
      <td data-stat="to_lose">1</td>
    </tr>
    <tr>
      <th data-stat="week_num">Week</th>
      <td data-stat="winner">Winner/tie</td>
      <td data-stat="loser">Loser/tie</td>
    </tr>
    <tr>
      <th data-stat="week_num">2</th>
      <td data-stat="game_date">2023-09-17</td>
      <td data-stat="winner">Dallas Cowboys</td>
      <td data-stat="game_location"></td>
      <td data-stat="loser">New York Jets</td>
      <td data-stat="pts_win">30</td>
      <td data-stat="pts_lose">10</td>
    </tr>
    <tr>
      <th data-stat="week_num">3</th>
      <td data-stat="game_date">2023-09-24</td>
      <td data-stat="winner"></td>
      <td data-stat="loser"></td>
      <td data-stat="pts_win"></td>
      <td data-stat="pts_lose"></td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestParseSeasonResults(t *testing.T) {
	rows, err := parseSeasonResults([]byte(scheduleFixture), 2023)
	if err != nil {
		t.Fatal(err)
	}

	// Header repeats and unplayed games are dropped
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	row := rows[0]
	if row["Winner/tie"] != "Green Bay Packers" || row["Loser/tie"] != "Chicago Bears" {
		t.Errorf("wrong teams: %s / %s", row["Winner/tie"], row["Loser/tie"])
	}
	if row["Points_Winner"] != "38" || row["Points_Loser"] != "20" {
		t.Errorf("wrong scores: %s-%s", row["Points_Winner"], row["Points_Loser"])
	}
	if row["At"] != "@" {
		t.Errorf("away-winner marker should be carried through, got %q", row["At"])
	}
	if row["season"] != "2023" || row["Week"] != "1" {
		t.Errorf("wrong season or week: %s / %s", row["season"], row["Week"])
	}
	if row["Turnovers_Loser"] != "1" {
		t.Errorf("supplementary stats should be carried, got %q", row["Turnovers_Loser"])
	}

	// The emitted rows normalize directly
	cols := newColumnIndex(historyColumns)
	o, err := NormalizeRow(rows[1], cols)
	if err != nil {
		t.Fatal(err)
	}
	if o.Winner != "Dallas Cowboys" || o.WinnerScore != 30 {
		t.Errorf("scraped row should normalize cleanly, got %+v", o)
	}
}

func TestSeasonResultsAwayWinnerMarker(t *testing.T) {
	rows, err := parseSeasonResults([]byte(scheduleFixture), 2023)
	if err != nil {
		t.Fatal(err)
	}

	// Row 0 has the @ marker so the winner was the away side
	row := rows[0]
	if row["At"] != "@" {
		t.Fatalf("fixture should mark an away winner")
	}
}

// Standings pages early in the season carry blank stat cells, which must
// read as zero rather than dropping the team
func TestParseStandingsEarlySeasonBlanks(t *testing.T) {
	fixture := `<html><body>
<table id="AFC">
  <thead>
    <tr><th>Tm</th><th>W</th><th>L</th><th>PF</th><th>PA</th><th>Yds</th><th>TO</th></tr>
  </thead>
  <tbody>
    <tr><th>Buffalo Bills</th><td>0</td><td>0</td><td>21</td><td>17</td><td></td><td></td></tr>
  </tbody>
</table>
</body></html>`

	table, err := parseStandings([]byte(fixture), 2025)
	if err != nil {
		t.Fatal(err)
	}

	s, ok := table.Lookup("Buffalo Bills")
	if !ok {
		t.Fatal("team with blank cells should still be present")
	}
	if s.Turnovers != 0 || s.Yards != 0 {
		t.Errorf("blank cells should parse as zero, got %f / %f", s.Turnovers, s.Yards)
	}
	if s.PointDiff != 4 {
		t.Errorf("point diff should still derive, got %f", s.PointDiff)
	}

	// Same-season stats plug into the blend without special handling
	p := PredictMatchup("Buffalo Bills", "Miami Dolphins", NewRatings(), table, "")
	if p.PointDiffFactor != NeutralFactor || p.TurnoverFactor != NeutralFactor {
		t.Errorf("one missing side should keep the factors neutral, got %f / %f",
			p.PointDiffFactor, p.TurnoverFactor)
	}
}

func TestCleanTeamName(t *testing.T) {
	cases := map[string]string{
		"Buffalo Bills*":      "Buffalo Bills",
		"Miami Dolphins+":     "Miami Dolphins",
		"  Detroit Lions  ":   "Detroit Lions",
		"San Francisco 49ers": "San Francisco 49ers",
	}
	for in, want := range cases {
		if got := cleanTeamName(in); got != want {
			t.Errorf("cleanTeamName(%q) = %q, want %q", in, got, want)
		}
	}
}
