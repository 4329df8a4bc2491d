package picks

import (
	"testing"
)

const scoreboardFixture = `{
  "week": {"number": 4},
  "events": [
    {
      "date": "2025-09-28T17:00Z",
      "competitions": [{
        "competitors": [
          {"homeAway": "away", "score": "17", "team": {"displayName": "Dallas Cowboys"}},
          {"homeAway": "home", "score": "24", "team": {"displayName": "Philadelphia Eagles"}}
        ],
        "status": {"type": {"description": "Final"}}
      }]
    },
    {
      "date": "2025-09-28T20:25Z",
      "competitions": [{
        "competitors": [
          {"score": 0, "team": {"displayName": "Seattle Seahawks"}},
          {"score": 0, "team": {"displayName": "Arizona Cardinals"}}
        ],
        "status": {"type": {"description": "Scheduled"}}
      }]
    },
    {
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "team": {}}
        ]
      }]
    }
  ]
}`

func TestParseScoreboard(t *testing.T) {
	games, err := parseScoreboard([]byte(scoreboardFixture))
	if err != nil {
		t.Fatal(err)
	}

	// The malformed third event is skipped, not fatal
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	g := games[0]
	if g.HomeTeam != "Philadelphia Eagles" || g.AwayTeam != "Dallas Cowboys" {
		t.Errorf("homeAway markers not honoured: %s vs %s", g.HomeTeam, g.AwayTeam)
	}
	if g.HomeScore != 24 || g.AwayScore != 17 {
		t.Errorf("wrong scores: %d-%d", g.HomeScore, g.AwayScore)
	}
	if !g.IsFinal() {
		t.Error("a Final game should report as final")
	}

	// Without markers the first listed competitor is home
	g = games[1]
	if g.HomeTeam != "Seattle Seahawks" || g.AwayTeam != "Arizona Cardinals" {
		t.Errorf("positional fallback not honoured: %s vs %s", g.HomeTeam, g.AwayTeam)
	}
	if g.IsFinal() {
		t.Error("a scheduled game should not report as final")
	}
}

func TestParseScoreboardMalformed(t *testing.T) {
	if _, err := parseScoreboard([]byte("not json")); err == nil {
		t.Error("expected an error for a non-JSON body")
	}
	if _, err := parseScoreboard([]byte(`{"week": {"number": 4}}`)); err == nil {
		t.Error("expected an error when the events array is missing")
	}
}

func TestAllFinal(t *testing.T) {
	if allFinal(nil) {
		t.Error("an empty slate is never complete")
	}

	games := []*ScheduledGame{
		{Status: "Final"},
		{Status: "Final/OT"},
	}
	if !allFinal(games) {
		t.Error("expected a fully final slate")
	}

	games = append(games, &ScheduledGame{Status: "Scheduled"})
	if allFinal(games) {
		t.Error("one scheduled game should make the slate incomplete")
	}
}

func TestResultRowsFromSlate(t *testing.T) {
	games := []*ScheduledGame{
		{Date: "2025-09-28", HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys",
			HomeScore: 24, AwayScore: 17, Status: "Final"},
		{Date: "2025-09-28", HomeTeam: "Chicago Bears", AwayTeam: "Green Bay Packers",
			HomeScore: 20, AwayScore: 38, Status: "Final"},
		{Date: "2025-09-28", HomeTeam: "New York Giants", AwayTeam: "Washington Commanders",
			HomeScore: 27, AwayScore: 27, Status: "Final/OT"},
		{Date: "2025-09-28", HomeTeam: "Seattle Seahawks", AwayTeam: "Arizona Cardinals",
			HomeScore: -1, AwayScore: -1, Status: "Scheduled"},
	}

	rows := ResultRows(2025, 4, games)
	if len(rows) != 3 {
		t.Fatalf("expected 3 result rows, got %d", len(rows))
	}

	// Home win: no away marker, home side in the winner slot
	row := rows[0]
	if row["Winner/tie"] != "Philadelphia Eagles" || row["At"] != "" {
		t.Errorf("home win mis-converted: %v", row)
	}
	if row["season"] != "2025" || row["Week"] != "4" {
		t.Errorf("wrong season or week: %s / %s", row["season"], row["Week"])
	}

	// Away win carries the marker
	row = rows[1]
	if row["Winner/tie"] != "Green Bay Packers" || row["At"] != "@" {
		t.Errorf("away win mis-converted: %v", row)
	}
	if row["Points_Winner"] != "38" || row["Points_Loser"] != "20" {
		t.Errorf("wrong scores: %s-%s", row["Points_Winner"], row["Points_Loser"])
	}

	// A tie keeps the home side in the winner slot
	row = rows[2]
	if row["Winner/tie"] != "New York Giants" || row["Points_Winner"] != "27" {
		t.Errorf("tie mis-converted: %v", row)
	}

	// The converted rows feed straight into the normalizer
	cols := newColumnIndex(historyColumns)
	for _, row := range rows {
		if _, err := NormalizeRow(row, cols); err != nil {
			t.Errorf("converted row should normalize, got %v", err)
		}
	}
}

func TestWeekRowsFilter(t *testing.T) {
	rows := []GameRow{
		{"Week": "1", "Winner/tie": "A"},
		{"Week": "2", "Winner/tie": "B"},
		{"Week": "2", "Winner/tie": "C"},
		{"Week": "12", "Winner/tie": "D"},
	}

	got := weekRows(rows, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for week 2, got %d", len(got))
	}
	if got[0]["Winner/tie"] != "B" || got[1]["Winner/tie"] != "C" {
		t.Errorf("wrong rows selected: %v", got)
	}

	// Week 1 must not match the week 12 row by prefix
	if got := weekRows(rows, 1); len(got) != 1 {
		t.Errorf("expected exactly 1 row for week 1, got %d", len(got))
	}
}

func TestIsFinalVariants(t *testing.T) {
	cases := map[string]bool{
		"Final":     true,
		"FINAL":     true,
		"Final/OT":  true,
		" final ":   true,
		"Scheduled": false,
		"Halftime":  false,
		"":          false,
	}
	for status, want := range cases {
		g := &ScheduledGame{Status: status}
		if g.IsFinal() != want {
			t.Errorf("IsFinal(%q) should be %v", status, want)
		}
	}
}
