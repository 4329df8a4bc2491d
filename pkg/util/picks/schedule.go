package picks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/richard-senior/gridiron/internal/logger"
	"github.com/richard-senior/gridiron/pkg/transport"
	"github.com/richard-senior/gridiron/pkg/util"
)

/////////////////////////////////////////////////////////////////////
// Weekly schedule
/////////////////////////////////////////////////////////////////////

// ScheduledGame is one matchup on a weekly slate. Scores are -1 until
// the game has been played.
type ScheduledGame struct {
	Date      string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
	Source    string
}

// IsFinal reports whether the game has finished
func (g *ScheduledGame) IsFinal() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(g.Status)), "final")
}

// CurrentWeek asks the scoreboard API which week the season is in.
// Returns an error if the response has no plausible week number.
func CurrentWeek(year int) (int, error) {
	url := fmt.Sprintf("%s?dates=%d&seasontype=%d", Config.ScoreboardURL, year, Config.SeasonType)
	body, err := transport.GetJson(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("failed to parse scoreboard response: %w", err)
	}

	week, ok := payload["week"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("scoreboard response has no week object")
	}

	number, err := util.GetAsInteger(week["number"])
	if err != nil {
		return 0, fmt.Errorf("scoreboard week number is not numeric: %w", err)
	}

	if number < Config.MinWeek || number > Config.MaxWeek {
		return 0, fmt.Errorf("scoreboard week number is implausible: %d", number)
	}

	return number, nil
}

// FetchWeek returns the slate for the given week of the given season
// from the scoreboard API
func FetchWeek(year int, week int) ([]*ScheduledGame, error) {
	url := fmt.Sprintf("%s?dates=%d&seasontype=%d&week=%d", Config.ScoreboardURL, year, Config.SeasonType, week)
	body, err := transport.GetJson(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}
	return parseScoreboard(body)
}

// parseScoreboard extracts the slate from a scoreboard API response body
func parseScoreboard(body []byte) ([]*ScheduledGame, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse scoreboard response: %w", err)
	}

	events, ok := payload["events"].([]any)
	if !ok {
		return nil, fmt.Errorf("scoreboard response has no events array")
	}

	var games []*ScheduledGame
	for _, e := range events {
		event, ok := e.(map[string]any)
		if !ok {
			continue
		}

		game, err := parseEvent(event)
		if err != nil {
			logger.Warn("Skipping unparseable scoreboard event", err)
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// parseEvent converts a single scoreboard event into a ScheduledGame
func parseEvent(event map[string]any) (*ScheduledGame, error) {
	competitions, ok := event["competitions"].([]any)
	if !ok || len(competitions) == 0 {
		return nil, fmt.Errorf("event has no competitions")
	}
	competition, ok := competitions[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("competition is not an object")
	}

	competitors, ok := competition["competitors"].([]any)
	if !ok || len(competitors) < 2 {
		return nil, fmt.Errorf("competition has fewer than two competitors")
	}

	game := &ScheduledGame{
		HomeScore: -1,
		AwayScore: -1,
		Source:    "scoreboard",
	}

	if date, err := util.GetAsString(event["date"]); err == nil {
		game.Date = date
	}

	for i, c := range competitors {
		competitor, ok := c.(map[string]any)
		if !ok {
			continue
		}

		name := competitorName(competitor)
		if name == "" {
			return nil, fmt.Errorf("competitor has no team name")
		}

		score := -1
		if s, err := util.GetAsInteger(competitor["score"]); err == nil {
			score = s
		}

		// The API marks sides explicitly, but the first listed competitor
		// is home when the marker is absent
		homeAway, _ := util.GetAsString(competitor["homeAway"])
		isHome := homeAway == "home" || (homeAway == "" && i == 0)

		if isHome {
			game.HomeTeam = name
			game.HomeScore = score
		} else {
			game.AwayTeam = name
			game.AwayScore = score
		}
	}

	if game.HomeTeam == "" || game.AwayTeam == "" {
		return nil, fmt.Errorf("event is missing a home or away side")
	}

	if status, ok := competition["status"].(map[string]any); ok {
		if statusType, ok := status["type"].(map[string]any); ok {
			if desc, err := util.GetAsString(statusType["description"]); err == nil {
				game.Status = desc
			}
		}
	}

	return game, nil
}

// competitorName digs the display name out of a competitor object
func competitorName(competitor map[string]any) string {
	team, ok := competitor["team"].(map[string]any)
	if !ok {
		return ""
	}
	if name, err := util.GetAsString(team["displayName"]); err == nil && name != "" {
		return name
	}
	if name, err := util.GetAsString(team["name"]); err == nil {
		return name
	}
	return ""
}

// allFinal reports whether every game on the slate has finished
func allFinal(games []*ScheduledGame) bool {
	if len(games) == 0 {
		return false
	}
	for _, g := range games {
		if !g.IsFinal() {
			return false
		}
	}
	return true
}

// AdvanceIfComplete peeks at the following week when every game in the
// given slate has gone final, so predictions always target games that
// have not been played yet. Returns the slate and the week it belongs to.
func AdvanceIfComplete(year int, week int, games []*ScheduledGame) ([]*ScheduledGame, int) {
	if !allFinal(games) || week >= Config.MaxWeek {
		return games, week
	}

	logger.Info("All games final, advancing to next week", week+1)
	next, err := FetchWeek(year, week+1)
	if err != nil || len(next) == 0 {
		logger.Warn("Could not fetch next week, staying on", week)
		return games, week
	}
	return next, week + 1
}

// WeekFromReference is a fallback result source for when the scoreboard
// API has nothing. It filters the season's scraped results down to one week.
func WeekFromReference(year int, week int) ([]GameRow, error) {
	rows, err := GetStatsDatasourceInstance().SeasonResults(year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season results: %w", err)
	}
	return weekRows(rows, week), nil
}

// weekRows filters result rows down to a single week
func weekRows(rows []GameRow, week int) []GameRow {
	target := strconv.Itoa(week)
	var out []GameRow
	for _, row := range rows {
		if row["Week"] == target {
			out = append(out, row)
		}
	}
	return out
}

// ResultRows converts the finished games of a slate into winner/loser
// result rows matching the history file schema. Unfinished games and
// games without scores are skipped. An away win carries the @ marker;
// a tie keeps the home side in the winner slot.
func ResultRows(season int, week int, games []*ScheduledGame) []GameRow {
	var rows []GameRow
	for _, g := range games {
		if !g.IsFinal() || g.HomeScore < 0 || g.AwayScore < 0 {
			continue
		}

		row := GameRow{
			"season": strconv.Itoa(season),
			"Week":   strconv.Itoa(week),
			"Date":   g.Date,
		}
		if g.AwayScore > g.HomeScore {
			row["At"] = "@"
			row["Winner/tie"] = g.AwayTeam
			row["Loser/tie"] = g.HomeTeam
			row["Points_Winner"] = strconv.Itoa(g.AwayScore)
			row["Points_Loser"] = strconv.Itoa(g.HomeScore)
		} else {
			row["At"] = ""
			row["Winner/tie"] = g.HomeTeam
			row["Loser/tie"] = g.AwayTeam
			row["Points_Winner"] = strconv.Itoa(g.HomeScore)
			row["Points_Loser"] = strconv.Itoa(g.AwayScore)
		}
		rows = append(rows, row)
	}
	return rows
}
