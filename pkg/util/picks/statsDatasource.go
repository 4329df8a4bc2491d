package picks

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/gridiron/internal/logger"
	"github.com/richard-senior/gridiron/pkg/transport"
	"github.com/richard-senior/gridiron/pkg/util"
)

/////////////////////////////////////////////////////////////////////
// Reference site datasource
/////////////////////////////////////////////////////////////////////

// StatsDatasource scrapes season statistics and results from the
// reference site, caching fetched pages on disk
type StatsDatasource struct {
	BaseURL string
}

var (
	statsDatasourceInstance *StatsDatasource
	statsDatasourceOnce     sync.Once
)

// GetStatsDatasourceInstance returns the singleton instance of StatsDatasource
func GetStatsDatasourceInstance() *StatsDatasource {
	statsDatasourceOnce.Do(func() {
		statsDatasourceInstance = &StatsDatasource{
			BaseURL: Config.ReferenceURL,
		}
	})
	return statsDatasourceInstance
}

// fetchPage returns the HTML for the given path, from cache when present.
// Pages for the season in progress are always refetched since their
// contents change weekly.
func (ds *StatsDatasource) fetchPage(path string, cacheName string, year int) ([]byte, error) {
	if err := os.MkdirAll(Config.CachePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cacheFilename := Config.CachePath + cacheName
	current := year >= time.Now().Year()

	if !current {
		if data, err := os.ReadFile(cacheFilename); err == nil {
			logger.Debug("Loaded page from cache", cacheFilename)
			return data, nil
		}
	} else {
		// A stale copy of the current season is worse than no copy
		os.Remove(cacheFilename)
	}

	url := ds.BaseURL + path
	logger.Info("Fetching reference page", url)
	data, err := transport.GetHtml(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if err := os.WriteFile(cacheFilename, data, 0644); err != nil {
		logger.Warn("Failed to write cache file", cacheFilename, err)
	}

	return data, nil
}

// cleanTeamName strips the playoff markers the reference site appends
// to team names in its standings tables
func cleanTeamName(name string) string {
	return strings.TrimRight(strings.TrimSpace(name), "*+ ")
}

// SeasonStatsTable scrapes per-team season statistics for the given year.
// Standings tables for both conferences are merged into one lookup.
func (ds *StatsDatasource) SeasonStatsTable(year int) (*StatsTable, error) {
	path := fmt.Sprintf("/years/%d/", year)
	cacheName := fmt.Sprintf("standings-%d.html", year)
	data, err := ds.fetchPage(path, cacheName, year)
	if err != nil {
		return nil, err
	}
	return parseStandings(data, year)
}

// parseStandings builds the stats lookup from a standings page body
func parseStandings(data []byte, year int) (*StatsTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse standings page: %w", err)
	}

	table := NewStatsTable()

	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		cols := tableHeaderIndex(t)
		// Only standings-shaped tables have a team and points-for column
		if _, ok := cols["tm"]; !ok {
			return
		}
		if _, ok := cols["pf"]; !ok {
			return
		}

		t.Find("tbody tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("th, td")
			team := cleanTeamName(cellText(cells, cols["tm"]))
			if team == "" {
				return
			}

			stats := &SeasonStats{
				Team:          team,
				Season:        year,
				PointsFor:     cellFloat(cells, cols, "pf"),
				PointsAgainst: cellFloat(cells, cols, "pa"),
				Turnovers:     cellFloat(cells, cols, "to"),
				Yards:         cellFloat(cells, cols, "yds"),
			}
			stats.Derive()
			table.Put(stats)
		})
	})

	if table.Len() == 0 {
		return nil, fmt.Errorf("no team statistics found for %d", year)
	}

	logger.Info("Scraped season statistics", year, table.Len())
	return table, nil
}

// tableHeaderIndex maps lower-cased header names to their column position
func tableHeaderIndex(t *goquery.Selection) map[string]int {
	cols := make(map[string]int)
	// The last header row carries the column names when the table
	// has a grouped over-header
	headerRows := t.Find("thead tr")
	if headerRows.Length() == 0 {
		return cols
	}
	headerRows.Last().Find("th, td").Each(func(i int, h *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(h.Text()))
		if name != "" {
			if _, seen := cols[name]; !seen {
				cols[name] = i
			}
		}
	})
	return cols
}

// cellText returns the trimmed text of the cell at the given position
func cellText(cells *goquery.Selection, index int) string {
	if index < 0 || index >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(index).Text())
}

// cellFloat returns the named cell as a float, or zero when the column
// is absent or not numeric
func cellFloat(cells *goquery.Selection, cols map[string]int, name string) float64 {
	index, ok := cols[name]
	if !ok {
		return 0
	}
	v, err := util.GetAsFloat(cellText(cells, index))
	if err != nil {
		return 0
	}
	return v
}

// SeasonResults scrapes the completed games of a season from the
// schedule page, returning rows in the winner and loser column layout
func (ds *StatsDatasource) SeasonResults(year int) ([]GameRow, error) {
	path := fmt.Sprintf("/years/%d/games.htm", year)
	cacheName := fmt.Sprintf("games-%d.html", year)
	data, err := ds.fetchPage(path, cacheName, year)
	if err != nil {
		return nil, err
	}
	return parseSeasonResults(data, year)
}

// parseSeasonResults extracts completed games from a schedule page body
func parseSeasonResults(data []byte, year int) ([]GameRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}

	var rows []GameRow
	doc.Find("table#games tbody tr").Each(func(i int, tr *goquery.Selection) {
		row := parseScheduleRow(tr, year)
		if row != nil {
			rows = append(rows, row)
		}
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no completed games found for %d", year)
	}

	logger.Info("Scraped season results", year, len(rows))
	return rows, nil
}

// parseScheduleRow converts one schedule table row into a result row,
// returning nil for header repeats and games that have not been played
func parseScheduleRow(tr *goquery.Selection, year int) GameRow {
	stat := func(name string) string {
		return strings.TrimSpace(tr.Find(fmt.Sprintf("[data-stat=%q]", name)).First().Text())
	}

	week := stat("week_num")
	if _, err := strconv.Atoi(week); err != nil {
		// Repeated header rows and playoff round labels land here
		return nil
	}

	winner := cleanTeamName(stat("winner"))
	loser := cleanTeamName(stat("loser"))
	ptsWin := stat("pts_win")
	ptsLose := stat("pts_lose")
	if winner == "" || loser == "" {
		return nil
	}
	if _, err := strconv.Atoi(ptsWin); err != nil {
		return nil
	}
	if _, err := strconv.Atoi(ptsLose); err != nil {
		return nil
	}

	return GameRow{
		"season":           fmt.Sprintf("%d", year),
		"Week":             week,
		"Date":             stat("game_date"),
		"At":               stat("game_location"),
		"Winner/tie":       winner,
		"Loser/tie":        loser,
		"Points_Winner":    ptsWin,
		"Points_Loser":     ptsLose,
		"Yards_Winner":     stat("yards_win"),
		"Turnovers_Winner": stat("to_win"),
		"Yards_Loser":      stat("yards_lose"),
		"Turnovers_Loser":  stat("to_lose"),
	}
}
