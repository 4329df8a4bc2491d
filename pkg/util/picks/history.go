package picks

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/richard-senior/gridiron/internal/logger"
)

/////////////////////////////////////////////////////////////////////
// Historical results file
/////////////////////////////////////////////////////////////////////

// historyColumns is the column order of the historical results CSV
var historyColumns = []string{
	"season",
	"Week",
	"Date",
	"At",
	"Winner/tie",
	"Loser/tie",
	"Points_Winner",
	"Points_Loser",
	"Yards_Winner",
	"Turnovers_Winner",
	"Yards_Loser",
	"Turnovers_Loser",
}

// FindHistoricalCSV locates the historical results file, trying the
// configured path, the working directory and the executable's directory
func FindHistoricalCSV() (string, error) {
	candidates := []string{
		Config.HistoricalCSVPath,
		"data/historical_results.csv",
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "data", "historical_results.csv"))
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no historical results file found, run build-history first")
}

// WriteHistory writes the given result rows to a fresh CSV file,
// creating the parent directory if necessary
func WriteHistory(path string, rows []GameRow) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(historyColumns); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, len(historyColumns))
		for i, col := range historyColumns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write history row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush history file: %w", err)
	}

	logger.Info("Wrote historical results", path, len(rows))
	return nil
}

// rowKey identifies a game within the history for deduplication
func rowKey(season, week, winner, loser string) string {
	return strings.ToLower(strings.Join([]string{season, week, winner, loser}, "|"))
}

// AppendWeek appends result rows to an existing history file, skipping
// games already present. Returns the number of rows actually added.
func AppendWeek(path string, rows []GameRow) (int, error) {
	existing, err := readHistoryKeys(path)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open history file for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	added := 0
	for _, row := range rows {
		key := rowKey(row["season"], row["Week"], row["Winner/tie"], row["Loser/tie"])
		if existing[key] {
			continue
		}

		record := make([]string, len(historyColumns))
		for i, col := range historyColumns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return added, fmt.Errorf("failed to append history row: %w", err)
		}
		existing[key] = true
		added++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return added, fmt.Errorf("failed to flush history file: %w", err)
	}

	if added > 0 {
		logger.Info("Appended results to history", path, added)
	} else {
		logger.Info("History already up to date", path)
	}
	return added, nil
}

// readHistoryKeys loads the dedup keys of every game already in the file
func readHistoryKeys(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	keys := make(map[string]bool)
	if len(records) < 2 {
		return keys, nil
	}

	cols := make(map[string]int)
	for i, h := range records[0] {
		cols[strings.ToLower(cleanHeader(h))] = i
	}

	field := func(record []string, name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	for _, record := range records[1:] {
		keys[rowKey(
			field(record, "season"),
			field(record, "Week"),
			field(record, "Winner/tie"),
			field(record, "Loser/tie"),
		)] = true
	}

	return keys, nil
}

// ScrapeHistory rebuilds the history file from the last several seasons
// of results, newest season last
func ScrapeHistory(path string, years int) error {
	if years < 1 {
		years = Config.HistoryYears
	}

	ds := GetStatsDatasourceInstance()
	currentYear := time.Now().Year()

	var all []GameRow
	for year := currentYear - years; year <= currentYear; year++ {
		rows, err := ds.SeasonResults(year)
		if err != nil {
			// The season in progress legitimately has no games yet in September
			logger.Warn("Skipping season with no results", year, err)
			continue
		}
		all = append(all, rows...)
	}

	if len(all) == 0 {
		return fmt.Errorf("no results scraped for any season")
	}

	return WriteHistory(path, all)
}
