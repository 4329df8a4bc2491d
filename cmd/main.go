package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/richard-senior/gridiron/internal/logger"
	"github.com/richard-senior/gridiron/pkg/util/picks"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)
	logger.SetLogOutput('c')

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "build-history":
		err = runBuildHistory(os.Args[2:])
	case "update-week":
		err = runUpdateWeek(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: gridiron <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build-history [-years N]              rebuild the historical results file from past seasons")
	fmt.Println("  update-week                           append the latest completed week to the history")
	fmt.Println("  predict [-year Y] [-week W] [-hist P] rate teams from history and predict the coming slate")
}

// runBuildHistory rebuilds the historical results CSV from scratch
func runBuildHistory(args []string) error {
	fs := flag.NewFlagSet("build-history", flag.ExitOnError)
	years := fs.Int("years", picks.Config.HistoryYears, "number of past seasons to fetch")
	hist := fs.String("hist", picks.Config.HistoricalCSVPath, "path of the history file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return picks.ScrapeHistory(*hist, *years)
}

// runUpdateWeek appends any newly completed games to the history file
func runUpdateWeek(args []string) error {
	fs := flag.NewFlagSet("update-week", flag.ExitOnError)
	hist := fs.String("hist", "", "path of the history file to update")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *hist
	if path == "" {
		var err error
		path, err = picks.FindHistoricalCSV()
		if err != nil {
			return err
		}
	}

	year := time.Now().Year()
	week, err := picks.CurrentWeek(year)
	if err != nil {
		logger.Warn("Could not determine current week, assuming week 1", err)
		week = 1
	}

	// The scoreboard is tried first; the reference site only fills in
	// when it has no finished games for the week
	var rows []picks.GameRow
	games, err := picks.FetchWeek(year, week)
	if err != nil {
		logger.Warn("Scoreboard unavailable, falling back to reference site", err)
	} else {
		rows = picks.ResultRows(year, week, games)
	}
	if len(rows) == 0 {
		rows, err = picks.WeekFromReference(year, week)
		if err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		logger.Info("No completed games to append for week", week)
		return nil
	}

	added, err := picks.AppendWeek(path, rows)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d game(s) from week %d to %s\n", added, week, path)
	return nil
}

// runPredict rates every team from the historical results and predicts
// the upcoming slate, printing the safest picks first
func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	year := fs.Int("year", time.Now().Year(), "season to predict")
	week := fs.Int("week", 0, "week to predict, 0 means the current week")
	hist := fs.String("hist", "", "path of the historical results file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *hist
	if path == "" {
		var err error
		path, err = picks.FindHistoricalCSV()
		if err != nil {
			return err
		}
	}

	w := *week
	if w == 0 {
		var err error
		w, err = picks.CurrentWeek(*year)
		if err != nil {
			logger.Warn("Could not determine current week, assuming week 1", err)
			w = 1
		}
	}

	games, err := picks.FetchWeek(*year, w)
	if err != nil {
		return fmt.Errorf("failed to fetch week %d: %w", w, err)
	}
	games, w = picks.AdvanceIfComplete(*year, w, games)
	if len(games) == 0 {
		return fmt.Errorf("no games scheduled for week %d", w)
	}

	ratings, err := picks.BuildRatings(path)
	if err != nil {
		return err
	}

	// The predicted season's statistics feed the supporting factors.
	// Early in the year blank stat columns parse to zero and missing
	// tables leave the factors neutral.
	stats, err := picks.GetStatsDatasourceInstance().SeasonStatsTable(*year)
	if err != nil {
		logger.Warn("No season statistics available, using ratings only", err)
		stats = nil
	}

	var predictions []*picks.Prediction
	fmt.Printf("\nWeek %d predictions (%d)\n\n", w, *year)
	for _, game := range games {
		p := picks.PredictMatchup(game.HomeTeam, game.AwayTeam, ratings, stats, game.HomeTeam)
		p.Season = *year
		p.Week = w
		predictions = append(predictions, p)
		fmt.Printf("  %-28s @ %-28s  home %5.1f%%  away %5.1f%%\n",
			game.AwayTeam, game.HomeTeam, p.FinalProbHome*100, (1-p.FinalProbHome)*100)
	}

	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].FavoriteProb() > predictions[j].FavoriteProb()
	})

	fmt.Printf("\nSafest picks\n\n")
	for i, p := range predictions {
		fmt.Printf("  %2d. %-28s %5.1f%%\n", i+1, p.Favorite(), p.FavoriteProb()*100)
	}

	if err := persistRun(predictions, ratings, stats, *year); err != nil {
		logger.Warn("Failed to persist prediction run", err)
	}

	return nil
}

// persistRun records the ratings, statistics and predictions of a run
func persistRun(predictions []*picks.Prediction, ratings *picks.Ratings, stats *picks.StatsTable, year int) error {
	if err := picks.CreateTables(); err != nil {
		return err
	}

	if err := picks.SaveRatings(ratings, year); err != nil {
		return err
	}

	if stats != nil {
		if err := picks.SaveSeasonStats(stats); err != nil {
			return err
		}
	}

	objects := make([]picks.Persistable, 0, len(predictions))
	for _, p := range predictions {
		objects = append(objects, p)
	}
	return picks.BulkSave(objects)
}
