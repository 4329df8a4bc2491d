package picks

import (
	"fmt"
	"os"
	"path/filepath"
)

// PicksConfig contains all configurable parameters that influence prediction outcomes
// This centralizes all magic numbers and constants for easy adjustment
type PicksConfig struct {
	// Filesystem layout
	AssetsPath        string // The base directory of assets relating to gridiron
	CachePath         string // The location in which cached downloaded pages are stored
	DbPath            string // The location of the gridiron sqlite database
	HistoricalCSVPath string // Default location of the historical results CSV

	// === ELO PARAMETERS ===

	StartElo       float64 // Initial rating for a team with no history (default: 1500)
	KFactor        float64 // Sensitivity of a rating to a single result (default: 20)
	HomeFieldBonus float64 // Rating points added to the home side at prediction time only (default: 65, roughly two NFL points)

	// === BLEND PARAMETERS ===

	// The three weights must sum to 1.0. They are applied as-is even when a
	// stats component has fallen back to its neutral 0.5 value, so matchups
	// with missing stats are pulled toward 0.5 rather than becoming pure
	// rating predictions. That matches the original model and is intentional.
	EloWeight       float64 // Weight of the rating expectation component (default: 0.6)
	PointDiffWeight float64 // Weight of the season point-differential component (default: 0.25)
	TurnoverWeight  float64 // Weight of the turnover component (default: 0.15)

	PointDiffScale float64 // Divisor mapping point-diff gaps onto [0,1] around 0.5 (default: 200)
	TurnoverScale  float64 // Divisor mapping turnover gaps onto [0,1] around 0.5 (default: 50)

	// === EXTERNAL SOURCES ===

	ScoreboardURL string // ESPN NFL scoreboard API endpoint
	ReferenceURL  string // Pro-Football-Reference base URL
	SeasonType    int    // ESPN season type, 2 = regular season

	// === SEASON / WEEK BOUNDS ===

	MinWeek      int // Lowest plausible NFL week number (default: 1)
	MaxWeek      int // Highest plausible NFL week number incl. playoffs (default: 23)
	HistoryYears int // How many past seasons the history builder fetches (default: 5)
}

// DefaultPicksConfig returns the default configuration with all standard values
func DefaultPicksConfig() *PicksConfig {
	assetsPath := filepath.Join(os.Getenv("HOME"), ".gridiron") + "/"
	config := &PicksConfig{
		AssetsPath:        assetsPath,
		CachePath:         assetsPath + "cache/",
		DbPath:            assetsPath + "gridiron.db",
		HistoricalCSVPath: "data/historical_results.csv",

		// === ELO PARAMETERS ===
		StartElo:       1500.0,
		KFactor:        20.0,
		HomeFieldBonus: 65.0,

		// === BLEND PARAMETERS ===
		EloWeight:       0.6,
		PointDiffWeight: 0.25,
		TurnoverWeight:  0.15,
		PointDiffScale:  200.0,
		TurnoverScale:   50.0,

		// === EXTERNAL SOURCES ===
		ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
		ReferenceURL:  "https://www.pro-football-reference.com",
		SeasonType:    2,

		// === SEASON / WEEK BOUNDS ===
		MinWeek:      1,
		MaxWeek:      23,
		HistoryYears: 5,
	}
	return config
}

// Global configuration instance
var Config *PicksConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultPicksConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *PicksConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// GetStartElo returns the base rating given to an unseen team
func GetStartElo() float64 {
	return Config.StartElo
}

// GetKFactor returns the rating update sensitivity
func GetKFactor() float64 {
	return Config.KFactor
}

// GetHomeFieldBonus returns the prediction-time home rating bonus
func GetHomeFieldBonus() float64 {
	return Config.HomeFieldBonus
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PicksConfig) error {
	if config.StartElo <= 0 {
		return fmt.Errorf("StartElo must be positive, got: %f", config.StartElo)
	}

	if config.KFactor <= 0 {
		return fmt.Errorf("KFactor must be positive, got: %f", config.KFactor)
	}

	if config.HomeFieldBonus < 0 {
		return fmt.Errorf("HomeFieldBonus must not be negative, got: %f", config.HomeFieldBonus)
	}

	weightSum := config.EloWeight + config.PointDiffWeight + config.TurnoverWeight
	if weightSum < 0.999999 || weightSum > 1.000001 {
		return fmt.Errorf("blend weights must sum to 1.0, got: %f", weightSum)
	}

	if config.PointDiffScale <= 0 || config.TurnoverScale <= 0 {
		return fmt.Errorf("blend scale divisors must be positive, got: %f and %f", config.PointDiffScale, config.TurnoverScale)
	}

	if config.MinWeek < 1 || config.MaxWeek < config.MinWeek {
		return fmt.Errorf("week bounds are invalid: %d..%d", config.MinWeek, config.MaxWeek)
	}

	if config.HistoryYears < 1 {
		return fmt.Errorf("HistoryYears must be at least 1, got: %d", config.HistoryYears)
	}

	return nil
}
