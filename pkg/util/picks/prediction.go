package picks

import "time"

// NeutralFactor is the probability contribution used when a supporting
// statistic is unavailable for either team in a matchup.
const NeutralFactor = 0.5

/////////////////////////////////////////////////////////////////////
// Prediction
/////////////////////////////////////////////////////////////////////

// Prediction holds the model output for a single matchup. All probabilities
// are expressed from the home team's point of view.
type Prediction struct {
	Season          int     `column:"season" dbtype:"INTEGER" primary:"true" index:"true"`
	Week            int     `column:"week" dbtype:"INTEGER" primary:"true" index:"true"`
	HomeTeam        string  `column:"home_team" dbtype:"TEXT" primary:"true"`
	AwayTeam        string  `column:"away_team" dbtype:"TEXT" primary:"true"`
	EloProbHome     float64 `column:"elo_prob_home" dbtype:"REAL"`
	PointDiffFactor float64 `column:"point_diff_factor" dbtype:"REAL"`
	TurnoverFactor  float64 `column:"turnover_factor" dbtype:"REAL"`
	FinalProbHome   float64 `column:"final_prob_home" dbtype:"REAL"`
	CreatedAt       string  `column:"created_at" dbtype:"TEXT"`
	UpdatedAt       string  `column:"updated_at" dbtype:"TEXT"`
}

func (p *Prediction) GetTableName() string {
	return "predictions"
}

func (p *Prediction) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"season":    p.Season,
		"week":      p.Week,
		"home_team": p.HomeTeam,
		"away_team": p.AwayTeam,
	}
}

func (p *Prediction) BeforeSave() error {
	now := time.Now().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

func (p *Prediction) AfterSave() error {
	return nil
}

// FavoriteProb returns the probability of the more likely winner
func (p *Prediction) FavoriteProb() float64 {
	if p.FinalProbHome >= 0.5 {
		return p.FinalProbHome
	}
	return 1.0 - p.FinalProbHome
}

// Favorite returns the team the model considers more likely to win.
// A dead-even matchup favours the home team.
func (p *Prediction) Favorite() string {
	if p.FinalProbHome >= 0.5 {
		return p.HomeTeam
	}
	return p.AwayTeam
}

/////////////////////////////////////////////////////////////////////
// Model
/////////////////////////////////////////////////////////////////////

// PredictMatchup produces a win probability for homeTeam against awayTeam.
// The home field bonus is added to whichever side matches designatedHome,
// or to neither on a neutral field (empty string). Ratings in the store are
// never modified. stats may be nil, in which case the point difference and
// turnover factors stay neutral.
func PredictMatchup(homeTeam, awayTeam string, ratings *Ratings, stats *StatsTable, designatedHome string) *Prediction {
	eloHome := ratings.Get(homeTeam)
	eloAway := ratings.Get(awayTeam)

	switch designatedHome {
	case homeTeam:
		eloHome += GetHomeFieldBonus()
	case awayTeam:
		eloAway += GetHomeFieldBonus()
	}

	eloProb := ExpectedScore(eloHome, eloAway)

	pointDiffFactor := NeutralFactor
	turnoverFactor := NeutralFactor

	if stats != nil {
		hs, hok := stats.Lookup(homeTeam)
		as, aok := stats.Lookup(awayTeam)
		// Either side missing keeps both factors neutral
		if hok && aok {
			pointDiffFactor = (hs.PointDiff-as.PointDiff)/Config.PointDiffScale + 0.5
			turnoverFactor = ((-hs.Turnovers)-(-as.Turnovers))/Config.TurnoverScale + 0.5
		}
	}

	final := Config.EloWeight*eloProb +
		Config.PointDiffWeight*pointDiffFactor +
		Config.TurnoverWeight*turnoverFactor

	return &Prediction{
		HomeTeam:        homeTeam,
		AwayTeam:        awayTeam,
		EloProbHome:     eloProb,
		PointDiffFactor: pointDiffFactor,
		TurnoverFactor:  turnoverFactor,
		FinalProbHome:   clipProbability(final),
	}
}

// clipProbability clamps extreme blended values into the valid range
func clipProbability(p float64) float64 {
	if p < 0.0 {
		return 0.0
	}
	if p > 1.0 {
		return 1.0
	}
	return p
}
