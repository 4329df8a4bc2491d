package picks

import "time"

// TeamRating is the persisted form of a team's Elo rating for a season
type TeamRating struct {
	Team      string  `column:"team" dbtype:"TEXT" primary:"true"`
	Season    int     `column:"season" dbtype:"INTEGER" primary:"true" index:"true"`
	Elo       float64 `column:"elo" dbtype:"REAL"`
	CreatedAt string  `column:"created_at" dbtype:"TEXT"`
	UpdatedAt string  `column:"updated_at" dbtype:"TEXT"`
}

func (r *TeamRating) GetTableName() string {
	return "team_ratings"
}

func (r *TeamRating) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"team":   r.Team,
		"season": r.Season,
	}
}

func (r *TeamRating) BeforeSave() error {
	now := time.Now().Format(time.RFC3339)
	if r.CreatedAt == "" {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	return nil
}

func (r *TeamRating) AfterSave() error {
	return nil
}

// SaveRatings persists every rating in the store against the given season
func SaveRatings(ratings *Ratings, season int) error {
	teams := ratings.Teams()
	objects := make([]Persistable, 0, len(teams))
	for _, team := range teams {
		objects = append(objects, &TeamRating{
			Team:   team,
			Season: season,
			Elo:    ratings.Get(team),
		})
	}
	return BulkSave(objects)
}
