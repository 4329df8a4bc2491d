package picks

import "testing"

func TestStatsTableLookupIsCaseInsensitive(t *testing.T) {
	table := NewStatsTable()
	table.Put(&SeasonStats{Team: "Green Bay Packers", Season: 2024})

	if _, ok := table.Lookup("green bay packers"); !ok {
		t.Error("lookup should ignore case")
	}
	if _, ok := table.Lookup("Green Bay"); ok {
		t.Error("partial names should not match")
	}
}

func TestStatsTableIgnoresEmptyEntries(t *testing.T) {
	table := NewStatsTable()
	table.Put(nil)
	table.Put(&SeasonStats{Team: ""})
	if table.Len() != 0 {
		t.Errorf("empty entries should be ignored, got %d", table.Len())
	}
}

func TestSeasonStatsDerive(t *testing.T) {
	s := &SeasonStats{PointsFor: 430, PointsAgainst: 355}
	s.Derive()
	if s.PointDiff != 75 {
		t.Errorf("expected a point diff of 75, got %f", s.PointDiff)
	}
}
