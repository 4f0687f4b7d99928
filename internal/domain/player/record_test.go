package player

import "testing"

func TestFromRecord(t *testing.T) {
	t.Parallel()

	p, ok := FromRecord(Record{
		"Name":       "  Ali   Rahman ",
		"Position":   "fwd",
		"Selected":   "TRUE",
		"PAC":        "88",
		"sho":        "91.5",
		"PAS":        "n/a",
		"DRI":        "",
		"DEF":        "40",
		"PHY":        "71",
		"StarRating": "4",
	})
	if !ok {
		t.Fatalf("expected row to parse")
	}
	if p.Name != "Ali Rahman" || p.Position != PositionForward || !p.Selected {
		t.Fatalf("unexpected identity fields: %+v", p)
	}
	want := Attributes{Pace: 88, Shooting: 91.5, Passing: DefaultAttribute, Dribbling: DefaultAttribute, Defense: 40, Physicality: 71}
	if p.Attributes != want {
		t.Fatalf("unexpected attributes: %+v", p.Attributes)
	}
	if p.StarRating != 4 {
		t.Fatalf("unexpected star rating: %v", p.StarRating)
	}
}

func TestFromRecord_MissingColumns(t *testing.T) {
	t.Parallel()

	p, ok := FromRecord(Record{"Name": "Budi"})
	if !ok {
		t.Fatalf("expected row to parse")
	}
	if p.Selected {
		t.Fatalf("missing Selected column must mean not selected")
	}
	if p.Position != PositionMidfielder || p.StarRating != DefaultStarRating || p.Attributes.Pace != DefaultAttribute {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	if _, ok := FromRecord(Record{"Name": "   ", "Position": "DEF"}); ok {
		t.Fatalf("expected blank name to be skipped")
	}
}

func TestToRecord_RoundTripsThroughFromRecord(t *testing.T) {
	t.Parallel()

	in := Player{Name: "Chandra", Position: PositionGoalkeeper, Selected: true, StarRating: 2, Attributes: Attributes{Pace: 60, Shooting: 30, Passing: 55, Dribbling: 40, Defense: 80, Physicality: 75}}
	out, ok := FromRecord(ToRecord(in))
	if !ok || out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	if pos, ok := ParsePosition(" gk "); !ok || pos != PositionGoalkeeper {
		t.Fatalf("unexpected GK parse: %s %v", pos, ok)
	}
	if pos, ok := ParsePosition("winger"); ok || pos != PositionMidfielder {
		t.Fatalf("unexpected fallback parse: %s %v", pos, ok)
	}
	if PositionGoalkeeper.Rank() >= PositionForward.Rank() {
		t.Fatalf("expected GK to rank before FWD")
	}
}
