package player

import (
	"reflect"
	"testing"
)

func TestCleanName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Ali (t)":            "Ali",
		"Budi [paid]":        "Budi",
		"Chandra {gk}":       "Chandra",
		"Dewi（late）":         "Dewi",
		"Eko - coming late":  "Eko",
		"Fajar – maybe":      "Fajar",
		"Gilang T":           "Gilang",
		"Hadi g":             "Hadi",
		"Indra late 10 mins": "Indra",
		"Joko PAID":          "Joko",
		"Kurnia Tentative":   "Kurnia",
		"  Lukman  ":         "Lukman",
		"Tom":                "Tom",
	}
	for raw, want := range cases {
		if got := CleanName(raw); got != want {
			t.Fatalf("CleanName(%q)=%q, want %q", raw, got, want)
		}
	}
}

func TestNameKey(t *testing.T) {
	t.Parallel()

	if NameKey("  ALI   Rahman (t)") != "ali rahman" {
		t.Fatalf("unexpected key: %q", NameKey("  ALI   Rahman (t)"))
	}
}

func TestExtractListedNames(t *testing.T) {
	t.Parallel()

	text := "Saturday football 7am\n1. Ali\n2) Budi (late)\n3.\u200bChandra\n4. X\nnot numbered\n 5.  Dewi – maybe"
	got := ExtractListedNames(text)
	want := []string{"Ali", "Budi (late)", "Chandra", "Dewi – maybe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractListedNames()=%q, want %q", got, want)
	}
}

func TestExtractListedNames_NoEntries(t *testing.T) {
	t.Parallel()

	if got := ExtractListedNames("who is in for saturday?"); len(got) != 0 {
		t.Fatalf("expected no entries, got %q", got)
	}
}
