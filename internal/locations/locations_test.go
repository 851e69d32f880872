package locations

import (
	"testing"
	"time"
)

func TestTableShape(t *testing.T) {
	if got := len(All()); got != 54 {
		t.Errorf("Expected 54 locations, got %d", got)
	}

	popular := Popular()
	want := []string{"bangkok", "mumbai", "tokyo", "singapore", "sydney", "london", "paris", "amsterdam", "new-york", "los-angeles", "dubai"}
	if len(popular) != len(want) {
		t.Fatalf("Expected %d popular locations, got %d", len(want), len(popular))
	}
	for i, id := range want {
		if popular[i].ID != id {
			t.Errorf("popular[%d] = %s, want %s", i, popular[i].ID, id)
		}
	}

	seen := map[string]bool{}
	for _, l := range All() {
		if seen[l.ID] {
			t.Errorf("Duplicate id %s", l.ID)
		}
		seen[l.ID] = true
		if _, err := time.LoadLocation(l.Timezone); err != nil {
			t.Errorf("%s: bad timezone %s", l.ID, l.Timezone)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		q    string
		want int
	}{
		{"india", 8},
		{"MUM", 1},
		{"usa", 6},
		{"zzz", 0},
	}

	for _, tt := range tests {
		if got := Search(tt.q); len(got) != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.q, len(got), tt.want)
		}
	}
}

func TestByIDAndDisplayName(t *testing.T) {
	l, ok := ByID("sao-paulo")
	if !ok {
		t.Fatal("Expected sao-paulo")
	}
	if DisplayName(l) != "São Paulo, Brazil" {
		t.Errorf("DisplayName = %q", DisplayName(l))
	}
	if _, ok := ByID("atlantis"); ok {
		t.Error("Expected unknown id to be missing")
	}
}

func TestCurrentTime(t *testing.T) {
	now := time.Date(2025, 8, 8, 12, 0, 0, 0, time.UTC)

	mumbai, _ := ByID("mumbai")
	if got := CurrentTime(mumbai, now); got != "05:30 PM" {
		t.Errorf("Mumbai time = %q, want 05:30 PM", got)
	}

	bad := Location{Timezone: "Mars/Olympus"}
	if got := CurrentTime(bad, now); got != "12:00 PM" {
		t.Errorf("Fallback time = %q, want 12:00 PM", got)
	}
}

func TestNearest(t *testing.T) {
	l, km := Nearest(18.94, 72.82)
	if l.ID != "mumbai" {
		t.Errorf("Expected mumbai, got %s", l.ID)
	}
	if km > 20 {
		t.Errorf("Expected short distance, got %.1f km", km)
	}

	if l, _ := Nearest(-33.9, 18.5); l.ID != "cape-town" {
		t.Errorf("Expected cape-town, got %s", l.ID)
	}
}
