package category

import (
	"testing"

	"github.com/ggorockee/happyhours/pkg/models"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		text []string
		want models.Category
	}{
		{"spa wins over bar", []string{"Spa Bar", ""}, models.CategorySpaWellness},
		{"bar keyword", []string{"Sky Bar", ""}, models.CategoryBarRestaurant},
		{"lounge in description", []string{"The Deck", "a quiet lounge"}, models.CategoryBarRestaurant},
		{"coffee", []string{"Blue Tokai", "Coffee roasters"}, models.CategoryCafe},
		{"kitchen", []string{"Bombay Kitchen", ""}, models.CategoryRestaurant},
		{"case insensitive", []string{"WELLNESS HUB"}, models.CategorySpaWellness},
		{"no match falls back", []string{"Gallery 7", "modern exhibits"}, models.CategoryBarRestaurant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.text...); got != tt.want {
				t.Errorf("Infer(%v) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestPlaceType(t *testing.T) {
	tests := map[models.Category]string{
		models.CategoryRestaurant:     "restaurant",
		models.CategoryBarRestaurant:  "bar",
		models.CategoryCafe:           "cafe",
		models.CategorySpaWellness:    "spa",
		models.CategoryMassageParlour: "spa",
		models.CategoryStreetFood:     "restaurant",
		models.Category("Nightclub"):  "establishment",
	}

	for c, want := range tests {
		if got := PlaceType(c); got != want {
			t.Errorf("PlaceType(%s) = %s, want %s", c, got, want)
		}
	}
}

func TestDefaultImage(t *testing.T) {
	for _, c := range models.Categories {
		if DefaultImage(c) == "" {
			t.Errorf("No default image for %s", c)
		}
	}
	if DefaultImage("unknown") != DefaultImage(Default) {
		t.Error("Unknown category should use the fallback image")
	}
}
