// Package category holds the keyword rules that map free text onto the
// closed category set, plus the per-category defaults shared by the
// extractor and the aggregator.
package category

import (
	"strings"

	"github.com/ggorockee/happyhours/pkg/models"
)

// Default is used when no keyword matches.
const Default = models.CategoryBarRestaurant

type rule struct {
	category models.Category
	keywords []string
}

// rules are evaluated in order, first match wins.
var rules = []rule{
	{models.CategorySpaWellness, []string{"spa", "massage", "wellness"}},
	{models.CategoryBarRestaurant, []string{"rooftop", "bar", "cocktail", "lounge", "pub"}},
	{models.CategoryCafe, []string{"cafe", "coffee"}},
	{models.CategoryRestaurant, []string{"restaurant", "dining", "kitchen", "food"}},
}

// Infer scans the given texts case-insensitively and returns the first
// matching category.
func Infer(texts ...string) models.Category {
	haystack := strings.ToLower(strings.Join(texts, " "))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				return r.category
			}
		}
	}
	return Default
}

var defaultImages = map[models.Category]string{
	models.CategoryRestaurant:     "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
	models.CategoryBarRestaurant:  "https://images.pexels.com/photos/1581384/pexels-photo-1581384.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
	models.CategoryCafe:           "https://images.pexels.com/photos/302899/pexels-photo-302899.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
	models.CategorySpaWellness:    "https://images.pexels.com/photos/3757942/pexels-photo-3757942.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
	models.CategoryStreetFood:     "https://images.pexels.com/photos/1267320/pexels-photo-1267320.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
	models.CategoryMassageParlour: "https://images.pexels.com/photos/3865676/pexels-photo-3865676.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop&fm=webp&q=80",
}

// DefaultImage returns the stock image for a category.
func DefaultImage(c models.Category) string {
	if img, ok := defaultImages[c]; ok {
		return img
	}
	return defaultImages[Default]
}

// PlaceType maps a category onto a Google Places type. Unknown categories
// map to "establishment".
func PlaceType(c models.Category) string {
	switch c {
	case models.CategoryRestaurant, models.CategoryStreetFood:
		return "restaurant"
	case models.CategoryBarRestaurant:
		return "bar"
	case models.CategoryCafe:
		return "cafe"
	case models.CategorySpaWellness, models.CategoryMassageParlour:
		return "spa"
	default:
		return "establishment"
	}
}
