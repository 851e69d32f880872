// Package locations holds the static table of cities users can pick as
// their search area.
package locations

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ggorockee/happyhours/internal/geo"
)

// Location 선택 가능한 도시
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Popular   bool    `json:"isPopular"`
}

var table = []Location{
	// 인기 도시
	{ID: "bangkok", Name: "Bangkok", Country: "Thailand", Latitude: 13.7563, Longitude: 100.5018, Timezone: "Asia/Bangkok", Popular: true},
	{ID: "mumbai", Name: "Mumbai", Country: "India", Latitude: 19.0760, Longitude: 72.8777, Timezone: "Asia/Kolkata", Popular: true},
	{ID: "tokyo", Name: "Tokyo", Country: "Japan", Latitude: 35.6762, Longitude: 139.6503, Timezone: "Asia/Tokyo", Popular: true},
	{ID: "singapore", Name: "Singapore", Country: "Singapore", Latitude: 1.3521, Longitude: 103.8198, Timezone: "Asia/Singapore", Popular: true},
	{ID: "sydney", Name: "Sydney", Country: "Australia", Latitude: -33.8688, Longitude: 151.2093, Timezone: "Australia/Sydney", Popular: true},
	{ID: "london", Name: "London", Country: "UK", Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London", Popular: true},
	{ID: "paris", Name: "Paris", Country: "France", Latitude: 48.8566, Longitude: 2.3522, Timezone: "Europe/Paris", Popular: true},
	{ID: "amsterdam", Name: "Amsterdam", Country: "Netherlands", Latitude: 52.3676, Longitude: 4.9041, Timezone: "Europe/Amsterdam", Popular: true},
	{ID: "new-york", Name: "New York", Country: "USA", Latitude: 40.7128, Longitude: -74.0060, Timezone: "America/New_York", Popular: true},
	{ID: "los-angeles", Name: "Los Angeles", Country: "USA", Latitude: 34.0522, Longitude: -118.2437, Timezone: "America/Los_Angeles", Popular: true},
	{ID: "dubai", Name: "Dubai", Country: "UAE", Latitude: 25.2048, Longitude: 55.2708, Timezone: "Asia/Dubai", Popular: true},

	// 기타 도시
	{ID: "delhi", Name: "Delhi", Country: "India", Latitude: 28.7041, Longitude: 77.1025, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "bangalore", Name: "Bangalore", Country: "India", Latitude: 12.9716, Longitude: 77.5946, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "pune", Name: "Pune", Country: "India", Latitude: 18.5204, Longitude: 73.8567, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "hyderabad", Name: "Hyderabad", Country: "India", Latitude: 17.3850, Longitude: 78.4867, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "chennai", Name: "Chennai", Country: "India", Latitude: 13.0827, Longitude: 80.2707, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "kolkata", Name: "Kolkata", Country: "India", Latitude: 22.5726, Longitude: 88.3639, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "goa", Name: "Goa", Country: "India", Latitude: 15.2993, Longitude: 74.1240, Timezone: "Asia/Kolkata", Popular: false},
	{ID: "pattaya", Name: "Pattaya", Country: "Thailand", Latitude: 12.9236, Longitude: 100.8825, Timezone: "Asia/Bangkok", Popular: false},
	{ID: "hong-kong", Name: "Hong Kong", Country: "Hong Kong", Latitude: 22.3193, Longitude: 114.1694, Timezone: "Asia/Hong_Kong", Popular: false},
	{ID: "kuala-lumpur", Name: "Kuala Lumpur", Country: "Malaysia", Latitude: 3.1390, Longitude: 101.6869, Timezone: "Asia/Kuala_Lumpur", Popular: false},
	{ID: "jakarta", Name: "Jakarta", Country: "Indonesia", Latitude: -6.2088, Longitude: 106.8456, Timezone: "Asia/Jakarta", Popular: false},
	{ID: "manila", Name: "Manila", Country: "Philippines", Latitude: 14.5995, Longitude: 120.9842, Timezone: "Asia/Manila", Popular: false},
	{ID: "seoul", Name: "Seoul", Country: "South Korea", Latitude: 37.5665, Longitude: 126.9780, Timezone: "Asia/Seoul", Popular: false},
	{ID: "taipei", Name: "Taipei", Country: "Taiwan", Latitude: 25.0330, Longitude: 121.5654, Timezone: "Asia/Taipei", Popular: false},
	{ID: "ho-chi-minh", Name: "Ho Chi Minh City", Country: "Vietnam", Latitude: 10.8231, Longitude: 106.6297, Timezone: "Asia/Ho_Chi_Minh", Popular: false},
	{ID: "berlin", Name: "Berlin", Country: "Germany", Latitude: 52.5200, Longitude: 13.4050, Timezone: "Europe/Berlin", Popular: false},
	{ID: "barcelona", Name: "Barcelona", Country: "Spain", Latitude: 41.3851, Longitude: 2.1734, Timezone: "Europe/Madrid", Popular: false},
	{ID: "rome", Name: "Rome", Country: "Italy", Latitude: 41.9028, Longitude: 12.4964, Timezone: "Europe/Rome", Popular: false},
	{ID: "madrid", Name: "Madrid", Country: "Spain", Latitude: 40.4168, Longitude: -3.7038, Timezone: "Europe/Madrid", Popular: false},
	{ID: "vienna", Name: "Vienna", Country: "Austria", Latitude: 48.2082, Longitude: 16.3738, Timezone: "Europe/Vienna", Popular: false},
	{ID: "prague", Name: "Prague", Country: "Czech Republic", Latitude: 50.0755, Longitude: 14.4378, Timezone: "Europe/Prague", Popular: false},
	{ID: "budapest", Name: "Budapest", Country: "Hungary", Latitude: 47.4979, Longitude: 19.0402, Timezone: "Europe/Budapest", Popular: false},
	{ID: "zurich", Name: "Zurich", Country: "Switzerland", Latitude: 47.3769, Longitude: 8.5417, Timezone: "Europe/Zurich", Popular: false},
	{ID: "stockholm", Name: "Stockholm", Country: "Sweden", Latitude: 59.3293, Longitude: 18.0686, Timezone: "Europe/Stockholm", Popular: false},
	{ID: "copenhagen", Name: "Copenhagen", Country: "Denmark", Latitude: 55.6761, Longitude: 12.5683, Timezone: "Europe/Copenhagen", Popular: false},
	{ID: "chicago", Name: "Chicago", Country: "USA", Latitude: 41.8781, Longitude: -87.6298, Timezone: "America/Chicago", Popular: false},
	{ID: "san-francisco", Name: "San Francisco", Country: "USA", Latitude: 37.7749, Longitude: -122.4194, Timezone: "America/Los_Angeles", Popular: false},
	{ID: "miami", Name: "Miami", Country: "USA", Latitude: 25.7617, Longitude: -80.1918, Timezone: "America/New_York", Popular: false},
	{ID: "las-vegas", Name: "Las Vegas", Country: "USA", Latitude: 36.1699, Longitude: -115.1398, Timezone: "America/Los_Angeles", Popular: false},
	{ID: "toronto", Name: "Toronto", Country: "Canada", Latitude: 43.6532, Longitude: -79.3832, Timezone: "America/Toronto", Popular: false},
	{ID: "vancouver", Name: "Vancouver", Country: "Canada", Latitude: 49.2827, Longitude: -123.1207, Timezone: "America/Vancouver", Popular: false},
	{ID: "mexico-city", Name: "Mexico City", Country: "Mexico", Latitude: 19.4326, Longitude: -99.1332, Timezone: "America/Mexico_City", Popular: false},
	{ID: "sao-paulo", Name: "São Paulo", Country: "Brazil", Latitude: -23.5505, Longitude: -46.6333, Timezone: "America/Sao_Paulo", Popular: false},
	{ID: "rio-de-janeiro", Name: "Rio de Janeiro", Country: "Brazil", Latitude: -22.9068, Longitude: -43.1729, Timezone: "America/Sao_Paulo", Popular: false},
	{ID: "buenos-aires", Name: "Buenos Aires", Country: "Argentina", Latitude: -34.6118, Longitude: -58.3960, Timezone: "America/Argentina/Buenos_Aires", Popular: false},
	{ID: "doha", Name: "Doha", Country: "Qatar", Latitude: 25.2854, Longitude: 51.5310, Timezone: "Asia/Qatar", Popular: false},
	{ID: "riyadh", Name: "Riyadh", Country: "Saudi Arabia", Latitude: 24.7136, Longitude: 46.6753, Timezone: "Asia/Riyadh", Popular: false},
	{ID: "tel-aviv", Name: "Tel Aviv", Country: "Israel", Latitude: 32.0853, Longitude: 34.7818, Timezone: "Asia/Jerusalem", Popular: false},
	{ID: "istanbul", Name: "Istanbul", Country: "Turkey", Latitude: 41.0082, Longitude: 28.9784, Timezone: "Europe/Istanbul", Popular: false},
	{ID: "cairo", Name: "Cairo", Country: "Egypt", Latitude: 30.0444, Longitude: 31.2357, Timezone: "Africa/Cairo", Popular: false},
	{ID: "cape-town", Name: "Cape Town", Country: "South Africa", Latitude: -33.9249, Longitude: 18.4241, Timezone: "Africa/Johannesburg", Popular: false},
	{ID: "melbourne", Name: "Melbourne", Country: "Australia", Latitude: -37.8136, Longitude: 144.9631, Timezone: "Australia/Melbourne", Popular: false},
	{ID: "auckland", Name: "Auckland", Country: "New Zealand", Latitude: -36.8485, Longitude: 174.7633, Timezone: "Pacific/Auckland", Popular: false},
}

// All 전체 도시 (정의 순서)
func All() []Location {
	out := make([]Location, len(table))
	copy(out, table)
	return out
}

// Popular 인기 도시만
func Popular() []Location {
	var out []Location
	for _, l := range table {
		if l.Popular {
			out = append(out, l)
		}
	}
	return out
}

// Search matches the query case-insensitively against name or country.
func Search(q string) []Location {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := []Location{}
	for _, l := range table {
		if strings.Contains(strings.ToLower(l.Name), needle) ||
			strings.Contains(strings.ToLower(l.Country), needle) {
			out = append(out, l)
		}
	}
	return out
}

// ByID id로 조회
func ByID(id string) (Location, bool) {
	for _, l := range table {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// CurrentTime formats now as "03:04 PM" in the location's timezone. An
// unknown timezone falls back to now's own zone.
func CurrentTime(l Location, now time.Time) string {
	if tz, err := time.LoadLocation(l.Timezone); err == nil {
		now = now.In(tz)
	}
	return now.Format("03:04 PM")
}

// DisplayName "Name, Country"
func DisplayName(l Location) string {
	return l.Name + ", " + l.Country
}

// Nearest 좌표에서 가장 가까운 도시
func Nearest(lat, lng float64) (Location, float64) {
	best := table[0]
	bestKm := geo.HaversineKm(lat, lng, best.Latitude, best.Longitude)
	for _, l := range table[1:] {
		if d := geo.HaversineKm(lat, lng, l.Latitude, l.Longitude); d < bestKm {
			best, bestKm = l, d
		}
	}
	return best, bestKm
}
