package geo

import "math"

// EarthRadiusKm 지구 반지름 (km)
const EarthRadiusKm = 6371.0

// Point 위도/경도 좌표
type Point struct {
	Lat float64
	Lng float64
}

// Bounds 위경도 사각 영역
type Bounds struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}

// Contains 좌표가 영역 안에 있는지 확인 (경계 포함)
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// HaversineKm 두 좌표 사이의 대원 거리 (km)
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// HaversineMeters 미터 단위 거리
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKm(lat1, lng1, lat2, lng2) * 1000
}

// toRadians 각도를 라디안으로 변환
func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
