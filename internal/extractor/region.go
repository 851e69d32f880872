package extractor

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ggorockee/happyhours/internal/geo"
)

// Region 좌표 합성 영역 + 주소 보정용 정보
type Region struct {
	Name            string     `yaml:"name"`
	Bounds          geo.Bounds `yaml:"bounds"`
	FallbackAddress string     `yaml:"fallback_address"`
	FallbackName    string     `yaml:"fallback_name"`
	// Localities 주소로 인정할 지역명 (대소문자 구분)
	Localities []string `yaml:"localities"`
}

// Label 설명 문구에 쓰는 지역 이름
func (r Region) Label() string {
	if r.Name == "" {
		return "the area"
	}
	return r.Name
}

// addressMarkers 주소로 판단하는 부분 문자열 목록
func (r Region) addressMarkers() []string {
	markers := []string{"Road", "Street"}
	markers = append(markers, r.Localities...)
	return append(markers, ",")
}

// Mumbai 기본 지역
var Mumbai = Region{
	Name: "Mumbai",
	Bounds: geo.Bounds{
		North: 19.27,
		South: 18.89,
		East:  72.98,
		West:  72.77,
	},
	FallbackAddress: "Mumbai, Maharashtra, India",
	FallbackName:    "Mumbai Venue",
	Localities:      []string{"Mumbai", "Bandra", "Lower Parel", "Andheri"},
}

// Bangkok happy_hours_bangkok 데이터용 지역
var Bangkok = Region{
	Name: "Bangkok",
	Bounds: geo.Bounds{
		North: 13.95,
		South: 13.49,
		East:  100.94,
		West:  100.33,
	},
	FallbackAddress: "Bangkok, Thailand",
	FallbackName:    "Bangkok Venue",
	Localities:      []string{"Bangkok", "Sukhumvit", "Silom", "Sathorn", "Thonglor"},
}

// Regions 이름(소문자) → 지역
type Regions map[string]Region

// DefaultRegions 내장 지역 목록
func DefaultRegions() Regions {
	return Regions{
		"mumbai":  Mumbai,
		"bangkok": Bangkok,
	}
}

// Lookup 이름으로 지역 조회
func (rs Regions) Lookup(name string) (Region, error) {
	r, ok := rs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q", name)
	}
	return r, nil
}

type regionsFile struct {
	Regions []Region `yaml:"regions"`
}

// LoadRegions 내장 지역에 YAML 파일의 지역을 덮어씀
// path가 비어 있으면 내장 지역만 반환
func LoadRegions(path string) (Regions, error) {
	regions := DefaultRegions()
	if path == "" {
		return regions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}

	var file regionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}

	for _, r := range file.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("region without name in %s", path)
		}
		b := r.Bounds
		if b.North <= b.South || b.East <= b.West {
			return nil, fmt.Errorf("region %s has invalid bounds", r.Name)
		}
		if r.FallbackAddress == "" {
			r.FallbackAddress = r.Name
		}
		if r.FallbackName == "" {
			r.FallbackName = r.Name + " Venue"
		}
		regions[strings.ToLower(r.Name)] = r
	}

	return regions, nil
}
