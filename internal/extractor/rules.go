package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ggorockee/happyhours/pkg/models"
)

const (
	minValidNameLen    = 3 // 길이 > 2
	minValidAddressLen = 6 // 길이 > 5
	minFinalNameLen    = 2
	minFinalAddressLen = 5
	minAddressFieldLen = 11 // 주소 후보 필드 길이 > 10
)

// identity 보정이 끝난 이름/주소/설명
type identity struct {
	Name        string
	Address     string
	Description string
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func mentionsUpdate(s string) bool {
	return strings.Contains(strings.ToLower(s), "update")
}

// isValidName 길이 > 2 이고 "update"를 포함하지 않는 이름
func isValidName(name string) bool {
	return runeLen(name) >= minValidNameLen && !mentionsUpdate(name)
}

// isValidAddress 길이 > 5 이고 "update"를 포함하지 않는 주소
func isValidAddress(address string) bool {
	return runeLen(address) >= minValidAddressLen && !mentionsUpdate(address)
}

// findAddressCandidate 설명 → 지도 링크 → 비고 순으로 주소처럼 보이는 필드 탐색
func findAddressCandidate(row models.RawRow, region Region) (string, bool) {
	markers := region.addressMarkers()
	for _, field := range []string{row.Description, row.GoogleMarker, row.Remark} {
		if runeLen(field) < minAddressFieldLen {
			continue
		}
		for _, m := range markers {
			if strings.Contains(field, m) {
				return field, true
			}
		}
	}
	return "", false
}

// repairAddress 이름만 유효할 때 주소 보정
func repairAddress(row models.RawRow, region Region) identity {
	address, ok := findAddressCandidate(row, region)
	if !ok {
		address = region.FallbackAddress
	}

	description := row.Description
	if description == "" {
		description = fmt.Sprintf("%s - Popular venue in %s", row.Name, region.Label())
	}

	return identity{Name: row.Name, Address: address, Description: description}
}

// repairName 주소만 유효할 때 설명의 첫 쉼표 앞부분으로 이름 보정
func repairName(row models.RawRow, region Region) identity {
	name := ""
	if runeLen(row.Description) >= minValidNameLen {
		name = strings.TrimSpace(strings.SplitN(row.Description, ",", 2)[0])
	}
	if name == "" {
		name = region.FallbackName
	}

	return identity{
		Name:        name,
		Address:     row.Address,
		Description: "Popular venue located at " + row.Address,
	}
}

// resolveIdentity 우선순위 규칙 적용
// skip=true 이면 조용히 건너뛰는 행 (에러 아님)
func resolveIdentity(row models.RawRow, region Region) (id identity, skip bool) {
	nameOK := isValidName(row.Name)
	addressOK := isValidAddress(row.Address)

	switch {
	case !nameOK && !addressOK:
		return identity{}, true
	case nameOK && !addressOK:
		return repairAddress(row, region), false
	case !nameOK && addressOK:
		return repairName(row, region), false
	default:
		return identity{Name: row.Name, Address: row.Address, Description: row.Description}, false
	}
}

// acceptable 최종 검증
func (id identity) acceptable() bool {
	return runeLen(id.Name) >= minFinalNameLen && runeLen(id.Address) >= minFinalAddressLen
}
