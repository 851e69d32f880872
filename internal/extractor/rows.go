package extractor

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ggorockee/happyhours/pkg/models"
)

// schemaWidth 고정 스키마 열 개수
const schemaWidth = 12

// splitLines 줄 단위로 나누고 빈 줄 제거
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// delimiterFor 탭이 있으면 탭, 아니면 쉼표
func delimiterFor(line string) rune {
	if strings.ContainsRune(line, '\t') {
		return '\t'
	}
	return ','
}

// splitCells 한 줄을 셀로 분리 (따옴표 안의 구분자는 유지)
func splitCells(line string) ([]string, rune, error) {
	delim := delimiterFor(line)

	r := csv.NewReader(strings.NewReader(strings.TrimRight(line, "\r")))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	cells, err := r.Read()
	if err != nil {
		return nil, delim, err
	}
	return cells, delim, nil
}

// foldOverflow 헤더보다 셀이 많으면 넘친 셀을 헤더 마지막 열로 합침
// 따옴표 없는 주소의 쉼표가 열을 밀어내는 경우를 복구
// 스키마 전체 폭을 채운 행은 위치 그대로 매핑
func foldOverflow(cells []string, headerWidth int, delim rune) []string {
	if headerWidth <= 0 || headerWidth >= schemaWidth || len(cells) <= headerWidth || len(cells) >= schemaWidth {
		return cells
	}
	last := headerWidth - 1
	folded := make([]string, headerWidth)
	copy(folded, cells[:last])
	folded[last] = strings.Join(cells[last:], string(delim))
	return folded
}

// toRawRow 위치 기반으로 스키마에 매핑 (모든 값 trim)
func toRawRow(cells []string) models.RawRow {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	return models.RawRow{
		Name:           get(0),
		Description:    get(1),
		Address:        get(2),
		GoogleMarker:   get(3),
		Picture:        get(4),
		Logo:           get(5),
		OpenHours:      get(6),
		HappyHourStart: get(7),
		HappyHourEnd:   get(8),
		Telephone:      get(9),
		Remark:         get(10),
		Update:         get(11),
	}
}

// parseRow 한 줄 → RawRow
func parseRow(line string, headerWidth int) (models.RawRow, error) {
	cells, delim, err := splitCells(line)
	if err != nil {
		return models.RawRow{}, fmt.Errorf("malformed row: %w", err)
	}
	if allBlank(cells) {
		return models.RawRow{}, nil
	}
	return toRawRow(foldOverflow(cells, headerWidth, delim)), nil
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
