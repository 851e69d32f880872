package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultStartTime = "17:00"
	DefaultEndTime   = "20:00"
)

var (
	twelveHourPattern = regexp.MustCompile(`(\d{1,2}):?(\d{0,2})\s*(am|pm)`)
	bareTimePattern   = regexp.MustCompile(`(\d{1,2}):?(\d{0,2})`)
)

// ParseTime "5:00 PM", "8pm", "17:30" 같은 문자열을 HH:MM으로 변환
// 해석할 수 없으면 빈 문자열
func ParseTime(s string) string {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" {
		return ""
	}

	if strings.Contains(clean, "am") || strings.Contains(clean, "pm") {
		if m := twelveHourPattern.FindStringSubmatch(clean); m != nil {
			hours, _ := strconv.Atoi(m[1])
			minutes, _ := strconv.Atoi(m[2])

			if m[3] == "pm" && hours != 12 {
				hours += 12
			} else if m[3] == "am" && hours == 12 {
				hours = 0
			}
			return formatClock(hours, minutes)
		}
	}

	if m := bareTimePattern.FindStringSubmatch(clean); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return formatClock(hours, minutes)
	}

	return ""
}

func formatClock(hours, minutes int) string {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// NormalizeWindow 시작/종료 시각 정규화 (기본값 17:00-20:00)
func NormalizeWindow(start, end string) (from, to string) {
	from = ParseTime(start)
	if from == "" {
		from = DefaultStartTime
	}
	to = ParseTime(end)
	if to == "" {
		to = DefaultEndTime
	}
	return from, to
}
