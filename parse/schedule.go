package parse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ScheduleInput is one raw schedule row as submitted by the admin panel.
// All fields are free text; clients are known to put time ranges in the
// day column and vice versa.
type ScheduleInput struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Note string `json:"note"`
}

// UnmarshalJSON tolerates rows that are not objects and fields that are
// not strings. Whatever cannot be read stays empty and is filtered out by
// the normalizer instead of failing the request.
func (si *ScheduleInput) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		*si = ScheduleInput{}
		return nil
	}
	si.Day = asText(raw["day"])
	si.Time = asText(raw["time"])
	si.Note = asText(raw["note"])
	return nil
}

func asText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// ScheduleEntry is the canonical form of a schedule row. Weekday is
// 0=Monday..6=Sunday, Start/End are "HH:MM". A nil field means the input
// did not resolve to anything.
type ScheduleEntry struct {
	Weekday *int
	Start   *string
	End     *string
	Note    *string
}

// Russian weekday names as entered in the admin panel, Monday first.
var weekdayNames = [7]string{
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
	"воскресенье",
}

// WeekdayName renders a weekday index back to its display name.
// Out-of-range indexes fall back to the bare number.
func WeekdayName(i int) string {
	if i < 0 || i >= len(weekdayNames) {
		return strconv.Itoa(i)
	}
	name := weekdayNames[i]
	r := []rune(name)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// TimeRange renders start/end back to the "HH:MM-HH:MM" wire form.
func TimeRange(start, end *string) string {
	switch {
	case start != nil && end != nil:
		return *start + "-" + *end
	case start != nil:
		return *start
	case end != nil:
		return *end
	default:
		return ""
	}
}

// Schedules normalizes raw rows, dropping the ones that resolve to nothing.
// Create and update both go through here – full replacement, never a merge.
func Schedules(rows []ScheduleInput) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		if entry, ok := scheduleEntry(row); ok {
			out = append(out, entry)
		}
	}
	return out
}

func scheduleEntry(in ScheduleInput) (ScheduleEntry, bool) {
	day := strings.TrimSpace(in.Day)
	timeStr := strings.TrimSpace(in.Time)

	// Recover rows where the client put the time range in the day column.
	if timeStr == "" && containsDigit(day) {
		timeStr = day
		day = ""
	}

	if day == "" && timeStr == "" {
		return ScheduleEntry{}, false
	}

	var entry ScheduleEntry
	if day != "" {
		if n, err := strconv.Atoi(day); err == nil {
			entry.Weekday = &n
		} else if idx := weekdayIndex(day); idx >= 0 {
			w := idx
			entry.Weekday = &w
		}
	}

	note := strings.TrimSpace(in.Note)
	if timeStr != "" {
		start, end, leftover := splitTimeRange(timeStr)
		entry.Start = start
		entry.End = end
		if leftover != "" && note == "" {
			note = leftover
		}
	}
	if note != "" {
		entry.Note = &note
	}

	if entry.Weekday == nil && entry.Start == nil && entry.End == nil && entry.Note == nil {
		return ScheduleEntry{}, false
	}
	return entry, true
}

// splitTimeRange parses "HH:MM-HH:MM" with en/em dashes tolerated. A half
// that fails to parse is dropped; when nothing parses the raw string comes
// back as leftover for use as a note.
func splitTimeRange(s string) (start, end *string, leftover string) {
	t := strings.NewReplacer("–", "-", "—", "-").Replace(s)
	left, right, found := strings.Cut(t, "-")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !found || left == "" || right == "" {
		return nil, nil, s
	}
	start = parseHHMM(left)
	end = parseHHMM(right)
	if start == nil && end == nil {
		return nil, nil, s
	}
	return start, end, ""
}

func parseHHMM(s string) *string {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return nil
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return nil
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || m < 0 || m > 59 {
		return nil
	}
	out := fmt.Sprintf("%02d:%02d", h, m)
	return &out
}

func weekdayIndex(day string) int {
	lower := strings.ToLower(day)
	for i, name := range weekdayNames {
		if lower == name {
			return i
		}
	}
	return -1
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
