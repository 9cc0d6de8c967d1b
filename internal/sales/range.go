package sales

import "time"

// Preset is a named shorthand for a date window relative to a reference date.
type Preset string

const (
	PresetToday Preset = "today"
	PresetWeek  Preset = "week"
	PresetMonth Preset = "month"
)

// ResolvePreset turns a preset into a concrete window ending on ref. Weeks
// start on Sunday. Dates stay in ref's own calendar. An unknown preset yields
// a fully unbounded window. Anchors sit at noon because some zones skip
// local midnight when DST starts.
func ResolvePreset(preset Preset, ref time.Time) DateWindow {
	today := DateOf(ref)

	switch preset {
	case PresetToday:
		return DateWindow{Start: today, End: today}
	case PresetWeek:
		y, m, d := ref.Date()
		sunday := time.Date(y, m, d-int(ref.Weekday()), 12, 0, 0, 0, ref.Location())
		return DateWindow{Start: DateOf(sunday), End: today}
	case PresetMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 12, 0, 0, 0, ref.Location())
		return DateWindow{Start: DateOf(first), End: today}
	default:
		return DateWindow{Start: Unbounded, End: Unbounded}
	}
}
