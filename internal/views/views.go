// Package views derives presentation state from task collections
// already held in memory. Everything here is pure: no I/O, no hidden
// clock (the temporal classifiers take "now" explicitly, read once per
// call by the caller), and no mutation of inputs.
package views

import (
	"math"
	"time"

	"taskdeck/internal/models"
)

// DefaultDueSoonHorizonDays is the upcoming window used when no
// configured horizon applies.
const DefaultDueSoonHorizonDays = 3

// Progress summarizes completion across a todo's tasks.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// TodoProgress counts completed tasks and rounds the percentage. An
// empty collection reports zero percent.
func TodoProgress(tasks []models.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

// Badge is the rendering hint for a priority or status value.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var priorityBadges = map[models.Priority]Badge{
	models.PriorityLow:    {Label: "Low", Color: "bg-green-100 text-green-800 border-green-200", Icon: "🟢"},
	models.PriorityMedium: {Label: "Medium", Color: "bg-yellow-100 text-yellow-800 border-yellow-200", Icon: "🟡"},
	models.PriorityHigh:   {Label: "High", Color: "bg-red-100 text-red-800 border-red-200", Icon: "🔴"},
}

var statusBadges = map[models.Status]Badge{
	models.StatusTodo:       {Label: "To Do", Color: "bg-blue-100 text-blue-800 border-blue-200", Icon: "📝"},
	models.StatusInProgress: {Label: "In Progress", Color: "bg-purple-100 text-purple-800 border-purple-200", Icon: "⏳"},
	models.StatusDone:       {Label: "Done", Color: "bg-green-100 text-green-800 border-green-200", Icon: "✅"},
}

var unknownBadge = Badge{Label: "Unknown", Color: "bg-gray-100 text-gray-800 border-gray-200", Icon: "❓"}

// PriorityInfo maps a priority to its badge. Unmapped values render as
// unknown rather than failing.
func PriorityInfo(p models.Priority) Badge {
	if b, ok := priorityBadges[p]; ok {
		return b
	}
	b := unknownBadge
	b.Icon = "⚪"
	return b
}

// StatusInfo maps a status to its badge, with an unknown fallback.
func StatusInfo(s models.Status) Badge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return unknownBadge
}

// ProgressColor picks the progress-bar class for a percentage.
func ProgressColor(percentage int) string {
	switch {
	case percentage == 100:
		return "bg-green-500"
	case percentage >= 70:
		return "bg-blue-500"
	case percentage >= 40:
		return "bg-yellow-500"
	default:
		return "bg-gray-400"
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether the due date falls strictly before today.
// Comparison is date-only; time of day is ignored. Only meaningful for
// incomplete tasks — callers gate on !completed.
func IsOverdue(due, now time.Time) bool {
	return dateOnly(due).Before(dateOnly(now))
}

// IsDueSoon reports whether the due date falls inside the window from
// today through today+horizonDays, date-only. Only meaningful for
// incomplete tasks.
func IsDueSoon(due, now time.Time, horizonDays int) bool {
	d := dateOnly(due)
	today := dateOnly(now)
	horizon := today.AddDate(0, 0, horizonDays)
	return !d.Before(today) && !d.After(horizon)
}

// FormatDate renders a timestamp as e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a timestamp as e.g. "Jan 2, 2006 03:04 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 03:04 PM")
}
