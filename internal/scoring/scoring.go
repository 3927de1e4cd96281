// Package scoring holds the pure assessment arithmetic: per-meeting totals,
// weekly aggregation and the score-to-category mapping. Nothing here touches
// storage or transport; callers validate before they compute.
package scoring

import (
	"math"
	"strings"
)

// MeetingCount is the number of meetings tracked per weekly assessment. The
// weekly average always divides by this count, even when a meeting was not
// held (all-zero scores) — observed legacy behavior kept on purpose.
const MeetingCount = 3

// MaxMeetingTotal is the highest reachable per-meeting total (five aspects,
// five points each).
const MaxMeetingTotal = 25

// Category labels, ordered best to worst.
const (
	CategorySangatBaik   = "Sangat Baik"
	CategoryBaik         = "Baik"
	CategoryCukup        = "Cukup"
	CategoryKurang       = "Kurang"
	CategorySangatKurang = "Sangat Kurang"
)

// ClassNames is the fixed class enumeration; membership checks are
// case-sensitive.
var ClassNames = []string{"3A", "3B", "4A", "4B", "5A", "5B"}

// MeetingScores carries the five aspect scores of a single meeting.
type MeetingScores struct {
	Kehadiran  int
	Membaca    int
	Kosakata   int
	Pengucapan int
	Speaking   int
}

// MeetingTotal sums the five aspect scores. Range validation is the
// caller's job.
func MeetingTotal(s MeetingScores) int {
	return s.Kehadiran + s.Membaca + s.Kosakata + s.Pengucapan + s.Speaking
}

// CategoryFor maps a weekly average onto its qualitative label. Thresholds
// descend and a value equal to a threshold belongs to the higher band.
func CategoryFor(average float64) string {
	switch {
	case average >= 21:
		return CategorySangatBaik
	case average >= 16:
		return CategoryBaik
	case average >= 11:
		return CategoryCukup
	case average >= 6:
		return CategoryKurang
	default:
		return CategorySangatKurang
	}
}

// WeeklySummary aggregates the derived fields of one assessment week.
type WeeklySummary struct {
	MeetingTotals [MeetingCount]int
	TotalWeekly   int
	Average       float64
	Category      string
}

// Summarize derives the weekly totals, the two-decimal average and the
// category from three validated meeting score sets.
func Summarize(meetings [MeetingCount]MeetingScores) WeeklySummary {
	var summary WeeklySummary
	for i, m := range meetings {
		total := MeetingTotal(m)
		summary.MeetingTotals[i] = total
		summary.TotalWeekly += total
	}
	summary.Average = Round2(float64(summary.TotalWeekly) / MeetingCount)
	summary.Category = CategoryFor(summary.Average)
	return summary
}

// Round2 rounds half away from zero to two decimal places, matching how the
// dashboard has always displayed averages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Policy is the named score-range rule applied to every aspect of a meeting.
type Policy struct {
	Min int
	Max int
}

// Contains reports whether the score lies within the policy bounds.
func (p Policy) Contains(score int) bool {
	return score >= p.Min && score <= p.Max
}

// IsValidClass reports membership in the fixed class enumeration.
func IsValidClass(className string) bool {
	for _, name := range ClassNames {
		if name == className {
			return true
		}
	}
	return false
}

// MeetingsPerWeek returns how many meetings a class actually holds. Grade-5
// classes meet twice a week; their third tracked meeting is recorded as
// all-zero "not held".
func MeetingsPerWeek(className string) int {
	if isGradeFive(className) {
		return 2
	}
	return MeetingCount
}

// PolicyFor resolves the score policy for a class. The base bound is [1,5];
// with allowZeroNotHeld, grade-5 classes widen to [0,5] so a skipped meeting
// can be stored as zeros instead of fabricated scores.
func PolicyFor(className string, allowZeroNotHeld bool) Policy {
	if allowZeroNotHeld && isGradeFive(className) {
		return Policy{Min: 0, Max: 5}
	}
	return Policy{Min: 1, Max: 5}
}

func isGradeFive(className string) bool {
	return strings.HasPrefix(className, "5")
}
