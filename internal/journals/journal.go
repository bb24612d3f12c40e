// Package journals holds the reference table of journals and the
// transformations applied to it before display.
package journals

import (
	"strings"

	"publication-rewards/internal/reward"
)

// HighlightMarker flags a journal that should be visually distinguished.
const HighlightMarker = "NOT RECOMMENDED"

// Journal is one row of the reference table.
type Journal struct {
	AverageScore     float64 `json:"averageScore"`
	Name             string  `json:"journal"`
	AcceptanceRate   Value   `json:"acceptanceRate"`
	ImpactFactor2024 Value   `json:"if2024"`
	OpenAccessPolicy Value   `json:"openAccess"`
	Publisher        Value   `json:"publisher"`
	ExpectedReward   string  `json:"expectedReward,omitempty"`
}

// Row is a journal as handed to a presentation layer.
type Row struct {
	Journal
	Highlighted bool `json:"highlighted"`
}

// Normalize returns a copy of records with blank optional cells marked
// missing and ExpectedReward derived from AverageScore. Order is preserved
// and applying it twice gives the same result as applying it once.
func Normalize(records []Journal) []Journal {
	out := make([]Journal, len(records))
	for i, r := range records {
		r.AcceptanceRate = r.AcceptanceRate.normalized()
		r.ImpactFactor2024 = r.ImpactFactor2024.normalized()
		r.OpenAccessPolicy = r.OpenAccessPolicy.normalized()
		r.Publisher = r.Publisher.normalized()
		r.ExpectedReward = ExpectedReward(r.AverageScore)
		out[i] = r
	}
	return out
}

// ExpectedReward is the formatted reward for a journal's average score.
func ExpectedReward(averageScore float64) string {
	return reward.Format(reward.Calculate(averageScore))
}

// Filter returns the records whose name contains query, ignoring case.
// An empty query returns records as given.
func Filter(records []Journal, query string) []Journal {
	if query == "" {
		return records
	}

	needle := strings.ToLower(query)
	out := make([]Journal, 0)
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// IsHighlighted reports whether a journal name carries the highlight marker.
// The match is case-sensitive.
func IsHighlighted(name string) bool {
	return strings.Contains(name, HighlightMarker)
}

// Rows attaches the highlight flag to each record.
func Rows(records []Journal) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = Row{Journal: r, Highlighted: IsHighlighted(r.Name)}
	}
	return out
}
