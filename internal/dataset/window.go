package dataset

import "time"

// Point is one (time, value) sample of a numeric series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// DefaultMaxPoints bounds a first-month window to 31 days of hourly samples.
const DefaultMaxPoints = 31 * 24

// FirstMonthWindow returns the points falling inside the calendar month of
// the earliest timestamp, in input order, truncated to maxPoints
// (DefaultMaxPoints when maxPoints is not positive). An empty input yields
// an empty window, never an error. The input is not mutated and repeated
// calls return the same window.
func FirstMonthWindow(points []Point, maxPoints int) []Point {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	if len(points) == 0 {
		return nil
	}

	earliest := points[0].Time
	for _, p := range points[1:] {
		if p.Time.Before(earliest) {
			earliest = p.Time
		}
	}

	start := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var window []Point
	for _, p := range points {
		if p.Time.Before(start) || !p.Time.Before(end) {
			continue
		}
		window = append(window, p)
		if len(window) >= maxPoints {
			break
		}
	}
	return window
}
