package dataset

import (
	"reflect"
	"testing"
	"time"
)

func hourlyPoints(start time.Time, hours int) []Point {
	points := make([]Point, 0, hours)
	for i := 0; i < hours; i++ {
		points = append(points, Point{Time: start.Add(time.Duration(i) * time.Hour), Value: float64(i)})
	}
	return points
}

func TestFirstMonthWindowBoundsToCalendarMonth(t *testing.T) {
	// Earliest timestamp is March 5th; the window must cover all of March,
	// so rows from March 1st onward (none here) up to April 1st exclusive.
	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	points := hourlyPoints(start, 40*24) // spans into mid-April

	window := FirstMonthWindow(points, DefaultMaxPoints)
	if len(window) == 0 {
		t.Fatal("expected non-empty window")
	}

	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	for _, p := range window {
		if p.Time.Before(monthStart) || !p.Time.Before(monthEnd) {
			t.Fatalf("point %v outside [%v, %v)", p.Time, monthStart, monthEnd)
		}
	}

	// March 5th..April 1st is 27 days of hourly samples.
	if len(window) != 27*24 {
		t.Fatalf("expected %d points, got %d", 27*24, len(window))
	}
}

func TestFirstMonthWindowCapsAtMaxPoints(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := hourlyPoints(start, 31*24+10)

	window := FirstMonthWindow(points, DefaultMaxPoints)
	if len(window) != DefaultMaxPoints {
		t.Fatalf("expected cap at %d, got %d", DefaultMaxPoints, len(window))
	}

	small := FirstMonthWindow(points, 10)
	if len(small) != 10 {
		t.Fatalf("expected cap at 10, got %d", len(small))
	}
}

func TestFirstMonthWindowEmptyInput(t *testing.T) {
	if got := FirstMonthWindow(nil, DefaultMaxPoints); got != nil {
		t.Fatalf("empty input must yield empty window, got %v", got)
	}
}

func TestFirstMonthWindowIdempotent(t *testing.T) {
	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	points := hourlyPoints(start, 45*24)

	once := FirstMonthWindow(points, DefaultMaxPoints)
	twice := FirstMonthWindow(once, DefaultMaxPoints)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("re-windowing an extracted window must return it unchanged")
	}
}

func TestFirstMonthWindowUnsortedInputUsesEarliest(t *testing.T) {
	points := []Point{
		{Time: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Value: 1},
		{Time: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), Value: 2},
		{Time: time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), Value: 3},
	}

	window := FirstMonthWindow(points, DefaultMaxPoints)
	if len(window) != 2 {
		t.Fatalf("expected 2 points inside March, got %d", len(window))
	}
	for _, p := range window {
		if p.Time.Month() != time.March {
			t.Fatalf("point %v outside March", p.Time)
		}
	}
}
