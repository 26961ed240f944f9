package booking

import (
	"testing"
	"time"
)

func at(hm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+hm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuoteTwoHours(t *testing.T) {
	// start=10:00, end=12:00, rate=30 -> 60
	if got := Quote(at("10:00"), at("12:00"), 30); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
}

func TestQuoteFractionalHours(t *testing.T) {
	cases := []struct {
		start, end string
		rate       float64
		want       int64
	}{
		{"10:00", "11:30", 30, 45},
		{"10:00", "10:30", 30, 15},
		{"10:00", "11:40", 30, 50},
		{"10:00", "10:01", 30, 1},  // 0.5 rounds away from zero
		{"09:15", "17:45", 25, 213}, // 8.5h * 25 = 212.5 -> 213
		{"10:00", "12:00", 27.5, 55},
	}

	for _, c := range cases {
		if got := Quote(at(c.start), at(c.end), c.rate); got != c.want {
			t.Fatalf("Quote(%s..%s @ %v): expected %d, got %d", c.start, c.end, c.rate, c.want, got)
		}
	}
}

func TestQuoteInvalidRanges(t *testing.T) {
	if got := Quote(at("12:00"), at("10:00"), 30); got != 0 {
		t.Fatalf("end before start: expected 0, got %d", got)
	}
	if got := Quote(at("10:00"), at("10:00"), 30); got != 0 {
		t.Fatalf("end equals start: expected 0, got %d", got)
	}
	if got := Quote(time.Time{}, at("12:00"), 30); got != 0 {
		t.Fatalf("unset start: expected 0, got %d", got)
	}
	if got := Quote(at("10:00"), time.Time{}, 30); got != 0 {
		t.Fatalf("unset end: expected 0, got %d", got)
	}
}

func TestCanConfirm(t *testing.T) {
	if CanConfirm(0) {
		t.Fatal("zero total must keep confirm disabled")
	}
	if !CanConfirm(60) {
		t.Fatal("positive total must enable confirm")
	}
}

func TestQuoteRecomputesOnEveryChange(t *testing.T) {
	req := CreateRequest{ParkingSpotID: 1, StartTime: at("10:00"), EndTime: at("12:00"), PricePerHour: 30}
	if req.Total() != 60 {
		t.Fatalf("expected 60, got %d", req.Total())
	}

	// change the selected spot's rate; no stale total
	req.PricePerHour = 50
	if req.Total() != 100 {
		t.Fatalf("expected 100 after rate change, got %d", req.Total())
	}

	req.EndTime = at("10:00")
	if req.Total() != 0 {
		t.Fatalf("expected 0 after collapsing the range, got %d", req.Total())
	}
}
