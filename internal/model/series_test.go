package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalizeSeries_SortsAndDedups(t *testing.T) {
	in := []HistoryPoint{
		{Date: day("2024-03-03"), Price: decimal.NewFromInt(3)},
		{Date: day("2024-03-01"), Price: decimal.NewFromInt(1)},
		{Date: day("2024-03-02"), Price: decimal.NewFromInt(2)},
		{Date: day("2024-03-01"), Price: decimal.NewFromInt(10)},
	}
	got := NormalizeSeries(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	for i, w := range want {
		if got[i].Date.Format(DateLayout) != w {
			t.Errorf("point %d: expected %s, got %s", i, w, got[i].Date.Format(DateLayout))
		}
	}
	if !got[0].Price.Equal(decimal.NewFromInt(10)) {
		t.Errorf("duplicate date should keep last value, got %s", got[0].Price)
	}
}

func TestWithLive_ReplacesToday(t *testing.T) {
	s := PriceSeries{
		{Date: day("2024-03-01"), Price: decimal.NewFromInt(1)},
		{Date: day("2024-03-02"), Price: decimal.NewFromInt(2)},
	}
	today := time.Date(2024, 3, 2, 15, 4, 5, 0, time.Local)
	got := s.WithLive(today, decimal.NewFromInt(99))
	if len(got) != 2 {
		t.Fatalf("expected replacement, got %d points", len(got))
	}
	if !got[1].Price.Equal(decimal.NewFromInt(99)) {
		t.Errorf("expected live price, got %s", got[1].Price)
	}
	if !s[1].Price.Equal(decimal.NewFromInt(2)) {
		t.Error("WithLive must not modify the receiver")
	}
}

func TestWithLive_AppendsToday(t *testing.T) {
	s := PriceSeries{{Date: day("2024-03-01"), Price: decimal.NewFromInt(1)}}
	got := s.WithLive(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local), decimal.NewFromInt(5))
	if len(got) != 2 {
		t.Fatalf("expected appended point, got %d points", len(got))
	}
	if got[1].Date.Format(DateLayout) != "2024-03-04" {
		t.Errorf("unexpected appended date %s", got[1].Date.Format(DateLayout))
	}
}

func TestWithLive_EmptySeries(t *testing.T) {
	var s PriceSeries
	if got := s.WithLive(time.Now(), decimal.NewFromInt(1)); len(got) != 0 {
		t.Errorf("expected empty series to stay empty, got %d points", len(got))
	}
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		period ChartPeriod
		want   string
	}{
		{PeriodWeek, "2024-06-08"},
		{PeriodMonth, "2024-05-16"},
		{PeriodYTD, "2024-01-01"},
		{PeriodYear, "2023-06-16"},
	}
	for _, tt := range tests {
		if got := tt.period.Start(end).Format(DateLayout); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.period, tt.want, got)
		}
	}
}

func TestWrapPeriodIndex(t *testing.T) {
	n := len(DashboardPeriods)
	tests := []struct{ in, want int }{
		{0, 0}, {1, 1}, {n, 0}, {-1, n - 1}, {n + 2, 2},
	}
	for _, tt := range tests {
		if got := WrapPeriodIndex(tt.in); got != tt.want {
			t.Errorf("WrapPeriodIndex(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseMetal(t *testing.T) {
	if m, err := ParseMetal(" Gold "); err != nil || m != Gold {
		t.Errorf("expected gold, got %q (%v)", m, err)
	}
	if _, err := ParseMetal("copper"); err == nil {
		t.Error("expected error for unknown metal")
	}
}
