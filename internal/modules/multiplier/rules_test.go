package multiplier

import (
	"context"
	"testing"
	"time"
)

func at(hour int) TripContext {
	// 2026-03-10 is a Tuesday.
	return TripContext{DepartureTime: time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)}
}

func TestIsPeakHour(t *testing.T) {
	tests := []struct {
		hour int
		want bool
	}{
		{6, false},
		{7, true}, // window start, inclusive
		{8, true},
		{9, true}, // window end, inclusive
		{10, false},
		{16, false},
		{17, true},
		{19, true},
		{20, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := isPeakHour(at(tt.hour)); got != tt.want {
			t.Errorf("hour %d: isPeakHour = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		day  int // March 2026: the 7th is a Saturday
		want bool
	}{
		{6, false}, // Friday
		{7, true},  // Saturday
		{8, true},  // Sunday
		{9, false}, // Monday
	}
	for _, tt := range tests {
		trip := TripContext{DepartureTime: time.Date(2026, 3, tt.day, 12, 0, 0, 0, time.UTC)}
		if got := isWeekend(trip); got != tt.want {
			t.Errorf("2026-03-%02d: isWeekend = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestNopRulesNeverApply(t *testing.T) {
	ctx := context.Background()
	trip := at(8)
	trip.Weather = "heavy_rain"

	if ok, _ := (NopHolidayCalendar{}).IsHoliday(ctx, trip); ok {
		t.Error("NopHolidayCalendar fired")
	}
	if ok, _ := (NopWeatherRule{}).IsBadWeather(ctx, trip); ok {
		t.Error("NopWeatherRule fired")
	}
	if ok, _ := (NopDemandGauge{}).IsHighDemand(ctx, trip); ok {
		t.Error("NopDemandGauge fired")
	}
}

func TestFixedDateHolidays(t *testing.T) {
	cal := NewFixedDateHolidays([]string{"01-01", "12-25"})
	ctx := context.Background()

	christmas := TripContext{DepartureTime: time.Date(2026, 12, 25, 9, 0, 0, 0, time.UTC)}
	if ok, _ := cal.IsHoliday(ctx, christmas); !ok {
		t.Error("expected 12-25 to be a holiday")
	}
	ordinary := TripContext{DepartureTime: time.Date(2026, 12, 24, 9, 0, 0, 0, time.UTC)}
	if ok, _ := cal.IsHoliday(ctx, ordinary); ok {
		t.Error("expected 12-24 not to be a holiday")
	}
}

func TestConditionListWeather(t *testing.T) {
	rule := NewConditionListWeather([]string{"rain", "heavy_rain", "snow"})
	ctx := context.Background()

	tests := []struct {
		weather string
		want    bool
	}{
		{"rain", true},
		{"Heavy_Rain", true},
		{"clear", false},
		{"", false},
	}
	for _, tt := range tests {
		trip := at(12)
		trip.Weather = tt.weather
		if got, _ := rule.IsBadWeather(ctx, trip); got != tt.want {
			t.Errorf("weather %q: IsBadWeather = %v, want %v", tt.weather, got, tt.want)
		}
	}
}
