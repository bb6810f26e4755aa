// README: Rule predicates deciding which multiplier types apply to a trip.
package multiplier

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Peak windows are inclusive at both ends: 07:00–09:59 and 17:00–19:59.
func isPeakHour(ctx TripContext) bool {
	h := ctx.DepartureTime.Hour()
	return (h >= 7 && h <= 9) || (h >= 17 && h <= 19)
}

func isWeekend(ctx TripContext) bool {
	d := ctx.DepartureTime.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// HolidayCalendar decides whether a departure time falls on a holiday.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, trip TripContext) (bool, error)
}

// WeatherRule decides whether the trip's weather context warrants a surcharge.
type WeatherRule interface {
	IsBadWeather(ctx context.Context, trip TripContext) (bool, error)
}

// DemandGauge decides whether the pickup area is currently in high demand.
type DemandGauge interface {
	IsHighDemand(ctx context.Context, trip TripContext) (bool, error)
}

// NopHolidayCalendar never signals a holiday.
type NopHolidayCalendar struct{}

func (NopHolidayCalendar) IsHoliday(context.Context, TripContext) (bool, error) {
	return false, nil
}

// NopWeatherRule never signals bad weather.
type NopWeatherRule struct{}

func (NopWeatherRule) IsBadWeather(context.Context, TripContext) (bool, error) {
	return false, nil
}

// NopDemandGauge never signals high demand.
type NopDemandGauge struct{}

func (NopDemandGauge) IsHighDemand(context.Context, TripContext) (bool, error) {
	return false, nil
}

// FixedDateHolidays matches the departure date against a configured list of
// MM-DD dates.
type FixedDateHolidays struct {
	dates map[string]struct{}
}

func NewFixedDateHolidays(dates []string) *FixedDateHolidays {
	m := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		m[strings.TrimSpace(d)] = struct{}{}
	}
	return &FixedDateHolidays{dates: m}
}

func (h *FixedDateHolidays) IsHoliday(_ context.Context, trip TripContext) (bool, error) {
	key := trip.DepartureTime.Format("01-02")
	_, ok := h.dates[key]
	return ok, nil
}

// ConditionListWeather matches the trip's weather string against a configured
// list of bad-weather conditions, case-insensitively.
type ConditionListWeather struct {
	conditions map[string]struct{}
}

func NewConditionListWeather(conditions []string) *ConditionListWeather {
	m := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		m[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	return &ConditionListWeather{conditions: m}
}

func (w *ConditionListWeather) IsBadWeather(_ context.Context, trip TripContext) (bool, error) {
	if trip.Weather == "" {
		return false, nil
	}
	_, ok := w.conditions[strings.ToLower(trip.Weather)]
	return ok, nil
}

const (
	demandKeyPrefix = "demand:%s"
	supplyKeyPrefix = "supply:%s"
)

// RedisDemandGauge reads per-area demand and supply counters and signals high
// demand when demand/supply reaches the configured ratio. Missing counters or
// zero supply never signal, so an unpopulated Redis behaves like NopDemandGauge.
type RedisDemandGauge struct {
	redis *redis.Client
	ratio float64
}

func NewRedisDemandGauge(client *redis.Client, ratio float64) *RedisDemandGauge {
	return &RedisDemandGauge{redis: client, ratio: ratio}
}

func (g *RedisDemandGauge) IsHighDemand(ctx context.Context, trip TripContext) (bool, error) {
	if g.ratio <= 0 || trip.Area == "" {
		return false, nil
	}
	demand, err := g.readCounter(ctx, fmt.Sprintf(demandKeyPrefix, trip.Area))
	if err != nil {
		return false, err
	}
	supply, err := g.readCounter(ctx, fmt.Sprintf(supplyKeyPrefix, trip.Area))
	if err != nil {
		return false, err
	}
	if supply <= 0 {
		return false, nil
	}
	return float64(demand)/float64(supply) >= g.ratio, nil
}

func (g *RedisDemandGauge) readCounter(ctx context.Context, key string) (int64, error) {
	val, err := g.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
