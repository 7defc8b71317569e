package service

import (
	"sort"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

type ChartPoint struct {
	Label  string  `json:"label"`
	Month  string  `json:"month"`
	Weight float64 `json:"weight"`
	Trend  float64 `json:"trend"`
}

// MonthlySeries collapses the raw history to one point per calendar
// month, keeping the chronologically-last entry's weight for each
// month. Months are ordered by date, not by label.
func MonthlySeries(entries []model.WeightEntry, system model.UnitSystem) []ChartPoint {
	if len(entries) == 0 {
		return []ChartPoint{}
	}

	type monthBucket struct {
		month    time.Time
		lastDate time.Time
		weightKg float64
	}
	buckets := map[string]*monthBucket{}

	for _, e := range entries {
		month := time.Date(e.RecordedAt.Year(), e.RecordedAt.Month(), 1, 0, 0, 0, 0, time.Local)
		key := month.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			buckets[key] = &monthBucket{month: month, lastDate: e.RecordedAt, weightKg: e.WeightKg}
			continue
		}
		if e.RecordedAt.After(b.lastDate) || e.RecordedAt.Equal(b.lastDate) {
			b.lastDate = e.RecordedAt
			b.weightKg = e.WeightKg
		}
	}

	ordered := make([]*monthBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].month.Before(ordered[j].month) })

	points := make([]ChartPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, ChartPoint{
			Label:  b.month.Format("Jan"),
			Month:  b.month.Format("2006-01"),
			Weight: WeightForDisplay(b.weightKg, system),
		})
	}
	return points
}

// WithTrendLine fits an ordinary least-squares line of weight against
// the month index and fills Trend per point, rounded to two decimals.
// With fewer than two points the trend equals the raw value.
func WithTrendLine(points []ChartPoint) []ChartPoint {
	n := len(points)
	out := make([]ChartPoint, n)
	copy(out, points)
	if n < 2 {
		for i := range out {
			out[i].Trend = out[i].Weight
		}
		return out
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, p := range out {
		x := float64(i)
		sumX += x
		sumY += p.Weight
		sumXY += x * p.Weight
		sumX2 += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	for i := range out {
		out[i].Trend = round2(slope*float64(i) + intercept)
	}
	return out
}
