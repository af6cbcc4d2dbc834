// Package simulators holds the sales-demo projections. Every function is
// pure; out-of-range inputs are clamped rather than rejected.
package simulators

import "math"

// GiftPlanInput drives the gifting plan projection.
type GiftPlanInput struct {
	GiftAmount      float64 `json:"gift_amount"`
	GiftsReceived   int     `json:"gifts_received"`
	AdminFeePercent float64 `json:"admin_fee_percent"`
}

// GiftPlanStats is the gifting plan outcome for one member.
type GiftPlanStats struct {
	Gross      float64 `json:"gross"`
	AdminFee   float64 `json:"admin_fee"`
	Net        float64 `json:"net"`
	Profit     float64 `json:"profit"`
	ROIPercent float64 `json:"roi_percent"`
}

// GiftPlan: a member gives one gift of GiftAmount and receives
// GiftsReceived gifts of the same amount, less the admin fee.
func GiftPlan(in GiftPlanInput) GiftPlanStats {
	amount := clamp(in.GiftAmount, 1, 100_000)
	gifts := clampInt(in.GiftsReceived, 0, 1_000)
	feePercent := clamp(in.AdminFeePercent, 0, 100)

	gross := amount * float64(gifts)
	fee := gross * feePercent / 100
	net := gross - fee
	return GiftPlanStats{
		Gross:      round2(gross),
		AdminFee:   round2(fee),
		Net:        round2(net),
		Profit:     round2(net - amount),
		ROIPercent: round2((net - amount) / amount * 100),
	}
}

// GrowthPlanInput drives the growth plan projection. ReferralBonus is a flat
// amount added at the end of every month.
type GrowthPlanInput struct {
	Principal          float64 `json:"principal"`
	MonthlyRatePercent float64 `json:"monthly_rate_percent"`
	Months             int     `json:"months"`
	Compounding        bool    `json:"compounding"`
	ReferralBonus      float64 `json:"referral_bonus"`
}

// GrowthPoint is the balance at the end of a month.
type GrowthPoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// GrowthPlanStats is the growth plan outcome.
type GrowthPlanStats struct {
	FinalValue float64       `json:"final_value"`
	Earnings   float64       `json:"earnings"`
	Bonuses    float64       `json:"bonuses"`
	Series     []GrowthPoint `json:"series"`
}

func GrowthPlan(in GrowthPlanInput) GrowthPlanStats {
	principal := clamp(in.Principal, 0, 10_000_000)
	rate := clamp(in.MonthlyRatePercent, 0, 100) / 100
	months := clampInt(in.Months, 1, 120)
	bonus := clamp(in.ReferralBonus, 0, 1_000_000)

	value := principal
	series := make([]GrowthPoint, 0, months)
	for month := 1; month <= months; month++ {
		if in.Compounding {
			value += value * rate
		} else {
			value += principal * rate
		}
		value += bonus
		series = append(series, GrowthPoint{Month: month, Value: round2(value)})
	}
	bonuses := bonus * float64(months)
	return GrowthPlanStats{
		FinalValue: round2(value),
		Earnings:   round2(value - principal - bonuses),
		Bonuses:    round2(bonuses),
		Series:     series,
	}
}

// MonolineInput drives the monoline queue projection. A position cycles
// once CycleSize members have joined for every position ahead of it,
// itself included.
type MonolineInput struct {
	Position      int     `json:"position"`
	JoinsPerDay   int     `json:"joins_per_day"`
	CycleSize     int     `json:"cycle_size"`
	EntryFee      float64 `json:"entry_fee"`
	PayoutPercent float64 `json:"payout_percent"`
}

// MonolineStats is the queue outcome. DaysToCycle is zero and Reachable
// false when nobody joins.
type MonolineStats struct {
	JoinsNeeded   int     `json:"joins_needed"`
	DaysToCycle   int     `json:"days_to_cycle"`
	Reachable     bool    `json:"reachable"`
	Payout        float64 `json:"payout"`
	DailyCycles   float64 `json:"daily_cycles"`
	CycleRevenue  float64 `json:"cycle_revenue"`
	CompanyMargin float64 `json:"company_margin"`
}

func MonolineQueue(in MonolineInput) MonolineStats {
	position := clampInt(in.Position, 1, 1_000_000)
	joins := clampInt(in.JoinsPerDay, 0, 100_000)
	cycleSize := clampInt(in.CycleSize, 1, 100)
	fee := clamp(in.EntryFee, 0, 100_000)
	payoutPercent := clamp(in.PayoutPercent, 0, 1_000)

	needed := position * cycleSize
	revenue := fee * float64(cycleSize)
	payout := fee * payoutPercent / 100
	stats := MonolineStats{
		JoinsNeeded:   needed,
		Payout:        round2(payout),
		DailyCycles:   round2(float64(joins) / float64(cycleSize)),
		CycleRevenue:  round2(revenue),
		CompanyMargin: round2(revenue - payout),
	}
	if joins > 0 {
		stats.Reachable = true
		stats.DaysToCycle = (needed + joins - 1) / joins
	}
	return stats
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
