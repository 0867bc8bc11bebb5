// Package analytics estimates maintenance and goal calories from the
// relationship between logged intake and observed weight change, and
// assembles the per-user analytics summary.
package analytics

import "math"

// Domain heuristics. These are behavioral constants, not derived values.
const (
	// kcalPerKg approximates the energy content of one kilogram of body mass.
	kcalPerKg = 7700

	// implausibleImbalance is the daily energy imbalance (kcal) beyond which
	// the weight data is treated as unrealistic rather than corrected for.
	implausibleImbalance = 3000

	// Clamp bounds for the daily imbalance used to correct the intake
	// average toward maintenance. Negative imbalance means weight lost.
	imbalanceFloor = -1000
	imbalanceCeil  = 1500

	// Physiologically sane band for any calorie figure we emit.
	minCalories = 1200
	maxCalories = 4000
)

// WeightSample is one weigh-in inside the estimation window.
type WeightSample struct {
	Day      string  `json:"date"`
	WeightKg float64 `json:"weight"`
}

// EstimateInput is the estimation window: per-day calorie totals (days
// without logs absent), weight samples ordered chronologically, and the
// target weekly weight change implied by the user's goal.
type EstimateInput struct {
	DailyCalories      []DayTotal
	WeightSamples      []WeightSample
	TargetWeeklyChange float64
}

// DayTotal is one day's summed calorie intake.
type DayTotal struct {
	Day      string `json:"date"`
	Calories int    `json:"calories"`
}

// Estimate is the computed maintenance/goal figures plus data-quality flags.
type Estimate struct {
	DaysLogged          int     `json:"days_logged"`
	AvgDailyCalories    int     `json:"avg_daily_calories"`
	TotalWeightChange   float64 `json:"total_weight_change_kg"`
	StartWeight         float64 `json:"start_weight_kg"`
	EndWeight           float64 `json:"end_weight_kg"`
	MaintenanceCalories int     `json:"maintenance_calories"`
	GoalCalories        int     `json:"goal_calories"`
	HasEnoughData       bool    `json:"has_enough_data"`
	IsDataRealistic     bool    `json:"is_data_realistic"`
}

// minTrackedDays is the logging coverage below which the estimate is served
// with HasEnoughData=false and no energy-balance correction.
const minTrackedDays = 7

// ComputeEstimate derives maintenance and goal calories from an estimation
// window. Sparse windows degrade to identity values instead of failing:
// with no logged days everything is zero-based, with fewer than two weight
// samples the intake average stands in for maintenance.
func ComputeEstimate(in EstimateInput) Estimate {
	est := Estimate{
		DaysLogged:      len(in.DailyCalories),
		IsDataRealistic: true,
	}

	var totalCalories int
	for _, d := range in.DailyCalories {
		totalCalories += d.Calories
	}
	if est.DaysLogged > 0 {
		est.AvgDailyCalories = int(math.Round(float64(totalCalories) / float64(est.DaysLogged)))
	}

	samples := len(in.WeightSamples)
	if samples >= 2 {
		first := in.WeightSamples[0]
		last := in.WeightSamples[samples-1]
		est.StartWeight = first.WeightKg
		est.EndWeight = last.WeightKg
		est.TotalWeightChange = round2(last.WeightKg - first.WeightKg)
	} else if samples == 1 {
		est.StartWeight = in.WeightSamples[0].WeightKg
		est.EndWeight = in.WeightSamples[0].WeightKg
	}

	est.HasEnoughData = est.DaysLogged >= minTrackedDays && samples >= 2

	maintenance := est.AvgDailyCalories
	if est.HasEnoughData {
		imbalance := est.TotalWeightChange * kcalPerKg / float64(est.DaysLogged)
		if math.Abs(imbalance) > implausibleImbalance {
			// A swing this large cannot come from diet alone; keep the raw
			// intake average and flag the window instead of correcting.
			est.IsDataRealistic = false
		} else {
			imbalance = clamp(imbalance, imbalanceFloor, imbalanceCeil)
			maintenance = int(math.Round(float64(est.AvgDailyCalories) - imbalance))
		}
	}
	est.MaintenanceCalories = clampInt(maintenance, minCalories, maxCalories)

	goal := float64(est.MaintenanceCalories) + in.TargetWeeklyChange*kcalPerKg/7
	est.GoalCalories = clampInt(int(math.Round(goal)), minCalories, maxCalories)

	return est
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
