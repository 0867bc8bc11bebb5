package analytics

import "testing"

// daysAt builds n day totals with the same calorie figure.
func daysAt(n, calories int) []DayTotal {
	out := make([]DayTotal, n)
	for i := range out {
		out[i] = DayTotal{Day: "2024-01-01", Calories: calories}
	}
	return out
}

func TestComputeEstimate(t *testing.T) {
	t.Run("EmptyWindow", func(t *testing.T) {
		est := ComputeEstimate(EstimateInput{})
		if est.DaysLogged != 0 || est.AvgDailyCalories != 0 {
			t.Errorf("Expected zero intake figures, got %+v", est)
		}
		if est.HasEnoughData {
			t.Error("Expected HasEnoughData=false for empty window")
		}
		if !est.IsDataRealistic {
			t.Error("Expected IsDataRealistic=true when no correction was attempted")
		}
		if est.TotalWeightChange != 0 {
			t.Errorf("Expected no weight change, got %v", est.TotalWeightChange)
		}
	})

	t.Run("DeficitCorrection", func(t *testing.T) {
		// 2200 kcal/day average with 1.4 kg lost over 14 days:
		// imbalance = -1.4*7700/14 = -770, within bounds, so
		// maintenance = 2200 - (-770) = 2970.
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(14, 2200),
			WeightSamples: []WeightSample{
				{Day: "2024-01-01", WeightKg: 81.4},
				{Day: "2024-01-07", WeightKg: 80.9},
				{Day: "2024-01-14", WeightKg: 80.0},
			},
			TargetWeeklyChange: -0.5,
		})
		if est.AvgDailyCalories != 2200 {
			t.Errorf("Expected avg 2200, got %d", est.AvgDailyCalories)
		}
		if est.TotalWeightChange != -1.4 {
			t.Errorf("Expected weight change -1.4, got %v", est.TotalWeightChange)
		}
		if est.MaintenanceCalories != 2970 {
			t.Errorf("Expected maintenance 2970, got %d", est.MaintenanceCalories)
		}
		// goal = 2970 + (-0.5*7700/7) = 2970 - 550 = 2420
		if est.GoalCalories != 2420 {
			t.Errorf("Expected goal 2420, got %d", est.GoalCalories)
		}
		if !est.HasEnoughData {
			t.Error("Expected HasEnoughData=true")
		}
		if !est.IsDataRealistic {
			t.Error("Expected IsDataRealistic=true")
		}
	})

	t.Run("IntermediateSamplesIgnored", func(t *testing.T) {
		// Only the chronologically first and last samples matter.
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(10, 2000),
			WeightSamples: []WeightSample{
				{Day: "2024-01-01", WeightKg: 80},
				{Day: "2024-01-05", WeightKg: 95}, // outlier in the middle
				{Day: "2024-01-10", WeightKg: 79},
			},
		})
		if est.TotalWeightChange != -1 {
			t.Errorf("Expected weight change -1, got %v", est.TotalWeightChange)
		}
		if est.StartWeight != 80 || est.EndWeight != 79 {
			t.Errorf("Expected start/end 80/79, got %v/%v", est.StartWeight, est.EndWeight)
		}
	})

	t.Run("UnrealisticDataGuard", func(t *testing.T) {
		// +6 kg over 7 days: imbalance = 6*7700/7 = 6600 > 3000.
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(7, 2500),
			WeightSamples: []WeightSample{
				{Day: "2024-01-01", WeightKg: 70},
				{Day: "2024-01-07", WeightKg: 76},
			},
		})
		if est.IsDataRealistic {
			t.Error("Expected IsDataRealistic=false")
		}
		if est.MaintenanceCalories != 2500 {
			t.Errorf("Expected maintenance to equal avg 2500, got %d", est.MaintenanceCalories)
		}
		if !est.HasEnoughData {
			t.Error("Expected HasEnoughData=true; implausible data is flagged, not rejected")
		}
	})

	t.Run("InsufficientDaysSkipsCorrection", func(t *testing.T) {
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(3, 2000),
			WeightSamples: []WeightSample{
				{Day: "2024-01-01", WeightKg: 80},
				{Day: "2024-01-03", WeightKg: 78},
			},
		})
		if est.HasEnoughData {
			t.Error("Expected HasEnoughData=false with 3 logged days")
		}
		if est.MaintenanceCalories != 2000 {
			t.Errorf("Expected uncorrected maintenance 2000, got %d", est.MaintenanceCalories)
		}
	})

	t.Run("FewerThanTwoSamplesFallsBack", func(t *testing.T) {
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(10, 2300),
			WeightSamples: []WeightSample{{Day: "2024-01-01", WeightKg: 80}},
		})
		if est.TotalWeightChange != 0 {
			t.Errorf("Expected zero weight change with one sample, got %v", est.TotalWeightChange)
		}
		if est.MaintenanceCalories != 2300 {
			t.Errorf("Expected maintenance 2300, got %d", est.MaintenanceCalories)
		}
		if est.HasEnoughData {
			t.Error("Expected HasEnoughData=false with one sample")
		}
	})

	t.Run("ImbalanceClampedToBounds", func(t *testing.T) {
		// -2 kg over 7 days: imbalance = -2200, under the implausibility
		// threshold but below the -1000 floor, so correction is capped:
		// maintenance = 2000 - (-1000) = 3000.
		est := ComputeEstimate(EstimateInput{
			DailyCalories: daysAt(7, 2000),
			WeightSamples: []WeightSample{
				{Day: "2024-01-01", WeightKg: 82},
				{Day: "2024-01-07", WeightKg: 80},
			},
		})
		if !est.IsDataRealistic {
			t.Error("Expected IsDataRealistic=true below the implausibility threshold")
		}
		if est.MaintenanceCalories != 3000 {
			t.Errorf("Expected maintenance 3000 with clamped imbalance, got %d", est.MaintenanceCalories)
		}
	})

	t.Run("CalorieBandClamps", func(t *testing.T) {
		t.Run("Ceiling", func(t *testing.T) {
			est := ComputeEstimate(EstimateInput{DailyCalories: daysAt(10, 6000)})
			if est.MaintenanceCalories != 4000 {
				t.Errorf("Expected maintenance clamped to 4000, got %d", est.MaintenanceCalories)
			}
			if est.GoalCalories != 4000 {
				t.Errorf("Expected goal clamped to 4000, got %d", est.GoalCalories)
			}
		})
		t.Run("Floor", func(t *testing.T) {
			est := ComputeEstimate(EstimateInput{
				DailyCalories:      daysAt(10, 900),
				TargetWeeklyChange: -0.5,
			})
			if est.MaintenanceCalories != 1200 {
				t.Errorf("Expected maintenance clamped to 1200, got %d", est.MaintenanceCalories)
			}
			if est.GoalCalories != 1200 {
				t.Errorf("Expected goal clamped to 1200, got %d", est.GoalCalories)
			}
		})
	})

	t.Run("GoalOffsetFromTarget", func(t *testing.T) {
		// Muscle-gain target +0.25 kg/week adds 7700*0.25/7 = 275 kcal/day.
		est := ComputeEstimate(EstimateInput{
			DailyCalories:      daysAt(10, 2400),
			TargetWeeklyChange: 0.25,
		})
		if est.GoalCalories != 2675 {
			t.Errorf("Expected goal 2675, got %d", est.GoalCalories)
		}
	})
}
