package presence

// 平均を取るのは先頭5要素（年月日・時・分）まで。秒は新しい記録の値がそのまま残る。
// 既存のグラフ出力がこの挙動に合わせてあるので直さないこと
const averagedFields = 5

// 算術平均。空なら 0
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(Sum(values)) / float64(len(values))
}

func Sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// cur と prev の要素ごとの平均（整数切り捨て）
func AverageVectors(cur, prev ClockVector) ClockVector {
	out := cur
	for i := 0; i < averagedFields; i++ {
		out[i] = (cur[i] + prev[i]) / 2
	}
	return out
}

func meanRows(weekdays [7][]int) []WeekdayValue {
	out := make([]WeekdayValue, 0, len(weekdays))
	for wd, intervals := range weekdays {
		out = append(out, WeekdayValue{Label: WeekdayLabels[wd], Value: Mean(intervals)})
	}
	return out
}

func totalRows(weekdays [7][]int) []WeekdayValue {
	out := make([]WeekdayValue, 0, len(weekdays)+1)
	out = append(out, WeekdayValue{Label: TotalHeaderLabel, Value: TotalHeaderValue})
	for wd, intervals := range weekdays {
		out = append(out, WeekdayValue{Label: WeekdayLabels[wd], Value: Sum(intervals)})
	}
	return out
}

func startEndRows(weekdays [7]StartEnd) []StartEndRow {
	out := make([]StartEndRow, 0, len(weekdays))
	for wd, se := range weekdays {
		out = append(out, StartEndRow{Weekday: WeekdayLabels[wd], Start: se.Start, End: se.End})
	}
	return out
}
