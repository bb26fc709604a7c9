package presence

import "time"

// Monday=0 ... Sunday=6
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// 出席のない曜日に入れる正午の代表値
var sentinelVector = ClockVector{1, 1, 1, 12, 0, 0}

type StartEnd struct {
	Start ClockVector
	End   ClockVector
}

func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// 曜日ごとの在席秒数リスト。入力の日付順に並ぶ
func GroupByWeekday(u *UserPresence) [7][]int {
	var out [7][]int
	for i := range out {
		out[i] = []int{}
	}
	if u == nil {
		return out
	}
	for _, d := range u.days {
		wd := weekdayIndex(d.Date)
		out[wd] = append(out[wd], Interval(d.Start, d.End))
	}
	return out
}

// 曜日ごとの代表的な開始/終了時刻
func GroupByWeekdayStartEnd(u *UserPresence) [7]StartEnd {
	var out [7]StartEnd
	var seen [7]bool
	if u != nil {
		for _, d := range u.days {
			wd := weekdayIndex(d.Date)
			start, end := d.Start.Vector(), d.End.Vector()
			if seen[wd] {
				start = AverageVectors(start, out[wd].Start)
				end = AverageVectors(end, out[wd].End)
			}
			out[wd] = StartEnd{Start: start, End: end}
			seen[wd] = true
		}
	}
	for wd := range out {
		if !seen[wd] {
			out[wd] = StartEnd{Start: sentinelVector, End: sentinelVector}
		}
	}
	return out
}
