package presence

import "encoding/json"

const (
	TotalHeaderLabel = "Weekday"
	TotalHeaderValue = "Presence (s)"
)

type UserResponse struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// ["Tue", 30047] の形で出す（グラフ側が配列を期待している）
type WeekdayValue struct {
	Label string
	Value any // float64 / int / ヘッダ行は string
}

func (v WeekdayValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.Label, v.Value})
}

// ["Mon", [1,1,1,12,0,0], [1,1,1,12,0,0]]
type StartEndRow struct {
	Weekday string
	Start   ClockVector
	End     ClockVector
}

func (r StartEndRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{r.Weekday, r.Start, r.End})
}
