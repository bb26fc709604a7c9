package presence

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// 日付を持たない時刻（時・分・秒）
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// 先頭3要素は年月日のダミー(1,1,1)。フロントで Date として組み立てるための形
type ClockVector [6]int

func NewClockTime(h, m, s int) (ClockTime, error) {
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return ClockTime{}, fmt.Errorf("clock time out of range: %02d:%02d:%02d", h, m, s)
	}
	return ClockTime{Hour: h, Minute: m, Second: s}, nil
}

// "HH:MM:SS" をパース。秒の小数部は受け付けない
func ParseClockTime(s string) (ClockTime, error) {
	if strings.ContainsAny(s, ".,") {
		return ClockTime{}, fmt.Errorf("clock time %q: unexpected text after seconds", s)
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t ClockTime) Vector() ClockVector {
	return ClockVector{1, 1, 1, t.Hour, t.Minute, t.Second}
}

func SecondsSinceMidnight(t ClockTime) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// end - start（秒）。end が start より前なら負の値を返す（0 に丸めない）
func Interval(start, end ClockTime) int {
	return SecondsSinceMidnight(end) - SecondsSinceMidnight(start)
}
