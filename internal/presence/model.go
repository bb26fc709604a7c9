package presence

import (
	"slices"
	"time"
)

// ソース1行に対応（パース前）
type presenceRow struct {
	UserID string
	Date   string // "YYYY-MM-DD"
	Start  string // "HH:MM:SS"
	End    string // "HH:MM:SS"
}

// パース済みの1行
type AttendanceRecord struct {
	UserID int
	Date   time.Time
	Start  ClockTime
	End    ClockTime
}

// 1ユーザ1日分の在席記録
type DayPresence struct {
	Date  time.Time // UTC 0時
	Start ClockTime
	End   ClockTime
}

// ユーザ単位の記録。日付は最初に出現した順を保持する
type UserPresence struct {
	days  []DayPresence
	index map[time.Time]int
}

func newUserPresence() *UserPresence {
	return &UserPresence{index: make(map[time.Time]int)}
}

func (u *UserPresence) put(d DayPresence) {
	if i, ok := u.index[d.Date]; ok {
		// 同一日付は後勝ち（位置は最初の出現のまま）
		u.days[i] = d
		return
	}
	u.index[d.Date] = len(u.days)
	u.days = append(u.days, d)
}

func (u *UserPresence) Days() []DayPresence { return slices.Clone(u.days) }

func (u *UserPresence) Day(date time.Time) (DayPresence, bool) {
	i, ok := u.index[dateKey(date)]
	if !ok {
		return DayPresence{}, false
	}
	return u.days[i], true
}

func (u *UserPresence) Len() int { return len(u.days) }

// user_id → 日付 → {start, end}
// Loader が毎回新しく組み立て、返した後は変更しない
type RecordStore struct {
	users map[int]*UserPresence
}

func NewRecordStore() *RecordStore {
	return &RecordStore{users: make(map[int]*UserPresence)}
}

func (s *RecordStore) Put(userID int, date time.Time, start, end ClockTime) {
	u, ok := s.users[userID]
	if !ok {
		u = newUserPresence()
		s.users[userID] = u
	}
	u.put(DayPresence{Date: dateKey(date), Start: start, End: end})
}

func (s *RecordStore) add(r AttendanceRecord) {
	s.Put(r.UserID, r.Date, r.Start, r.End)
}

func (s *RecordStore) User(userID int) (*UserPresence, bool) {
	u, ok := s.users[userID]
	return u, ok
}

// 昇順
func (s *RecordStore) UserIDs() []int {
	out := make([]int, 0, len(s.users))
	for id := range s.users {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *RecordStore) Len() int { return len(s.users) }

// 時刻・タイムゾーンを落として UTC の日付だけにする
func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
