// Package cache は引数なしのローダを鮮度ウィンドウ付きで1スロットにメモ化する。
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultWindow = 600 * time.Second

// 同時ミスはこのキー1つにまとめる（スロットが1つなのでキーも1つ）
const slotKey = "slot"

type LoadFunc[T any] func(ctx context.Context) (T, error)

type Observer interface {
	CacheHit()
	CacheMiss()
	CacheLoaded(d time.Duration)
	CacheLoadFailed()
}

type entry[T any] struct {
	timestamp time.Time
	data      T
}

// Slot: EMPTY → FRESH → STALE → FRESH ...
// 取得済みのエントリは書き換えず、更新時は丸ごと差し替える
type Slot[T any] struct {
	mu     sync.RWMutex
	cur    *entry[T]
	window time.Duration
	load   LoadFunc[T]
	now    func() time.Time
	obs    Observer
	sf     singleflight.Group
}

type Option[T any] func(*Slot[T])

func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Slot[T]) { s.now = now }
}

func WithObserver[T any](obs Observer) Option[T] {
	return func(s *Slot[T]) { s.obs = obs }
}

func New[T any](window time.Duration, load LoadFunc[T], opts ...Option[T]) *Slot[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &Slot[T]{window: window, load: load, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Slot[T]) Window() time.Duration { return s.window }

// Get は新鮮なエントリがあればそれを返し、なければローダを1回だけ走らせる。
// ロード失敗時は何も保存せずエラーを返す
func (s *Slot[T]) Get(ctx context.Context) (T, error) {
	if data, ok := s.fresh(); ok {
		s.hit()
		return data, nil
	}
	s.miss()

	v, err, _ := s.sf.Do(slotKey, func() (any, error) {
		// 待っている間に別の呼び出しが更新済みかもしれない
		if data, ok := s.fresh(); ok {
			return data, nil
		}
		// 呼び出し元1つのキャンセルで他の待機者まで失敗させない
		loadCtx := context.WithoutCancel(ctx)
		began := s.now()
		data, err := s.load(loadCtx)
		if err != nil {
			if s.obs != nil {
				s.obs.CacheLoadFailed()
			}
			return nil, err
		}
		if s.obs != nil {
			s.obs.CacheLoaded(s.now().Sub(began))
		}
		s.mu.Lock()
		s.cur = &entry[T]{timestamp: s.now(), data: data}
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	data, _ := v.(T)
	return data, nil
}

// Invalidate は次の Get で必ず読み直させる
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
}

func (s *Slot[T]) fresh() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var zero T
	if s.cur == nil {
		return zero, false
	}
	// timestamp <= now - window なら古い
	if !s.cur.timestamp.After(s.now().Add(-s.window)) {
		return zero, false
	}
	return s.cur.data, true
}

func (s *Slot[T]) hit() {
	if s.obs != nil {
		s.obs.CacheHit()
	}
}

func (s *Slot[T]) miss() {
	if s.obs != nil {
		s.obs.CacheMiss()
	}
}
