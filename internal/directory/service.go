package directory

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"presence-analyzer/internal/platform/cache"
)

var (
	ErrNoSource = errors.New("user directory source is not configured")
	errBackoff  = errors.New("user directory recently failed")
)

// 取得失敗後、この間は取りに行かない
const FailureBackoff = 30 * time.Second

// Service: 社内ディレクトリ(users.xml)から名前とアバターを引く。
// 取得に失敗しても呼び出し側には Anonymous を返す
type Service struct {
	source string // http(s) URL またはローカルファイル
	client *http.Client
	users  *cache.Slot[map[int]User]
	log    *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	lastGood map[int]User
	retryAt  time.Time
}

func NewService(source string, timeout, window time.Duration, obs cache.Observer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		source: source,
		client: &http.Client{Timeout: timeout},
		log:    log,
		now:    time.Now,
	}
	opts := []cache.Option[map[int]User]{}
	if obs != nil {
		opts = append(opts, cache.WithObserver[map[int]User](obs))
	}
	s.users = cache.New[map[int]User](window, s.load, opts...)
	return s
}

func (s *Service) Resolve(ctx context.Context, userID int) User {
	users, err := s.users.Get(ctx)
	if err != nil {
		// 失敗は load 側でログ済み
		return Anonymous()
	}
	u, ok := users[userID]
	if !ok {
		s.log.Debug("user not in directory", zap.Int("user_id", userID))
		return Anonymous()
	}
	return u
}

// load: 失敗したら FailureBackoff の間は再取得しない。
// 前回の取得結果があれば失敗中もそれを返す
func (s *Service) load(ctx context.Context) (map[int]User, error) {
	s.mu.Lock()
	if s.now().Before(s.retryAt) {
		last := s.lastGood
		s.mu.Unlock()
		if last != nil {
			return last, nil
		}
		return nil, errBackoff
	}
	s.mu.Unlock()

	users, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, ErrNoSource) {
			return nil, err
		}
		s.retryAt = s.now().Add(FailureBackoff)
		s.log.Warn("user directory unavailable",
			zap.String("source", s.source),
			zap.Bool("serving_last_good", s.lastGood != nil),
			zap.Error(err))
		if s.lastGood != nil {
			return s.lastGood, nil
		}
		return nil, err
	}
	s.lastGood = users
	s.retryAt = time.Time{}
	return users, nil
}

func (s *Service) fetch(ctx context.Context) (map[int]User, error) {
	body, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var doc document
	if err := xml.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode user directory: %w", err)
	}
	base := doc.Server.baseURL()
	out := make(map[int]User, len(doc.Users))
	for _, u := range doc.Users {
		out[u.ID] = User{Name: u.Name, ImageURL: base + u.Avatar}
	}
	s.log.Info("user directory loaded", zap.Int("users", len(out)))
	return out, nil
}

func (s *Service) open(ctx context.Context) (io.ReadCloser, error) {
	switch {
	case s.source == "":
		return nil, ErrNoSource
	case strings.HasPrefix(s.source, "http://"), strings.HasPrefix(s.source, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, nil)
		if err != nil {
			return nil, err
		}
		res, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch user directory: %w", err)
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("fetch user directory: unexpected status %d", res.StatusCode)
		}
		return res.Body, nil
	default:
		f, err := os.Open(s.source)
		if err != nil {
			return nil, fmt.Errorf("open user directory: %w", err)
		}
		return f, nil
	}
}
