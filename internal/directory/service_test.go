package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const usersXML = `<?xml version="1.0" encoding="UTF-8"?>
<intranet>
  <server>
    <name>intranet</name>
    <protocol>https</protocol>
    <host>intranet.example.com</host>
    <port>443</port>
  </server>
  <users>
    <user id="10">
      <avatar>/api/images/users/10</avatar>
      <name>Maria K.</name>
    </user>
    <user id="11">
      <avatar>/api/images/users/11</avatar>
      <name>Tomasz W.</name>
    </user>
  </users>
</intranet>`

func newDirectoryServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(usersXML))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestResolve_FromHTTP(t *testing.T) {
	srv, hits := newDirectoryServer(t, http.StatusOK)
	svc := NewService(srv.URL, time.Second, time.Minute, nil, nil)

	got := svc.Resolve(context.Background(), 10)
	want := User{Name: "Maria K.", ImageURL: "https://intranet.example.com/api/images/users/10"}
	if got != want {
		t.Fatalf("resolve(10) = %+v, want %+v", got, want)
	}
	// 2回目はキャッシュから
	_ = svc.Resolve(context.Background(), 11)
	if hits.Load() != 1 {
		t.Fatalf("directory fetched %d times", hits.Load())
	}
}

func TestResolve_UnknownUser(t *testing.T) {
	srv, _ := newDirectoryServer(t, http.StatusOK)
	svc := NewService(srv.URL, time.Second, time.Minute, nil, nil)

	if got := svc.Resolve(context.Background(), 999); got != Anonymous() {
		t.Fatalf("resolve(999) = %+v", got)
	}
}

func TestResolve_RemoteFailureFallsBack(t *testing.T) {
	srv, _ := newDirectoryServer(t, http.StatusInternalServerError)
	svc := NewService(srv.URL, time.Second, time.Minute, nil, nil)

	if got := svc.Resolve(context.Background(), 10); got != Anonymous() {
		t.Fatalf("resolve(10) = %+v", got)
	}
}

// status を途中で切り替えられるディレクトリ
func newFlakyDirectoryServer(t *testing.T) (*httptest.Server, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	var hits, status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(usersXML))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &status
}

func TestResolve_FailureIsNotRetriedDuringBackoff(t *testing.T) {
	srv, hits, status := newFlakyDirectoryServer(t)
	status.Store(http.StatusInternalServerError)
	svc := NewService(srv.URL, time.Second, time.Minute, nil, nil)
	now := time.Date(2013, 9, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if got := svc.Resolve(ctx, 10); got != Anonymous() {
			t.Fatalf("resolve(10) = %+v", got)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("directory fetched %d times during backoff", hits.Load())
	}

	// バックオフ明けに再取得して復旧する
	status.Store(http.StatusOK)
	now = now.Add(FailureBackoff)
	if got := svc.Resolve(ctx, 10); got.Name != "Maria K." {
		t.Fatalf("resolve(10) after backoff = %+v", got)
	}
	if hits.Load() != 2 {
		t.Fatalf("directory fetched %d times", hits.Load())
	}
}

func TestResolve_ServesLastGoodWhenRefreshFails(t *testing.T) {
	srv, hits, status := newFlakyDirectoryServer(t)
	// window をほぼ 0 にして毎回再取得させる
	svc := NewService(srv.URL, time.Second, time.Nanosecond, nil, nil)
	ctx := context.Background()

	if got := svc.Resolve(ctx, 10); got.Name != "Maria K." {
		t.Fatalf("resolve(10) = %+v", got)
	}
	status.Store(http.StatusInternalServerError)
	for i := 0; i < 3; i++ {
		time.Sleep(time.Millisecond)
		if got := svc.Resolve(ctx, 11); got.Name != "Tomasz W." {
			t.Fatalf("resolve(11) during outage = %+v", got)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("directory fetched %d times", hits.Load())
	}
}

func TestResolve_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.xml")
	if err := os.WriteFile(path, []byte(usersXML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc := NewService(path, time.Second, time.Minute, nil, nil)

	if got := svc.Resolve(context.Background(), 11); got.Name != "Tomasz W." {
		t.Fatalf("resolve(11) = %+v", got)
	}
}

func TestResolve_NoSource(t *testing.T) {
	svc := NewService("", time.Second, time.Minute, nil, nil)
	if got := svc.Resolve(context.Background(), 10); got != Anonymous() {
		t.Fatalf("resolve(10) = %+v", got)
	}
}

func TestGetUserHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, _ := newDirectoryServer(t, http.StatusOK)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewService(srv.URL, time.Second, time.Minute, nil, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/10", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Maria K." {
		t.Fatalf("body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for bad id = %d", rec.Code)
	}
}
