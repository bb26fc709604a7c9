package presence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), svc)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Users(t *testing.T) {
	rec := get(newTestRouter(t), "/api/v1/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0]["user_id"] != 10.0 || got[0]["name"] != "User 10" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHandler_PresenceWeekday(t *testing.T) {
	rec := get(newTestRouter(t), "/api/v1/presence_weekday/10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `[["Weekday","Presence (s)"],["Mon",0],["Tue",30047],["Wed",24465],["Thu",23705],["Fri",0],["Sat",0],["Sun",0]]`
	if rec.Body.String() != want {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHandler_MeanTimeWeekday(t *testing.T) {
	rec := get(newTestRouter(t), "/api/v1/mean_time_weekday/11")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `[["Mon",24123],["Tue",16564],["Wed",25321],["Thu",22984],["Fri",6426],["Sat",0],["Sun",0]]`
	if rec.Body.String() != want {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHandler_PresenceStartEnd(t *testing.T) {
	rec := get(newTestRouter(t), "/api/v1/presence_start_end/10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got [][]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("rows = %d", len(got))
	}
	mon, _ := json.Marshal(got[0])
	if string(mon) != `["Mon",[1,1,1,12,0,0],[1,1,1,12,0,0]]` {
		t.Fatalf("Mon = %s", mon)
	}
	tue, _ := json.Marshal(got[1])
	if string(tue) != `["Tue",[1,1,1,9,39,5],[1,1,1,17,59,52]]` {
		t.Fatalf("Tue = %s", tue)
	}
}

func TestHandler_Errors(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		path   string
		status int
		code   Code
	}{
		{"/api/v1/mean_time_weekday/999", http.StatusNotFound, CodeNotFound},
		{"/api/v1/presence_weekday/999", http.StatusNotFound, CodeNotFound},
		{"/api/v1/presence_start_end/999", http.StatusNotFound, CodeNotFound},
		{"/api/v1/presence_start_end/abc", http.StatusBadRequest, CodeInvalidArgument},
	}
	for _, tc := range cases {
		rec := get(r, tc.path)
		if rec.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.path, rec.Code, tc.status)
			continue
		}
		var body APIError
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: decode: %v", tc.path, err)
			continue
		}
		if body.Code != tc.code {
			t.Errorf("%s: code = %s, want %s", tc.path, body.Code, tc.code)
		}
	}
}
