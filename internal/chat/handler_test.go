package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(f fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat", NewHandler(f.svc).HandleChat)
	return r
}

func TestHandleChat(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("down")})
	r := newTestRouter(f)

	body := `{"user_id": 42, "first_name": "Jane", "text": "I ate 2 eggs"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var reply Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatal(err)
	}
	if len(reply.Logged) != 1 || reply.Logged[0].Name != "egg" {
		t.Errorf("got %+v", reply.Logged)
	}

	logs, err := f.logs.TodayLogs(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Errorf("got %+v", logs)
	}
}

func TestHandleChatRejectsMissingFields(t *testing.T) {
	f := newFixture(&scriptedClient{err: errors.New("down")})
	r := newTestRouter(f)

	for _, body := range []string{`{}`, `{"text": "hi"}`, `{"user_id": 42}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", body, w.Code)
		}
	}
}
