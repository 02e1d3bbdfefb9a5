package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neolink-backend/internal/repo"
	"github.com/tbourn/neolink-backend/internal/services"
)

type memBlobs map[string][]byte

func (m memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return nil, repo.ErrNotFound
}

func (m memBlobs) Put(_ context.Context, key string, v []byte) error {
	m[key] = v
	return nil
}

func newSettingsRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gate", h.GetGate)
	r.POST("/gate/lock", h.LockGate)
	r.POST("/gate/unlock", h.UnlockGate)
	r.GET("/settings/theme", h.GetTheme)
	r.PUT("/settings/theme", h.PutTheme)
	return r
}

func TestGateHandlers(t *testing.T) {
	gate := &stubGate{}
	r := newSettingsRouter(New(&stubStore{}, gate, nil, Options{}))

	var st GateStatus
	_ = json.Unmarshal(serve(r, http.MethodGet, "/gate", "", nil).Body.Bytes(), &st)
	if st.Locked {
		t.Fatalf("gate should start unlocked")
	}

	if w := serve(r, http.MethodPost, "/gate/lock", "", nil); w.Code != http.StatusOK || !gate.locked {
		t.Fatalf("lock = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/gate/unlock", `{"pin":"9999"}`, nil); w.Code != http.StatusForbidden || !gate.locked {
		t.Fatalf("wrong pin = %d locked=%v", w.Code, gate.locked)
	}
	if w := serve(r, http.MethodPost, "/gate/unlock", `{"pin":""}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty pin = %d", w.Code)
	}
	w := serve(r, http.MethodPost, "/gate/unlock", `{"pin":"1234"}`, nil)
	st = GateStatus{}
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if w.Code != http.StatusOK || st.Locked || gate.locked {
		t.Fatalf("unlock = %d %+v", w.Code, st)
	}
}

func TestThemeHandlers(t *testing.T) {
	blobs := memBlobs{}
	svc := services.NewSettingsService(blobs, "theme")
	r := newSettingsRouter(New(&stubStore{}, &stubGate{}, svc, Options{}))

	var resp ThemeResponse
	_ = json.Unmarshal(serve(r, http.MethodGet, "/settings/theme", "", nil).Body.Bytes(), &resp)
	if resp.Theme != services.DefaultTheme() || len(resp.Presets) != len(services.Presets()) {
		t.Fatalf("default = %+v", resp)
	}

	cases := []struct {
		body   string
		status int
		want   services.Theme
	}{
		{`{"type":"Purple"}`, http.StatusOK, services.Theme{Type: "purple", Color: "#bc13fe"}},
		{`{"type":"custom","color":"#AbCdEf"}`, http.StatusOK, services.Theme{Type: "custom", Color: "#abcdef"}},
		// custom without a color keeps the active custom color
		{`{"type":"custom"}`, http.StatusOK, services.Theme{Type: "custom", Color: "#abcdef"}},
		{`{"type":"custom","color":"red"}`, http.StatusBadRequest, services.Theme{}},
		{`{"type":"neon"}`, http.StatusBadRequest, services.Theme{}},
		{`{}`, http.StatusBadRequest, services.Theme{}},
	}
	for _, tc := range cases {
		w := serve(r, http.MethodPut, "/settings/theme", tc.body, nil)
		if w.Code != tc.status {
			t.Fatalf("%s: status=%d want %d (%s)", tc.body, w.Code, tc.status, w.Body.String())
		}
		if tc.status != http.StatusOK {
			continue
		}
		resp = ThemeResponse{}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Theme != tc.want {
			t.Fatalf("%s: theme=%+v want %+v", tc.body, resp.Theme, tc.want)
		}
	}

	if got := svc.Theme(); got.Color != "#abcdef" {
		t.Fatalf("failed updates must keep the last good theme, got %+v", got)
	}
	if _, ok := blobs["theme"]; !ok {
		t.Fatalf("theme was not persisted")
	}
}
