package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/infrastructure/config"
	"github.com/assetdesk/assetdesk/internal/infrastructure/database/dbtest"
	sharedConfig "github.com/assetdesk/assetdesk/internal/shared/config"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type string `json:"type"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *Router
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  sharedConfig.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Auth:    sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 5}},
		Metrics: sharedConfig.MetricsConfig{Enabled: true, Path: "/metrics"},
		Events:  sharedConfig.EventsConfig{Channel: "assetdesk:test"},
	}

	router, err := NewRouter(dbtest.New(t), cfg, logger.NewNopLogger())
	require.NoError(t, err)
	router.SetupRoutes(cfg)
	t.Cleanup(router.Shutdown)

	token, _, err := router.jwtSvc.Generate(7)
	require.NoError(t, err)

	return &testServer{t: t, router: router, token: token}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func (s *testServer) createAsset(class, number string, seats int) uint {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/assets", gin.H{
		"class": class, "asset_number": number, "name": number, "max_license_count": seats,
	})
	require.Equal(s.t, http.StatusCreated, code)
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &out))
	return out.ID
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, string(env.Data))
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	code, _ := s.do(http.MethodGet, "/assets", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_MetricsExposed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LicenseSeatsAndForceRetire(t *testing.T) {
	s := newTestServer(t)

	dev1 := s.createAsset("device", "DEV-1", 0)
	dev2 := s.createAsset("device", "DEV-2", 0)
	sw := s.createAsset("software", "SW-1", 1)

	code, _ := s.do(http.MethodPost, fmt.Sprintf("/assets/%d/attachments", dev1), gin.H{
		"target_kind": "software", "target_id": sw,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, fmt.Sprintf("/assets/%d/attachments", dev2), gin.H{
		"target_kind": "software", "target_id": sw,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/assets/%d/retire", sw), gin.H{"comment": "eol"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/assets/%d/license", sw), nil)
	require.Equal(t, http.StatusOK, code)
	var usage struct {
		Used int64 `json:"used"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &usage))
	assert.Zero(t, usage.Used)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/assets/%d/retire", sw), nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestRouter_FlowRetireApproved(t *testing.T) {
	s := newTestServer(t)

	dev := s.createAsset("device", "DEV-9", 0)

	code, _ := s.do(http.MethodPost, fmt.Sprintf("/assets/%d/retire-requests", dev), nil)
	assert.Equal(t, http.StatusBadRequest, code, "no flow configured")

	code, env := s.do(http.MethodPost, "/flows", gin.H{"name": "IT retirement"})
	require.Equal(t, http.StatusCreated, code)
	var flow struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &flow))

	code, _ = s.do(http.MethodPut, "/retire-flows/device", gin.H{"flow_id": flow.ID})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, fmt.Sprintf("/assets/%d/retire-requests", dev), nil)
	require.Equal(t, http.StatusAccepted, code)
	var req struct {
		ApprovalID string `json:"approval_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &req))
	require.NotEmpty(t, req.ApprovalID)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/assets/%d/retire-requests", dev), nil)
	assert.Equal(t, http.StatusConflict, code, "retirement already pending")

	code, _ = s.do(http.MethodPost, "/approvals/"+req.ApprovalID+"/resolve", gin.H{"outcome": "approved"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/assets/%d", dev), nil)
	require.Equal(t, http.StatusOK, code)
	var got struct {
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "retired", got.State)
}
