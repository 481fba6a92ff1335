package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestServer() *Server {
	return New(log.New("server-test"), DefaultLimits())
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Errorf("Unexpected body %q (%v)", rec.Body.String(), err)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/scenes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var infos []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(infos))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/api/scene-config?scene=quads", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Scene    string         `json:"scene"`
		Defaults map[string]int `json:"defaults"`
		Limits   Limits         `json:"limits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Scene != "quads" || body.Defaults["width"] <= 0 || body.Limits != DefaultLimits() {
		t.Errorf("Unexpected scene config %+v", body)
	}

	if rec := do(t, s, http.MethodGet, "/api/scene-config?scene=nope", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/render",
		`{"scene": "default", "width": 16, "height": 8, "spp": 2, "depth": 4, "seed": 11}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if seed := rec.Header().Get("X-Render-Seed"); seed != "11" {
		t.Errorf("Expected seed header 11, got %q", seed)
	}
	if samples := rec.Header().Get("X-Render-Samples"); samples != "256" {
		t.Errorf("Expected 256 samples, got %q", samples)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("Expected 16x8 image, got %v", b)
	}
}

func TestHandleRender_Deterministic(t *testing.T) {
	s := newTestServer()
	body := `{"scene": "materials", "width": 12, "height": 8, "spp": 2, "seed": 5, "workers": 3}`
	a := do(t, s, http.MethodPost, "/api/render", body)
	b := do(t, s, http.MethodPost, "/api/render", strings.Replace(body, `"workers": 3`, `"workers": 1`, 1))

	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("Expected 200s, got %d and %d", a.Code, b.Code)
	}
	if !bytes.Equal(a.Body.Bytes(), b.Body.Bytes()) {
		t.Error("Expected identical images for the same seed")
	}
}

func TestHandleRender_InlineDescriptionAndFormat(t *testing.T) {
	body := `{
	  "format": "bmp",
	  "description": {
	    "camera": {"center": [0, 0, 2], "look_at": [0, 0, 0], "up": [0, 1, 0], "vfov": 60},
	    "background": {"type": "gradient", "top": [0.5, 0.7, 1], "bottom": [1, 1, 1]},
	    "settings": {"width": 8, "height": 8, "samples_per_pixel": 1, "max_depth": 4, "seed": 1},
	    "materials": [{"id": "white", "type": "lambertian", "albedo": [0.8, 0.8, 0.8]}],
	    "primitives": [{"type": "sphere", "material": "white", "center": [0, 0, 0], "radius": 0.5}]
	  }
	}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Expected image/bmp, got %q", ct)
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"negative width", `{"scene": "default", "width": -5}`, "width"},
		{"negative depth", `{"scene": "default", "depth": -1}`, "depth"},
		{"over limit", `{"scene": "default", "width": 100000}`, "exceeds"},
		{"unknown scene", `{"scene": "nope"}`, "unknown scene"},
		{"unknown format", `{"scene": "default", "format": "gif"}`, "unsupported"},
		{"malformed json", `{"scene": `, "Invalid request"},
		{"bad description", `{"description": {"primitives": [{"type": "sphere", "material": "missing"}]}}`, "unknown material"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/render", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(body["error"], tt.contains) {
				t.Errorf("Expected error containing %q, got %q", tt.contains, body["error"])
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/inspect", `{"scene": "default", "width": 20, "height": 10, "x": 10, "y": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var center InspectResult
	if err := json.Unmarshal(rec.Body.Bytes(), &center); err != nil {
		t.Fatal(err)
	}
	if !center.Hit || center.MaterialType != "lambertian" || !center.FrontFace {
		t.Errorf("Expected the center pixel to see the red sphere, got %+v", center)
	}
	if albedo, ok := center.Properties["albedo"].([]interface{}); !ok || albedo[0] != 0.65 {
		t.Errorf("Expected red albedo, got %v", center.Properties["albedo"])
	}

	rec = do(t, s, http.MethodPost, "/api/inspect", `{"scene": "default", "width": 20, "height": 10, "x": 0, "y": 0}`)
	var corner InspectResult
	if err := json.Unmarshal(rec.Body.Bytes(), &corner); err != nil {
		t.Fatal(err)
	}
	if corner.Hit {
		t.Errorf("Expected the top-left pixel to see the sky, got %+v", corner)
	}

	rec = do(t, s, http.MethodPost, "/api/inspect", `{"scene": "default", "width": 20, "height": 10, "x": 20, "y": 0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 out of bounds, got %d", rec.Code)
	}
}

func TestHandleConsole(t *testing.T) {
	s := newTestServer()
	if rec := do(t, s, http.MethodPost, "/api/render", `{"width": 4, "height": 4, "spp": 1, "seed": 1}`); rec.Code != http.StatusOK {
		t.Fatalf("Render failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := do(t, s, http.MethodGet, "/api/console?since=0", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var messages []ConsoleMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatal(err)
	}
	if len(messages) == 0 || messages[0].RenderID != "render-1" {
		t.Errorf("Expected messages from render-1, got %+v", messages)
	}

	if rec := do(t, s, http.MethodGet, "/api/console?since=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad since parameter, got %d", rec.Code)
	}
}
