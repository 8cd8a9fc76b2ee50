package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/szzz666/PalEasyBreeding/internal/breeding"
	"github.com/szzz666/PalEasyBreeding/internal/resolver"
	"github.com/szzz666/PalEasyBreeding/pkg/apierr"
	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

func testService(t *testing.T) *breeding.Service {
	t.Helper()
	pals := []models.Pal{
		{Name: "A", CatalogNumber: "#1", Rank: 1},
		{Name: "C", CatalogNumber: "#2", Rank: 3, Priority: 5},
		{Name: "B", CatalogNumber: "#3", Rank: 3},
		{Name: "D", CatalogNumber: "#4", Rank: 10},
		{Name: "E", CatalogNumber: "#5", Rank: 2},
		{Name: "F", CatalogNumber: "#6", Rank: 20},
		{Name: "G", CatalogNumber: "#7", Rank: 30},
		{Name: "H", CatalogNumber: "#6B", Rank: 25},
		{Name: "I", CatalogNumber: "#7B", Rank: 26},
	}
	rules := []models.OverrideRule{
		{Parent1: "A", Parent2: "B", Child: "E"},
		{Parent1: "F", Parent2: "G", Child: "H", SexSpecific: true, Parent1Sex: models.SexFemale, Parent2Sex: models.SexMale},
		{Parent1: "F", Parent2: "G", Child: "I", SexSpecific: true, Parent1Sex: models.SexMale, Parent2Sex: models.SexFemale},
	}
	svc, err := breeding.New(pals, rules, breeding.Options{
		Version: "test",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := testService(t)
	bh := NewBreedingHandler(nil, svc, nil)
	ph := NewPalHandler(nil, svc)
	r := chi.NewRouter()
	r.Get("/pals", ph.List)
	r.Get("/pals/{name}", ph.Get)
	r.Get("/breed", bh.Breed)
	r.Get("/reverse/{target}", bh.Reverse)
	r.Get("/partial", bh.Partial)
	return r
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierr.Code {
	t.Helper()
	var resp apierr.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Error.Code
}

func TestBreed_Computed(t *testing.T) {
	w := get(t, testRouter(t), "/breed?parent1=A&parent2=D")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp breedResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Outcome.Kind != resolver.KindComputed {
		t.Errorf("kind = %s, want computed", resp.Outcome.Kind)
	}
	if resp.Child == nil || resp.Child.Name != "B" {
		t.Errorf("child = %+v, want B", resp.Child)
	}
	if resp.Outcome.ComputedRank != 6 {
		t.Errorf("computed rank = %d, want 6", resp.Outcome.ComputedRank)
	}
}

func TestBreed_Conditional(t *testing.T) {
	tests := []struct {
		query     string
		wantChild string
	}{
		{"parent1=F&parent2=G&parent1_sex=female&parent2_sex=male", "H"},
		{"parent1=F&parent2=G&parent1_sex=m&parent2_sex=f", "I"},
		{"parent1=G&parent2=F&parent1_sex=male&parent2_sex=female", "H"},
		{"parent1=F&parent2=G&parent1_sex=female&parent2_sex=female", ""},
	}
	h := testRouter(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, h, "/breed?"+tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var resp breedResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Outcome.Kind != resolver.KindConditional {
				t.Errorf("kind = %s, want conditional", resp.Outcome.Kind)
			}
			if len(resp.Outcome.Alternatives) != 2 {
				t.Errorf("expected 2 alternatives, got %d", len(resp.Outcome.Alternatives))
			}
			got := ""
			if resp.Child != nil {
				got = resp.Child.Name
			}
			if got != tt.wantChild {
				t.Errorf("child = %q, want %q", got, tt.wantChild)
			}
		})
	}
}

func TestBreed_Errors(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
		wantCode   apierr.Code
	}{
		{"parent2=A", http.StatusBadRequest, apierr.CodeParamRequired},
		{"parent1=A", http.StatusBadRequest, apierr.CodeParamRequired},
		{"parent1=A&parent2=B&parent1_sex=x", http.StatusBadRequest, apierr.CodeInvalidSex},
		{"parent1=A&parent2=Nope", http.StatusNotFound, apierr.CodePalNotFound},
	}
	h := testRouter(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(t, h, "/breed?"+tt.query)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if code := decodeError(t, w); code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, code)
			}
		})
	}
}

func TestReverse_SpecialTarget(t *testing.T) {
	w := get(t, testRouter(t), "/reverse/E")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Combinations) != 2 {
		t.Fatalf("expected 2 combinations, got %d", resp.Total)
	}
	if c := resp.Combinations[1]; c.Parent1.Name != "A" || c.Parent2.Name != "B" {
		t.Errorf("second combination = %s + %s, want A + B", c.Parent1.Name, c.Parent2.Name)
	}
	if len(resp.Pals) != 2 || resp.Pals[0] != "A" || resp.Pals[1] != "B" {
		t.Errorf("pals = %v, want [A B]", resp.Pals)
	}
}

func TestReverse_ExcludeAndSelect(t *testing.T) {
	h := testRouter(t)

	w := get(t, h, "/reverse/E?exclude=A")
	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("exclude=A: expected 1 combination, got %d", resp.Total)
	}

	w = get(t, h, "/reverse/E?select=B,Nope")
	resp = searchResponse{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Combinations[0].Parent2.Name != "B" {
		t.Errorf("select=B: unexpected result %+v", resp.Combinations)
	}
}

func TestReverse_UnknownTarget(t *testing.T) {
	w := get(t, testRouter(t), "/reverse/Nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestPartial(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   apierr.Code
	}{
		{"ok", "known=A&target=E", http.StatusOK, ""},
		{"two steps", "known=A&target=E&steps=2", http.StatusOK, ""},
		{"missing known", "target=E", http.StatusBadRequest, apierr.CodeParamRequired},
		{"missing target", "known=A", http.StatusBadRequest, apierr.CodeParamRequired},
		{"bad steps", "known=A&target=E&steps=3", http.StatusBadRequest, apierr.CodeInvalidSteps},
		{"non-numeric steps", "known=A&target=E&steps=x", http.StatusBadRequest, apierr.CodeInvalidSteps},
		{"bad bool", "known=A&target=E&known_is_parent1=maybe", http.StatusBadRequest, apierr.CodeInvalidBool},
		{"unknown known", "known=Nope&target=E", http.StatusNotFound, apierr.CodePalNotFound},
	}
	h := testRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, "/partial?"+tt.query)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				if code := decodeError(t, w); code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, code)
				}
			}
		})
	}
}

func TestPartial_Orientation(t *testing.T) {
	w := get(t, testRouter(t), "/partial?known=B&target=E&known_is_parent1=false")
	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 combination, got %d", resp.Total)
	}
	c := resp.Combinations[0]
	if c.Parent1.Name != "A" || c.Parent2.Name != "B" {
		t.Errorf("got %s + %s, want A + B", c.Parent1.Name, c.Parent2.Name)
	}
	if resp.Known != "B" || resp.Steps != 1 {
		t.Errorf("known=%q steps=%d", resp.Known, resp.Steps)
	}
}

func TestPalHandler_Get(t *testing.T) {
	h := testRouter(t)

	w := get(t, h, "/pals/E")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Pal     models.Pal `json:"pal"`
		Special bool       `json:"special"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pal.Name != "E" || !resp.Special {
		t.Errorf("got %+v", resp)
	}

	w = get(t, h, "/pals/Nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestPalHandler_List(t *testing.T) {
	h := testRouter(t)

	w := get(t, h, "/pals?limit=3")
	var resp struct {
		Pals  []models.Pal `json:"pals"`
		Total int          `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 9 || len(resp.Pals) != 3 {
		t.Errorf("total=%d len=%d, want 9 and 3", resp.Total, len(resp.Pals))
	}
	if resp.Pals[0].Name != "A" {
		t.Errorf("first pal = %s, want A (#1)", resp.Pals[0].Name)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(nil, nil).Readyz(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("nil service: expected 503, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	NewHealthHandler(testService(t), nil).Readyz(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("loaded service: expected 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["cache"] != "disabled" || resp["pals"] != float64(9) {
		t.Errorf("readyz = %v", resp)
	}
}
