package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/generator"
	"svw.info/queens/internal/hint"
	"svw.info/queens/internal/infrastructure/storage"
	"svw.info/queens/internal/solver"
	"svw.info/queens/internal/usecase"
	"svw.info/queens/internal/validator"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	uc := usecase.NewService(
		solver.NewBacktrackingSolver(),
		generator.NewUniqueGenerator(solver.NewCounter()),
		validator.New(),
		hint.NewForced(),
		storage.NewFS(t.TempDir()),
	)
	mux := http.NewServeMux()
	New(uc).Register(mux)
	return mux
}

func testDef() *domain.Definition {
	return &domain.Definition{
		Size: 4,
		Zones: []domain.Zone{
			{ID: 0, Cells: []domain.CellCoord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}},
			{ID: 1, Cells: []domain.CellCoord{{Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 1, Col: 3}}},
			{ID: 2, Cells: []domain.CellCoord{{Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 3, Col: 0}, {Row: 3, Col: 1}}},
			{ID: 3, Cells: []domain.CellCoord{{Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 3}}},
		},
	}
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))
	return rec
}

func TestSessionStateMethods(t *testing.T) {
	mux := newMux(t)

	rec := postJSON(t, mux, "/api/session/new", map[string]any{"definition": testDef()})
	if rec.Code != http.StatusOK {
		t.Fatalf("session/new: status %d body %s", rec.Code, rec.Body)
	}
	var ses sessionNewResp
	if err := json.Unmarshal(rec.Body.Bytes(), &ses); err != nil || ses.Session == "" {
		t.Fatalf("session/new: bad response %s (err %v)", rec.Body, err)
	}

	// State reads with GET only.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session/state?session="+ses.Session, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST state: status %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session/state?session="+ses.Session, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET state: status %d body %s", rec.Code, rec.Body)
	}
	var st stateResp
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Solved || len(st.Marks) != 4 {
		t.Fatalf("fresh board state: solved=%v marks=%d rows", st.Solved, len(st.Marks))
	}
}

func TestSessionMoveAndEnd(t *testing.T) {
	mux := newMux(t)

	rec := postJSON(t, mux, "/api/session/new", map[string]any{"definition": testDef()})
	var ses sessionNewResp
	if err := json.Unmarshal(rec.Body.Bytes(), &ses); err != nil || ses.Session == "" {
		t.Fatalf("session/new: bad response %s (err %v)", rec.Body, err)
	}

	rec = postJSON(t, mux, "/api/session/move", moveReq{Session: ses.Session, Action: "queen", Row: 0, Col: 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: status %d body %s", rec.Code, rec.Body)
	}
	var mv moveResp
	if err := json.Unmarshal(rec.Body.Bytes(), &mv); err != nil || mv.Move == nil || !mv.Move.Placed {
		t.Fatalf("move: bad response %s (err %v)", rec.Body, err)
	}

	rec = postJSON(t, mux, "/api/session/end", endReq{Session: ses.Session})
	if rec.Code != http.StatusOK {
		t.Fatalf("end: status %d body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session/state?session="+ses.Session, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("state after end: status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
