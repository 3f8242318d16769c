package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"svw.info/queens/internal/domain"
	"svw.info/queens/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
	mux.HandleFunc("/api/session/new", h.handleSessionNew)
	mux.HandleFunc("/api/session/move", h.handleSessionMove)
	mux.HandleFunc("/api/session/query", h.handleSessionQuery)
	mux.HandleFunc("/api/session/state", h.handleSessionState)
	mux.HandleFunc("/api/session/hint", h.handleSessionHint)
	mux.HandleFunc("/api/session/end", h.handleSessionEnd)
}

// statusFor maps domain errors onto HTTP statuses; everything a player can
// trigger with a bad click is a 400-class response, not a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrCellOccupied),
		errors.Is(err, domain.ErrNotAQueen),
		errors.Is(err, domain.ErrMalformedDefinition),
		errors.Is(err, domain.ErrUnsatisfiable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ---- Generate ----

type generateReq struct {
	N    int   `json:"n"`
	Seed int64 `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle,omitempty"`
	Seed       int64          `json:"seed,omitempty"`
	DurationMs int64          `json:"durationMs,omitempty"`
	Nodes      int            `json:"nodes,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), seed, req.N)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(generateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(generateResp{
		Puzzle:     p,
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve ----

type solveReq struct {
	N int `json:"n"`
}
type solveResp struct {
	Queens     []domain.CellCoord `json:"queens,omitempty"`
	DurationMs int64              `json:"durationMs,omitempty"`
	Nodes      int                `json:"nodes,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// handleSolve returns one raw non-attacking placement, without zones.
// Useful for puzzle editors that want a starting skeleton.
func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	qs, st, err := h.UC.SolvePlacement(r.Context(), req.N)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	_ = json.NewEncoder(w).Encode(solveResp{Queens: qs, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Validate ----

type validateReq struct {
	Definition domain.Definition `json:"definition"`
}
type validateResp struct {
	OK    bool               `json:"ok"`
	Bad   []domain.CellCoord `json:"bad,omitempty"`
	Error string             `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ok, bad, err := h.UC.Validate(r.Context(), &req.Definition)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(validateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(validateResp{OK: ok, Bad: bad})
}

// ---- Sessions ----

type sessionNewReq struct {
	PuzzleID   string             `json:"puzzleId,omitempty"`
	Definition *domain.Definition `json:"definition,omitempty"`
}
type sessionNewResp struct {
	Session string        `json:"session,omitempty"`
	N       int           `json:"n,omitempty"`
	Zones   []domain.Zone `json:"zones,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (h *Handler) handleSessionNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req sessionNewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sessionNewResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	def := req.Definition
	if def == nil && req.PuzzleID != "" {
		p, err := h.UC.Load(r.Context(), req.PuzzleID)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(sessionNewResp{Error: err.Error()})
			return
		}
		def = &p.Definition
	}
	if def == nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sessionNewResp{Error: "missing definition or puzzleId"})
		return
	}
	// Never leak the canonical solution to the playing client.
	play := *def
	play.Solution = nil
	id, err := h.UC.NewSession(r.Context(), &play)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(sessionNewResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(sessionNewResp{Session: id, N: play.Size, Zones: play.Zones})
}

type moveReq struct {
	Session string `json:"session"`
	Action  string `json:"action"` // queen|remove|cross
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}
type moveResp struct {
	Move  *domain.Move `json:"move,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) handleSessionMove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(moveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	var mv domain.Move
	var err error
	switch req.Action {
	case "queen":
		mv, err = h.UC.Place(r.Context(), req.Session, req.Row, req.Col)
	case "remove":
		mv, err = h.UC.Remove(r.Context(), req.Session, req.Row, req.Col)
	case "cross":
		mv, err = h.UC.Cross(r.Context(), req.Session, req.Row, req.Col)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(moveResp{Error: "unknown action: " + req.Action})
		return
	}
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(moveResp{Move: &mv, Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(moveResp{Move: &mv})
}

type queryReq struct {
	Session string `json:"session"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}
type queryResp struct {
	Checks *domain.Checks `json:"checks,omitempty"`
	Legal  bool           `json:"legal"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleSessionQuery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req queryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(queryResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	ck, err := h.UC.Query(r.Context(), req.Session, req.Row, req.Col)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(queryResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(queryResp{Checks: &ck, Legal: ck.OK()})
}

type stateResp struct {
	Marks  [][]domain.CellMark `json:"marks,omitempty"`
	Solved bool                `json:"solved"`
	Error  string              `json:"error,omitempty"`
}

func (h *Handler) handleSessionState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("session")
	marks, solved, err := h.UC.State(r.Context(), id)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(stateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(stateResp{Marks: marks, Solved: solved})
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleSessionHint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req queryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), req.Session)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(hintResp{Found: ok, Hint: hh})
}

type endReq struct {
	Session string `json:"session"`
}

func (h *Handler) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req endReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	h.UC.EndSession(req.Session)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var p domain.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if p.ID == "" {
		p.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(saveResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(loadResp{Error: "invalid JSON or missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(loadResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(listResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(listResp{Puzzles: ps})
}
