package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// VariantInfo describes one variant.
type VariantInfo struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	MaxSlots int      `json:"max_slots"`
	Moves    []string `json:"moves"`
}

// VariantDetail is one variant with the defeats-set of every legal move.
type VariantDetail struct {
	VariantInfo
	Defeats map[string][]string `json:"defeats"`
}

// SlotInfo is one slot mapping.
type SlotInfo struct {
	Variant string `json:"variant"`
	Slot    int    `json:"slot"`
	Move    string `json:"move"`
	Key     string `json:"key"`
}

// PlayerRef identifies the player a round is stored under.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoundRequest is the body of POST /api/v1/rounds.
type RoundRequest struct {
	Variant      string     `json:"variant"`
	Move         string     `json:"move"`
	ComputerMove string     `json:"computer_move,omitempty"`
	Player       *PlayerRef `json:"player,omitempty"`
}

// RoundResponse is the resolved round.
type RoundResponse struct {
	Variant      string `json:"variant"`
	Move         string `json:"move"`
	ComputerMove string `json:"computer_move"`
	Outcome      string `json:"outcome"`
	Message      string `json:"message"`
	Phrase       string `json:"phrase"`
	Saved        bool   `json:"saved"`
}

// StandingInfo is one leaderboard row.
type StandingInfo struct {
	Rank    int     `json:"rank"`
	Player  string  `json:"player"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Loses   int     `json:"loses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"win_rate"`
}

// StatsInfo aggregates every stored round of a variant.
type StatsInfo struct {
	Variant   string         `json:"variant"`
	Rounds    int            `json:"rounds"`
	Games     int            `json:"games"`
	Wins      int            `json:"wins"`
	Loses     int            `json:"loses"`
	Draws     int            `json:"draws"`
	MoveCount map[string]int `json:"move_count"`
	LastPlay  *time.Time     `json:"last_play,omitempty"`
}

// MatchInfo is a stored online match.
type MatchInfo struct {
	MatchID      string    `json:"match_id"`
	Variant      string    `json:"variant"`
	BestOf       int       `json:"best_of"`
	Player1      string    `json:"player1"`
	Player2      string    `json:"player2"`
	Score1       int       `json:"score1"`
	Score2       int       `json:"score2"`
	Rounds       int       `json:"rounds"`
	Winner       string    `json:"winner,omitempty"`
	EndReason    string    `json:"end_reason"`
	DurationSecs int       `json:"duration_secs"`
	PlayedAt     time.Time `json:"played_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Storage  string `json:"storage"`
	Sessions int    `json:"sessions,omitempty"`
	Lobbies  int    `json:"lobbies,omitempty"`
	Matches  int    `json:"matches,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		Storage: "disabled",
	}
	if s.store != nil {
		resp.Storage = "ok"
		if err := s.store.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Storage = err.Error()
		}
	}
	if s.coordinator != nil {
		resp.Sessions = s.coordinator.Sessions().Count()
		resp.Lobbies = s.coordinator.LobbyCount()
		resp.Matches = s.coordinator.MatchCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

func variantInfo(v rules.Variant) VariantInfo {
	moves := make([]string, 0, v.MaxSlots())
	for _, m := range v.Moves() {
		moves = append(moves, m.String())
	}
	return VariantInfo{Key: v.Key(), Name: v.DisplayName(), MaxSlots: v.MaxSlots(), Moves: moves}
}

func (s *Server) handleListVariants(w http.ResponseWriter, _ *http.Request) {
	all := rules.Variants()
	infos := make([]VariantInfo, 0, len(all))
	for _, v := range all {
		infos = append(infos, variantInfo(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"variants": infos})
}

// variantParam resolves the {variant} URL parameter, writing a 404 when it
// names no variant.
func variantParam(w http.ResponseWriter, r *http.Request) (rules.Variant, bool) {
	v, err := rules.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeError(w, http.StatusNotFound, ErrTypeNotFound, err.Error())
		return rules.VariantNone, false
	}
	return v, true
}

func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	v, ok := variantParam(w, r)
	if !ok {
		return
	}
	detail := VariantDetail{
		VariantInfo: variantInfo(v),
		Defeats:     make(map[string][]string, v.MaxSlots()),
	}
	for _, m := range v.Moves() {
		beaten := v.Defeats(m)
		names := make([]string, 0, len(beaten))
		for _, b := range beaten {
			names = append(names, b.String())
		}
		detail.Defeats[m.String()] = names
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSlot(w http.ResponseWriter, r *http.Request) {
	v, ok := variantParam(w, r)
	if !ok {
		return
	}
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrTypeValidation, "slot must be a number")
		return
	}
	m, ok := v.SlotToMove(slot)
	if !ok {
		writeError(w, http.StatusNotFound, ErrTypeNotFound,
			fmt.Sprintf("slot %d out of range 1..%d", slot, v.MaxSlots()))
		return
	}
	writeJSON(w, http.StatusOK, SlotInfo{Variant: v.Key(), Slot: slot, Move: m.String(), Key: string(m.Key())})
}

// parseLegalMove parses a move name or key letter and checks it against v.
func parseLegalMove(v rules.Variant, s string) (rules.Move, error) {
	m, ok := rules.ParseMoveName(s)
	if !ok {
		runes := []rune(s)
		if len(runes) != 1 {
			return rules.MoveNone, fmt.Errorf("unknown move %q", s)
		}
		var err error
		m, err = rules.ParseMove(v, runes[0])
		if err != nil {
			return rules.MoveNone, fmt.Errorf("move %q: %w", s, err)
		}
	}
	if !v.Legal(m) {
		return rules.MoveNone, fmt.Errorf("move %s is not part of the %s", m, v.DisplayName())
	}
	return m, nil
}

func (s *Server) handlePlayRound(w http.ResponseWriter, r *http.Request) {
	var req RoundRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body: "+err.Error())
		return
	}

	v, err := rules.ParseVariant(req.Variant)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}
	move, err := parseLegalMove(v, req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	computer := s.computerMove(v)
	if req.ComputerMove != "" {
		computer, err = parseLegalMove(v, req.ComputerMove)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrTypeValidation, "computer_move: "+err.Error())
			return
		}
	}

	round := game.New(v, 1).PlayAgainst(move, computer)
	resp := RoundResponse{
		Variant:      v.Key(),
		Move:         round.Player.String(),
		ComputerMove: round.Computer.String(),
		Outcome:      round.Outcome.String(),
		Message:      round.Outcome.Message(),
		Phrase:       round.Phrase,
	}

	if req.Player != nil && req.Player.ID != "" && s.store != nil {
		p := storage.Player{ID: req.Player.ID, Name: req.Player.Name}
		if _, err := s.store.SaveRound(p, round); err != nil {
			s.logger.Error("cannot save round", "player", p.ID, "error", err)
		} else {
			resp.Saved = true
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePhrase(w http.ResponseWriter, r *http.Request) {
	a, okA := rules.ParseMoveName(r.URL.Query().Get("a"))
	b, okB := rules.ParseMoveName(r.URL.Query().Get("b"))
	if !okA || !okB {
		writeError(w, http.StatusBadRequest, ErrTypeValidation, "query parameters a and b must name moves")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"a": a.String(), "b": b.String(), "phrase": rules.Phrase(a, b)})
}

// requireStore writes a 503 when the server runs without a database.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, ErrTypeUnavailable, "storage is disabled")
		return false
	}
	return true
}

// limitParam reads ?limit=, clamped to 1..maxLimit.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return min(n, maxLimit)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	v, ok := variantParam(w, r)
	if !ok || !s.requireStore(w) {
		return
	}

	standings, err := s.store.TopPlayers(v, limitParam(r))
	if err != nil {
		s.logger.Error("cannot load leaderboard", "variant", v.Key(), "error", err)
		writeError(w, http.StatusInternalServerError, ErrTypeInternal, "cannot load leaderboard")
		return
	}

	rows := make([]StandingInfo, 0, len(standings))
	for _, st := range standings {
		rows = append(rows, StandingInfo{
			Rank:    st.Rank,
			Player:  st.Player.Name,
			Games:   st.Games,
			Wins:    st.Wins,
			Loses:   st.Loses,
			Draws:   st.Draws,
			WinRate: st.WinRate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"variant": v.Key(), "standings": rows})
}

func (s *Server) handleVariantStats(w http.ResponseWriter, r *http.Request) {
	v, ok := variantParam(w, r)
	if !ok || !s.requireStore(w) {
		return
	}

	vs, err := s.store.VariantStats(v)
	if err != nil {
		s.logger.Error("cannot load stats", "variant", v.Key(), "error", err)
		writeError(w, http.StatusInternalServerError, ErrTypeInternal, "cannot load stats")
		return
	}

	info := StatsInfo{
		Variant:   v.Key(),
		Rounds:    vs.Rounds,
		Games:     vs.Games,
		Wins:      vs.Wins,
		Loses:     vs.Loses,
		Draws:     vs.Draws,
		MoveCount: make(map[string]int, len(vs.MoveCount)),
	}
	for m, n := range vs.MoveCount {
		info.MoveCount[m.String()] = n
	}
	if !vs.LastPlay.IsZero() {
		last := vs.LastPlay
		info.LastPlay = &last
	}
	writeJSON(w, http.StatusOK, info)
}

func matchInfo(m storage.OnlineMatchResult) MatchInfo {
	return MatchInfo{
		MatchID:      m.MatchID,
		Variant:      m.Variant.Key(),
		BestOf:       m.BestOf,
		Player1:      m.Player1Name,
		Player2:      m.Player2Name,
		Score1:       m.Score1,
		Score2:       m.Score2,
		Rounds:       m.Rounds,
		Winner:       m.WinnerName,
		EndReason:    m.EndReason,
		DurationSecs: m.Duration,
		PlayedAt:     m.CreatedAt,
	}
}

func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var (
		matches []storage.OnlineMatchResult
		err     error
	)
	if player := r.URL.Query().Get("player"); player != "" {
		matches, err = s.store.PlayerMatchHistory(player, limitParam(r))
	} else {
		matches, err = s.store.RecentOnlineMatches(limitParam(r))
	}
	if err != nil {
		s.logger.Error("cannot load matches", "error", err)
		writeError(w, http.StatusInternalServerError, ErrTypeInternal, "cannot load matches")
		return
	}

	infos := make([]MatchInfo, 0, len(matches))
	for _, m := range matches {
		infos = append(infos, matchInfo(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": infos})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	id := chi.URLParam(r, "matchID")
	m, err := s.store.OnlineMatchByID(id)
	if err != nil {
		s.logger.Error("cannot load match", "match", id, "error", err)
		writeError(w, http.StatusInternalServerError, ErrTypeInternal, "cannot load match")
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, ErrTypeNotFound, "match "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, matchInfo(*m))
}
