package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/grammar-arcade/internal/game"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

type errorResponse struct {
	Error string `json:"error"`
}

type progressResponse struct {
	UserID    string   `json:"user_id"`
	Mode      string   `json:"mode"`
	BestTime  *float64 `json:"best_time"`
	Completed bool     `json:"completed"`
}

type resultRequest struct {
	UserID            string  `json:"user_id"`
	Mode              string  `json:"mode"`
	Elapsed           float64 `json:"elapsed"`
	Score             int     `json:"score"`
	Won               bool    `json:"won"`
	QuestionsAnswered int     `json:"questions_answered"`
}

// handleQuestions serves the question list for a mode. The built-in
// fallback applies, so known modes never 500 on a broken source.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")

	questions, err := quiz.Load(r.Context(), s.source, mode)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown mode"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// handleProgress serves the best time and completion flag for a user
// and mode. A user with no history gets a null best time, not an error.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	mode := chi.URLParam(r, "mode")

	resp := progressResponse{UserID: userID, Mode: mode}

	best, ok, err := s.store.BestTime(r.Context(), userID, mode)
	if err != nil {
		log.Error("server: best time read failed", "user", userID, "mode", mode, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage unavailable"})
		return
	}
	if ok {
		resp.BestTime = &best
	}

	completed, err := s.store.IsCompleted(r.Context(), userID, mode)
	if err != nil {
		log.Error("server: completion read failed", "user", userID, "mode", mode, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage unavailable"})
		return
	}
	resp.Completed = completed

	writeJSON(w, http.StatusOK, resp)
}

// handleResults records a finished session using the same finalizer
// rules as local play: best-effort persistence, best time only on a
// strictly faster win, completion per the mode's rule.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.UserID == "" || req.Mode == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id and mode are required"})
		return
	}

	completed, known := completionRule(req.Mode, req.Score, req.Won)
	if !known {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode"})
		return
	}

	res := game.Result{
		UserID:            req.UserID,
		Mode:              req.Mode,
		Elapsed:           req.Elapsed,
		Score:             req.Score,
		Won:               req.Won,
		QuestionsAnswered: req.QuestionsAnswered,
		PlayedAt:          time.Now(),
	}
	s.finalizer.Record(res, completed)

	w.WriteHeader(http.StatusAccepted)
}

// completionRule applies the per-mode completion policy to a terminal
// result.
func completionRule(mode string, score int, won bool) (completed, known bool) {
	switch mode {
	case quiz.ModeRunner:
		return game.NewRunnerMechanics(game.RunnerParams{}).Completed(score, won), true
	case quiz.ModeRacing:
		return game.NewRacerMechanics(game.RacerParams{}).Completed(score, won), true
	default:
		return false, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("server: write response failed", "err", err)
	}
}
