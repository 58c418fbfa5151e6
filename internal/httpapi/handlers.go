package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"typetrivia/internal/auth"
	"typetrivia/internal/score"
)

// HandleQuestions serves a fresh prompt set for one typing session.
func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	promptSet, err := a.prompts.Fetch(r.Context())
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, promptSet)
}

// HandleScores dispatches score submission and the caller's own history.
func (a *API) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.handleSubmitScore(w, r)
	case http.MethodGet:
		a.handleScoreHistory(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet+", "+http.MethodPost)
	}
}

func (a *API) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	defer r.Body.Close()

	var submission score.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	record, err := a.scores.Submit(r.Context(), owner, submission)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.logger.Info("score submitted",
		zap.String("owner", record.Owner),
		zap.Uint64("id", record.ID),
		zap.Float64("wpm", record.WPM))

	w.Header().Set("Location", "/api/scores/"+strconv.FormatUint(record.ID, 10))
	writeJSON(w, http.StatusCreated, record)
}

func (a *API) handleScoreHistory(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	history, err := a.scores.History(r.Context(), owner)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	if history == nil {
		history = []score.Record{}
	}

	writeJSON(w, http.StatusOK, history)
}

// HandleRanking serves the cross-owner top-N by WPM.
func (a *API) HandleRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	limit, err := parseLimitParam(r, a.rankingLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ranking, err := a.scores.Ranking(r.Context(), limit)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	if ranking == nil {
		ranking = []score.Record{}
	}

	writeJSON(w, http.StatusOK, ranking)
}
