package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"typetrivia/internal/auth"
)

// HandleSignup registers a new user. It is one of the two unauthenticated
// endpoints.
func (a *API) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()

	var request credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := a.users.Register(r.Context(), request.Username, request.Password); err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.logger.Info("user registered", zap.String("username", request.Username))
	writeJSON(w, http.StatusCreated, statusResponse{Message: "user registered"})
}

// HandleLogin verifies credentials and installs the auth cookie.
func (a *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()

	var request credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	user, err := a.users.Authenticate(r.Context(), request.Username, request.Password)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	token, err := a.tokens.Issue(user.Username)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.tokens.SetCookie(w, token)
	writeJSON(w, http.StatusOK, userResponse{Username: user.Username})
}

// HandleLogout clears the auth cookie.
func (a *API) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	a.tokens.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCheck reports the identity behind the auth cookie.
func (a *API) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Username: owner})
}
