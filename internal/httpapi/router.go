package httpapi

import "net/http"

// NewRouter builds the API routing table. Everything except signup and login
// sits behind the auth middleware, so core handlers only ever run for a
// verified identity.
func NewRouter(api *API) http.Handler {
	requireAuth := api.tokens.Middleware

	mux := http.NewServeMux()
	mux.HandleFunc("/api/signup", api.HandleSignup)
	mux.HandleFunc("/api/login", api.HandleLogin)
	mux.Handle("/api/logout", requireAuth(http.HandlerFunc(api.HandleLogout)))
	mux.Handle("/api/check", requireAuth(http.HandlerFunc(api.HandleCheck)))
	mux.Handle("/api/questions", requireAuth(http.HandlerFunc(api.HandleQuestions)))
	mux.Handle("/api/scores", requireAuth(http.HandlerFunc(api.HandleScores)))
	mux.Handle("/api/scores/ranking", requireAuth(http.HandlerFunc(api.HandleRanking)))

	return mux
}
