// Package graphql exposes the read side of the forum over GraphQL.
package graphql

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/forum-api/internal/core/ports"
)

type gqlHandler struct {
	posts    ports.PostService
	comments ports.CommentService
	log      zerolog.Logger

	schema graphql.Schema
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// New builds the schema over the given services and returns an http.Handler
// serving POST requests of the form {"query": ..., "variables": {...}}.
func New(posts ports.PostService, comments ports.CommentService, log zerolog.Logger) (http.Handler, error) {
	gh := &gqlHandler{
		posts:    posts,
		comments: comments,
		log:      log,
	}

	if err := gh.initSchema(); err != nil {
		return nil, err
	}

	return gh, nil
}

func (gh *gqlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query is required"))
		return
	}

	res := graphql.Do(graphql.Params{
		Context:        r.Context(),
		Schema:         gh.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
	})
	if res.HasErrors() {
		gh.log.Debug().Interface("errors", res.Errors).Msg("graphql query failed")
	}

	writeJSON(w, http.StatusOK, res)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
