package server

import (
	"net/http"
	"strconv"

	"wavefm/config"
	"wavefm/core/apperr"
	"wavefm/core/auth"
	"wavefm/core/history"
	"wavefm/core/library"
	"wavefm/core/paging"
	"wavefm/core/ranking"
	"wavefm/repository"

	"github.com/gorilla/mux"
)

// APIHandler carries the dependencies shared by all HTTP handlers.
type APIHandler struct {
	cfg       *config.Config
	users     repository.UserRepository
	songs     repository.SongRepository
	ranking   *ranking.Aggregator
	library   *library.Service
	history   *history.Service
	tokens    *auth.TokenManager
	blacklist *auth.Blacklist
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(
	cfg *config.Config,
	users repository.UserRepository,
	songs repository.SongRepository,
	rankingAgg *ranking.Aggregator,
	librarySvc *library.Service,
	historySvc *history.Service,
	tokens *auth.TokenManager,
	blacklist *auth.Blacklist,
) *APIHandler {
	return &APIHandler{
		cfg:       cfg,
		users:     users,
		songs:     songs,
		ranking:   rankingAgg,
		library:   librarySvc,
		history:   historySvc,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// pathID extracts a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Newf(apperr.InvalidArgument, "Invalid %s", name)
	}
	return id, nil
}

// pagination parses and resolves the page/limit query parameters against
// the configured ceiling.
func (h *APIHandler) pagination(r *http.Request) (paging.Resolved, error) {
	params, err := paging.ParseQuery(r.URL.Query(), h.cfg.MaxPageSize)
	if err != nil {
		return paging.Resolved{}, err
	}
	return paging.Resolve(params), nil
}
