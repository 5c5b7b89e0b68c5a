package handlers

import (
	"context"
	nethttp "net/http"

	"github.com/dinildamsith/game-explorer/internal/domain"
)

func serveReferencePage[T any](h *Handler, w nethttp.ResponseWriter, r *nethttp.Request, fetch func(context.Context, domain.ReferenceQuery) (domain.Page[T], error)) {
	q, err := parseReferenceQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, "not found", h.logger)
		return
	}
	page, err := fetch(r.Context(), q)
	if err != nil {
		writeFailure(w, r, err, "not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, newPageResponse(page), h.logger)
}

// FilterMenus serves genres, platforms, tags and stores in one response.
// A failing menu is reported in its own section; the response is still 200.
func (h *Handler) FilterMenus(w nethttp.ResponseWriter, r *nethttp.Request) {
	size, err := optionalInt(r.URL.Query(), "page_size", 0, domain.MaxPageSize)
	if err != nil {
		writeFailure(w, r, err, "not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.refs.FilterMenus(r.Context(), size), h.logger)
}

func (h *Handler) Genres(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveReferencePage(h, w, r, h.refs.Genres)
}

func (h *Handler) Platforms(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveReferencePage(h, w, r, h.refs.Platforms)
}

func (h *Handler) Tags(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveReferencePage(h, w, r, h.refs.Tags)
}

func (h *Handler) Stores(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveReferencePage(h, w, r, h.refs.Stores)
}

func (h *Handler) Creators(w nethttp.ResponseWriter, r *nethttp.Request) {
	serveReferencePage(h, w, r, h.refs.Creators)
}

func (h *Handler) Creator(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeFailure(w, r, err, "creator not found", h.logger)
		return
	}
	creator, err := h.refs.Creator(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "creator not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, creator, h.logger)
}
