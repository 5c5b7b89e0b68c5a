package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dinildamsith/game-explorer/internal/app/browse"
	"github.com/dinildamsith/game-explorer/internal/app/games"
	"github.com/dinildamsith/game-explorer/internal/app/listing"
	"github.com/dinildamsith/game-explorer/internal/domain"
	"github.com/dinildamsith/game-explorer/internal/logging"
)

const maxBrowseBody = 1 << 16

type sessionResponse struct {
	ID string `json:"id"`
	listing.Snapshot
	// Superseded marks a response whose own fetch lost to a newer filter change.
	Superseded bool `json:"superseded,omitempty"`
}

// CreateBrowse opens a browse session with optional initial filters and loads page 1.
func (h *Handler) CreateBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	var initial domain.QueryFilters
	if err := decodeBody(r, &initial); err != nil {
		writeFailure(w, r, err, "", h.logger)
		return
	}
	if err := validateOrdering(initial.Ordering); err != nil {
		writeFailure(w, r, err, "", h.logger)
		return
	}
	if err := games.ValidateFilters(initial.Normalized()); err != nil {
		writeFailure(w, r, err, "", h.logger)
		return
	}

	c := h.newBrowse(initial)
	id := h.sessions.Create(c)
	logging.Info(loggerFromContext(r, h.logger), "browse session created", logging.FieldSessionID, id)

	snap, err := c.Reload(sessionContext(r))
	h.writeSession(w, r, nethttp.StatusCreated, id, snap, err)
}

func (h *Handler) GetBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, c, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeSession(w, r, nethttp.StatusOK, id, c.Snapshot(), nil)
}

// PatchBrowse merges the given fields into the session filters and reloads page 1.
func (h *Handler) PatchBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, c, ok := h.session(w, r)
	if !ok {
		return
	}
	var patch browse.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, r, err, "", h.logger)
		return
	}
	if patch.IsEmpty() {
		writeError(w, r, nethttp.StatusBadRequest, "patch changes no filters", h.logger)
		return
	}
	snap, err := c.ApplyChecked(sessionContext(r), patch, validatePatchedFilters)
	if errors.Is(err, errInvalidParam) || errors.Is(err, games.ErrInvalidFilters) {
		writeFailure(w, r, err, "", h.logger)
		return
	}
	h.writeSession(w, r, nethttp.StatusOK, id, snap, err)
}

func (h *Handler) ClearBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, c, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := c.ClearFilters(sessionContext(r))
	h.writeSession(w, r, nethttp.StatusOK, id, snap, err)
}

// MoreBrowse appends the next page to the session listing.
func (h *Handler) MoreBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, c, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := c.LoadMore(sessionContext(r))
	h.writeSession(w, r, nethttp.StatusOK, id, snap, err)
}

// DeleteBrowse disposes the session; in-flight fetches are discarded.
func (h *Handler) DeleteBrowse(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "sid")
	if err := h.sessions.Delete(id); err != nil {
		writeFailure(w, r, err, "", h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "browse session closed", logging.FieldSessionID, id)
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *Handler) session(w nethttp.ResponseWriter, r *nethttp.Request) (string, *browse.Coordinator, bool) {
	id := chi.URLParam(r, "sid")
	c, err := h.sessions.Get(id)
	if err != nil {
		writeFailure(w, r, err, "", h.logger)
		return "", nil, false
	}
	return id, c, true
}

// writeSession renders the listing state. A failed fetch is part of that state
// (status "failed"), so only coordination errors become HTTP errors.
func (h *Handler) writeSession(w nethttp.ResponseWriter, r *nethttp.Request, status int, id string, snap listing.Snapshot, err error) {
	resp := sessionResponse{ID: id, Snapshot: snap}
	switch {
	case err == nil:
	case errors.Is(err, listing.ErrStale):
		resp.Superseded = true
	case errors.Is(err, listing.ErrAppendInFlight), errors.Is(err, listing.ErrLoadInFlight):
		writeError(w, r, nethttp.StatusConflict, err.Error(), h.logger)
		return
	case errors.Is(err, listing.ErrDisposed):
		writeError(w, r, nethttp.StatusGone, "browse session closed", h.logger)
		return
	default:
		logging.Warn(loggerFromContext(r, h.logger), "browse fetch failed",
			"error", err, logging.FieldSessionID, id)
	}
	writeJSON(w, status, resp, h.logger)
}

// sessionContext keeps request values but not its cancellation: a client that
// disconnects mid-load must not leave the session in a failed state.
func sessionContext(r *nethttp.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func decodeBody(r *nethttp.Request, dest any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBrowseBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return invalid("request body: %v", err)
	}
	return nil
}

// validatePatchedFilters runs under the session lock against the merged filters.
func validatePatchedFilters(f domain.QueryFilters) error {
	if err := validateOrdering(f.Ordering); err != nil {
		return err
	}
	return games.ValidateFilters(f)
}
