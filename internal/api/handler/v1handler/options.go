package v1handler

import (
	"encoding/json"
	"net/http"
	"sitescan/pkg/domain"
	"sitescan/pkg/serrors"
)

// GetOptions answers with the stored options and local modifications.
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.deps.Options.Snapshot())
}

// UpdateOptions merges the body into the local modifications. Running scans
// are cancelled by the session when an invalidating option changes.
func (h *Handler) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	var updates domain.Options
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid options"))
		return
	}
	if len(updates) == 0 {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "no options to update"))
		return
	}

	h.deps.Options.Update(updates)
	writeJSON(r.Context(), w, http.StatusOK, h.deps.Options.Snapshot())
}

// SaveOptions persists the local modifications to the site.
func (h *Handler) SaveOptions(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Options.Save(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Options.Snapshot())
}
