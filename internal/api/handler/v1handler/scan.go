package v1handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sitescan/internal/sitescan"
	"sitescan/pkg/serrors"
)

// GetScan answers with the current scan view.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.deps.Scanner.View())
}

// StartScan starts a scan. The body is optional.
func (h *Handler) StartScan(w http.ResponseWriter, r *http.Request) {
	var args sitescan.StartArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid start request"))
		return
	}

	if !h.deps.Scanner.Start(r.Context(), args) {
		view := h.deps.Scanner.View()
		h.writeError(w, r, serrors.With(serrors.ErrConflict, "scan cannot start while %q", view.Status))
		return
	}

	writeJSON(r.Context(), w, http.StatusAccepted, h.deps.Scanner.View())
}

// CancelScan cancels the running scan.
func (h *Handler) CancelScan(w http.ResponseWriter, r *http.Request) {
	if !h.deps.Scanner.Cancel(r.Context()) {
		view := h.deps.Scanner.View()
		h.writeError(w, r, serrors.With(serrors.ErrConflict, "no scan to cancel while %q", view.Status))
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.deps.Scanner.View())
}
