// Package core provides the shared HTTP surface used by all API modules:
// a Response interface with JSON renderers, typed HTTP errors, field-level
// validation errors, and strict JSON request binding.
//
// Handlers return a core.Response and hand it to core.Render, which keeps
// status codes and encoding consistent across modules:
//
//	func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
//	    plan, err := h.svc.Plan(r.Context(), chi.URLParam(r, "id"))
//	    if err != nil {
//	        core.Render(w, r, core.JSONError(core.ErrNotFound))
//	        return
//	    }
//	    core.Render(w, r, core.JSON("plan", plan, nil))
//	}
//
// JSONError maps ValidationError to 422 with per-field details and HTTPError
// to its status code and key; anything else becomes a generic 500.
package core
