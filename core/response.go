package core

import "net/http"

// Response renders itself to an http.ResponseWriter.
// Handlers return a Response instead of writing directly, which keeps
// status codes and encoding in one place.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Render writes a response, falling back to a plain 500 if encoding fails
// after headers may already be written.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := resp.Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
