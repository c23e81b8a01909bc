package handlers

import "net/http"

// RootHandler serves the service banner at GET /.
type RootHandler struct {
	serviceName string
	version     string
}

// NewRootHandler creates a RootHandler reporting the given identity.
func NewRootHandler(serviceName, version string) *RootHandler {
	return &RootHandler{serviceName: serviceName, version: version}
}

// Banner handles GET /.
func (h *RootHandler) Banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": h.serviceName + " is running",
		"service": h.serviceName,
		"version": h.version,
	})
}
