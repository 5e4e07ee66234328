// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/go-chi/chi/v5"
)

// routeMethods are the methods probed when building the Allow header.
var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// CheckHTTPMethod returns the handler registered as the router's
// MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// It answers 405 with a JSON error body and an Allow header listing the
// methods that the path does serve. If no method matches after all (a
// pattern that exists only as a prefix), it answers like [notFound].
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routeMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) == 0 {
			notFound(w, r)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteJSON(w, errorResponse{
			Error: http.StatusText(http.StatusMethodNotAllowed),
			Code:  "method_not_allowed",
		}, http.StatusMethodNotAllowed)
	}
}

// notFound is the router's NotFound handler.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, errorResponse{
		Error: http.StatusText(http.StatusNotFound),
		Code:  "not_found",
	}, http.StatusNotFound)
}
