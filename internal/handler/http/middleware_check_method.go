// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

var errRouteFound = errors.New("route found")

// CheckHTTPMethod returns a handler for [chi.Mux.MethodNotAllowed] that
// answers 404 instead of 405, so that a wrong method does not reveal that a
// path exists.
//
// The registered routes are walked with [chi.Walk], so routes inside
// Route and Mount subrouters are seen with their full pattern. A request is
// handed back to the router only when a leaf route really serves its method.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !routeServes(router, r.Method, r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

// routeServes reports whether a leaf route registered for method matches path.
func routeServes(routes chi.Routes, method, path string) bool {
	err := chi.Walk(routes, func(m, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if (m == method || m == "*") && patternMatches(pattern, path) {
			return errRouteFound
		}
		return nil
	})
	return errors.Is(err, errRouteFound)
}

// patternMatches matches path against a chi pattern. A {param} segment
// matches any non-empty segment and a trailing * matches the rest.
func patternMatches(pattern, path string) bool {
	patternParts := splitPath(pattern)
	pathParts := splitPath(path)

	for i, part := range patternParts {
		if part == "*" && i == len(patternParts)-1 {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
