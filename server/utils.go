package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/utils"
)

// Error API response.
type errorResponse struct {
	Status  string `json:"status"`
	Problem string `json:"problem"`
}

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck, gosec
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	respondStatus(writer, http.StatusOK, data)
}

// API respond with custom status.
func respondStatus(writer http.ResponseWriter, status int, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, err)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: errcheck, gosec
}

// Return HTTP_UNAUTHORIZED status.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", `Basic realm="ttlock"`)
	http.Error(writer, "Unauthorized", http.StatusUnauthorized)
}

// Error API response.
func respondError(writer http.ResponseWriter, status int, err error) {
	d, _ := json.Marshal(&errorResponse{Status: "ERROR", Problem: err.Error()}) // nolint: gosec
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: errcheck, gosec
}

// Returns status code for a lock operation error.
func errorStatus(err error) int {
	switch err.(type) {
	case *utils.ErrUnknownLock:
		return http.StatusNotFound
	case *ErrBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// Logger middleware for the API.
func (s *TTLockServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI,
			common.LogUserNameToken, getContextUser(r))
		next.ServeHTTP(w, r)
	})
}

// Authz middleware.
// Every request is allowed when no users are configured.
func (s *TTLockServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := anonymousUser
		if s.Settings.Security().IsEnabled() {
			usr, err := s.Settings.Security().GetUser(r.Header)
			if err != nil {
				s.Logger.Warn("Unauthorized access attempt", common.LogURLToken, r.RequestURI)
				respondUnAuth(w)
				return
			}

			user = usr
		}

		ctx := context.WithValue(r.Context(), ctxtUserName, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gets current user out of context.
func getContextUser(request *http.Request) string {
	usr, ok := request.Context().Value(ctxtUserName).(string)
	if !ok {
		return anonymousUser
	}

	return usr
}
