package server

import "net/http"

// Performs quick check whether bridge is up.
func (s *TTLockServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}
