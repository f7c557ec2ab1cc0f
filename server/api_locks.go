package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/utils"
	"github.com/gorilla/mux"
)

// Target state request body.
type targetRequest struct {
	Locked *bool `json:"locked"`
}

// Responds with all known locks.
func (s *TTLockServer) getLocks(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.Settings.Locks().GetAll())
}

// Responds with cached lock state and schedules background refresh.
// Fresh state is delivered through the WS stream.
func (s *TTLockServer) getLock(writer http.ResponseWriter, request *http.Request) {
	lockID, state, err := s.requestedLock(request)
	if err != nil {
		respondError(writer, errorStatus(err), err)
		return
	}

	s.runBackground(func(ctx context.Context) {
		s.Settings.Locks().RefreshCurrentState(ctx, lockID) // nolint: errcheck, gosec
	})

	respond(writer, state)
}

// Sets desired lock state.
func (s *TTLockServer) setTarget(writer http.ResponseWriter, request *http.Request) {
	lockID, _, err := s.requestedLock(request)
	if err != nil {
		respondError(writer, errorStatus(err), err)
		return
	}

	body := &targetRequest{}
	err = json.NewDecoder(request.Body).Decode(body)
	if err != nil || nil == body.Locked {
		respondError(writer, http.StatusBadRequest, &ErrBadRequest{Reason: "locked flag is required"})
		return
	}

	s.Logger.Info("Received lock command", common.LogUserNameToken, getContextUser(request),
		common.LogLockIDToken, mux.Vars(request)[string(urlLockID)])

	outcome, err := s.Settings.Locks().SetTargetState(request.Context(), lockID, *body.Locked)
	if nil == outcome {
		respondError(writer, errorStatus(err), err)
		return
	}

	if err != nil || !outcome.Success {
		respondStatus(writer, http.StatusBadGateway, outcome)
		return
	}

	respond(writer, outcome)
}

// Synchronously refreshes lock battery level.
func (s *TTLockServer) refreshBattery(writer http.ResponseWriter, request *http.Request) {
	lockID, _, err := s.requestedLock(request)
	if err != nil {
		respondError(writer, errorStatus(err), err)
		return
	}

	_, err = s.Settings.Locks().RefreshBatteryLevel(request.Context(), lockID)
	if err != nil {
		respondError(writer, errorStatus(err), err)
		return
	}

	state, _ := s.Settings.Locks().GetState(lockID)
	respond(writer, state)
}

// Returns lock referenced by the request URL.
// Only registered locks are exposed.
func (s *TTLockServer) requestedLock(request *http.Request) (int64, *device.LockState, error) {
	raw := mux.Vars(request)[string(urlLockID)]
	lockID, err := utils.ParseLockID(raw)
	if err != nil {
		return 0, nil, err
	}

	state, ok := s.Settings.Locks().GetState(lockID)
	if !ok {
		return 0, nil, &utils.ErrUnknownLock{ID: raw}
	}

	return lockID, state, nil
}
