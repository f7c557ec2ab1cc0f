package lock

import (
	"context"
	"strconv"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device"
	"github.com/go-home-io/ttlock/device/enums"
	"github.com/go-home-io/ttlock/utils"
	"github.com/pkg/errors"
)

// SetTargetState invokes lock or unlock command.
// Vendor endpoints are direction based, so action is derived from the cached state.
// State is flipped and pushed before the vendor call and rolled back if command fails.
// Returned outcome is never nil and always holds the final state.
func (e *engine) SetTargetState(ctx context.Context, id int64, desiredLocked bool) (*device.CommandOutcome, error) {
	l := e.get(id)
	l.op.Lock()
	defer l.op.Unlock()

	previous := l.getLocked()
	action := enums.ActionFromState(previous)
	fields := []string{common.LogLockIDToken, lockID(id),
		common.LogLockNameToken, l.getName(), common.LogLockActionToken, action.String()}

	e.logger.Info("Received target state", append(fields, common.LogTargetToken, strconv.FormatBool(desiredLocked))...)
	if desiredLocked != action.ResultingState() {
		e.logger.Debug("Target state doesn't match cached state, toggling anyway", fields...)
	}

	l.setLocked(action.ResultingState())
	e.publish(l, enums.CharCurrentLockState, action.ResultingState())

	outcome := &device.CommandOutcome{Action: action.String()}
	err := e.execute(ctx, id, action, outcome)
	if err != nil {
		l.setLocked(previous)

		var rejected *utils.ErrVendorRejected
		switch {
		case errors.As(err, &rejected) && rejected.IsGatewayBusy():
			e.logger.Warn("Gateway is busy, rolling back lock state", fields...)
		case nil != rejected:
			e.logger.Warn("Command rejected, rolling back lock state",
				append(fields, common.LogVendorCodeToken, strconv.Itoa(rejected.Code))...)
		default:
			e.logger.Warn("Failed to execute command, rolling back lock state",
				append(fields, common.LogErrorToken, err.Error())...)
		}
	} else {
		outcome.Success = true
		e.logger.Info("Command executed", fields...)
	}

	outcome.ResultingLocked = l.getLocked()
	e.publish(l, enums.CharCurrentLockState, outcome.ResultingLocked)
	return outcome, err
}

// Obtains token and sends command.
// Vendor error code is stored in the outcome.
func (e *engine) execute(ctx context.Context, id int64, action enums.LockAction,
	outcome *device.CommandOutcome) error {
	token, err := e.tokens.GetToken(ctx, e.maxAPIRetry)
	if err != nil {
		return err
	}

	resp, err := e.vendor.ExecuteAction(ctx, action, id, token)
	if err != nil {
		return err
	}

	if 0 != resp.ErrCode {
		code := resp.ErrCode
		outcome.VendorErrorCode = &code
		return &utils.ErrVendorRejected{Operation: action.String(), Code: code, Message: resp.ErrMsg}
	}

	return nil
}
