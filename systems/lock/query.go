package lock

import (
	"context"
	"strconv"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/device/enums"
	"github.com/go-home-io/ttlock/systems/vendor"
	"github.com/go-home-io/ttlock/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// RefreshCurrentState requests lock state from the gateway.
// Best known state is pushed to the hub regardless of the result,
// battery level refresh is scheduled afterwards.
func (e *engine) RefreshCurrentState(ctx context.Context, id int64) (bool, error) {
	l := e.get(id)
	locked, err := e.refreshState(ctx, l)

	e.background(func(bgCtx context.Context) {
		if _, err := e.RefreshBatteryLevel(bgCtx, id); err != nil {
			e.logger.Debug("Background battery refresh failed", common.LogLockIDToken, lockID(id),
				common.LogErrorToken, err.Error())
		}
	})

	return locked, err
}

// Queries state under lock operation scope.
func (e *engine) refreshState(ctx context.Context, l *lockEntry) (bool, error) {
	l.op.Lock()
	defer l.op.Unlock()

	fields := []string{common.LogLockIDToken, lockID(l.id),
		common.LogLockNameToken, l.getName()}

	err := e.queryState(ctx, l)
	if err != nil {
		e.logger.Warn("Failed to get lock state", append(fields, common.LogErrorToken, err.Error())...)
	}

	locked := l.getLocked()
	e.publish(l, enums.CharCurrentLockState, locked)
	return locked, err
}

// Obtains token and maps vendor open state onto the cached state.
func (e *engine) queryState(ctx context.Context, l *lockEntry) error {
	token, err := e.tokens.GetToken(ctx, e.maxAPIRetry)
	if err != nil {
		return err
	}

	resp, err := e.vendor.QueryOpenState(ctx, l.id, token)
	if err != nil {
		return err
	}

	state := enums.OpenState(resp.State)
	if !state.IsKnown() {
		return errors.Errorf("gateway reported unknown lock state %d", resp.State)
	}

	l.setLocked(state.Locked())
	return nil
}

// RefreshBatteryLevel requests lock details and pushes battery level and low battery flag.
// Previous values are kept on failure.
func (e *engine) RefreshBatteryLevel(ctx context.Context, id int64) (uint8, error) {
	l := e.get(id)
	l.op.Lock()
	defer l.op.Unlock()

	fields := []string{common.LogLockIDToken, lockID(id),
		common.LogLockNameToken, l.getName()}

	level, err := e.queryBattery(ctx, id)
	if err != nil {
		e.logger.Warn("Failed to get battery level", append(fields, common.LogErrorToken, err.Error())...)
		return l.getBattery().Level, err
	}

	reading := batteryReading{Known: true, Level: level, Low: level < e.batteryLowLevel}
	if cmp.Equal(reading, l.getBattery()) {
		return level, nil
	}

	l.setBattery(reading)
	e.logger.Debug("Battery level updated", append(fields, common.LogCharacteristicToken,
		enums.CharBatteryLevel.String(), common.LogValueToken, strconv.Itoa(int(level)))...)

	e.publish(l, enums.CharBatteryLevel, reading.Level)
	e.publish(l, enums.CharLowBattery, reading.Low)
	return level, nil
}

// Obtains token and parses vendor battery level.
func (e *engine) queryBattery(ctx context.Context, id int64) (uint8, error) {
	token, err := e.tokens.GetToken(ctx, e.maxAPIRetry)
	if err != nil {
		return 0, err
	}

	resp, err := e.vendor.GetLockDetail(ctx, id, token)
	if err != nil {
		return 0, err
	}

	level, err := vendor.ParseBatteryLevel(resp.ElectricQuantity)
	if err != nil {
		return 0, &utils.ErrVendorRejected{Operation: "detail", Message: err.Error()}
	}

	return level, nil
}
