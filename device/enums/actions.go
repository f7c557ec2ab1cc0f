package enums

import "fmt"

// LockAction describes direction-based vendor lock endpoints.
type LockAction int

const (
	// ActionLock describes lock endpoint.
	ActionLock LockAction = iota
	// ActionUnlock describes unlock endpoint.
	ActionUnlock
)

// String returns endpoint name.
func (i LockAction) String() string {
	switch i {
	case ActionLock:
		return "lock"
	case ActionUnlock:
		return "unlock"
	}

	return fmt.Sprintf("LockAction(%d)", int(i))
}

// ActionFromState returns the only action vendor accepts for the cached state.
// Locked lock can be unlocked only, unlocked lock can be locked only.
func ActionFromState(cachedLocked bool) LockAction {
	if cachedLocked {
		return ActionUnlock
	}

	return ActionLock
}

// ResultingState returns lock state after successful action.
func (i LockAction) ResultingState() bool {
	return i == ActionLock
}

// OpenState describes vendor queryOpenState values.
type OpenState int

const (
	// OpenStateSecured describes locked lock.
	OpenStateSecured OpenState = 0
	// OpenStateUnsecured describes unlocked lock.
	OpenStateUnsecured OpenState = 1
	// OpenStateUnknown is reported when gateway can't reach the lock.
	OpenStateUnknown OpenState = 2
)

// IsKnown checks whether state maps onto a lock state.
func (i OpenState) IsKnown() bool {
	return i == OpenStateSecured || i == OpenStateUnsecured
}

// Locked converts vendor open state into a lock flag.
func (i OpenState) Locked() bool {
	return i == OpenStateSecured
}

// GatewayBusyCode is returned by vendor when the gateway is processing another request.
const GatewayBusyCode = -3003
