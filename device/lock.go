// Package device contains lock definitions shared between the core and the hub.
package device

// LockIdentity contains immutable lock metadata, received from the vendor lock list.
type LockIdentity struct {
	LockID           int64  `json:"lock_id"`
	Name             string `json:"name"`
	Alias            string `json:"alias"`
	LockMac          string `json:"mac"`
	GroupID          string `json:"group_id"`
	HasGateway       bool   `json:"has_gateway"`
	ElectricQuantity int    `json:"electric_quantity"`
}

// LockState returns information about known lock.
type LockState struct {
	LockID       int64         `json:"lock_id"`
	Name         string        `json:"name"`
	Locked       bool          `json:"locked"`
	BatteryLevel uint8         `json:"battery_level"`
	LowBattery   bool          `json:"low_battery"`
	Identity     *LockIdentity `json:"identity,omitempty"`
}

// CommandOutcome describes result of a single lock/unlock command.
type CommandOutcome struct {
	Success         bool   `json:"success"`
	Action          string `json:"action"`
	VendorErrorCode *int   `json:"vendor_error_code,omitempty"`
	ResultingLocked bool   `json:"locked"`
}
