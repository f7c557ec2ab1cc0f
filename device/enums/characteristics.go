// Package enums contains enumerations shared between the lock engine and the hub.
package enums

import "fmt"

// Characteristic describes enum with characteristics pushed to the hub.
type Characteristic int

const (
	// CharCurrentLockState describes current lock state characteristic.
	CharCurrentLockState Characteristic = iota
	// CharBatteryLevel describes battery level characteristic.
	CharBatteryLevel
	// CharLowBattery describes low battery flag characteristic.
	CharLowBattery
)

var characteristicNames = map[Characteristic]string{
	CharCurrentLockState: "current_lock_state",
	CharBatteryLevel:     "battery_level",
	CharLowBattery:       "low_battery",
}

// String returns characteristic name.
func (i Characteristic) String() string {
	if s, ok := characteristicNames[i]; ok {
		return s
	}

	return fmt.Sprintf("Characteristic(%d)", int(i))
}

// CharacteristicString returns enum value from its string representation.
func CharacteristicString(s string) (Characteristic, error) {
	for k, v := range characteristicNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to Characteristic values", s)
}

// MarshalText implements the encoding.TextMarshaler interface.
// Used as a map key in the update messages.
func (i Characteristic) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *Characteristic) UnmarshalText(text []byte) error {
	var err error
	*i, err = CharacteristicString(string(text))
	return err
}
