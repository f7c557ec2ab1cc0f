package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogLockIDToken describes lock ID log entry.
	LogLockIDToken = "lock_id"
	// LogLockNameToken describes lock name log entry.
	LogLockNameToken = "lock_name"
	// LogLockActionToken describes lock action log entry.
	LogLockActionToken = "action"
	// LogCharacteristicToken describes characteristic log entry.
	LogCharacteristicToken = "characteristic"
	// LogVendorCodeToken describes vendor error code log entry.
	LogVendorCodeToken = "errcode"
	// LogAttemptToken describes retry attempt log entry.
	LogAttemptToken = "attempt"
	// LogUserNameToken describes user name log entry.
	LogUserNameToken = "user"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogTargetToken describes requested lock state log entry.
	LogTargetToken = "target"
	// LogValueToken describes characteristic value log entry.
	LogValueToken = "value"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogNameToken describes name log entry.
	LogNameToken = "name"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)
