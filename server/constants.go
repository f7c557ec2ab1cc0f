package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlLockID describes lock ID URL param.
	urlLockID muxKeys = "lockID"
	// ctxtUserName describes user in the context.
	ctxtUserName muxKeys = "user"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// routePublic describes public api prefix.
	routePublic = "/pub"
)

const (
	// Server logger provider name.
	loggerProvider = "bridge"

	// Anonymous user name, used when security is disabled.
	anonymousUser = "anonymous"

	// WS ping message.
	wsPing = "ping"
	// WS ping response.
	wsPong = "pong"
)
