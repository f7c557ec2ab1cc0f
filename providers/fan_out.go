package providers

import "github.com/go-home-io/ttlock/common"

// IFanOutProvider defines interface used for distributing
// lock updates to every hub listener.
type IFanOutProvider interface {
	SubscribeLockUpdates() (int64, chan *common.MsgLockUpdate)
	UnSubscribeLockUpdates(int64)
}

// IInternalFanOutProvider defines internal interface for the fan-out channel.
type IInternalFanOutProvider interface {
	IFanOutProvider

	Publish(*common.MsgLockUpdate)
	Close()
}
