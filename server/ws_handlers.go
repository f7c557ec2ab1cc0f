package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/utils"
	"github.com/gorilla/websocket"
)

const (
	// wsCmdTarget sets desired lock state.
	wsCmdTarget = "target"
	// wsCmdRefresh refreshes lock state.
	wsCmdRefresh = "refresh"
	// wsCmdBattery refreshes lock battery level.
	wsCmdBattery = "battery"

	// wsWriteTimeout limits every write into the WS connection.
	wsWriteTimeout = 10 * time.Second
)

type wsCmd struct {
	ID  string      `json:"id"`
	Cmd string      `json:"cmd"`
	Val interface{} `json:"value"`
}

// Single WS connection.
// Gorilla connections support only one concurrent writer.
type wsConnection struct {
	sync.Mutex
	conn *websocket.Conn
	user string
}

func (c *wsConnection) writeJSON(v interface{}) error {
	c.Lock()
	defer c.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) // nolint: errcheck, gosec
	return c.conn.WriteJSON(v)
}

func (c *wsConnection) writeMessage(mt int, data []byte) error {
	c.Lock()
	defer c.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) // nolint: errcheck, gosec
	return c.conn.WriteMessage(mt, data)
}

// Handles WS upgrade request.
func (s *TTLockServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	usr := getContextUser(request)
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogUserNameToken, usr)
		return
	}

	go s.processWSConnection(&wsConnection{conn: c, user: usr})
}

// Pushes lock updates into the WS connection until either side stops.
// Connection is closed when a push fails or fan-out drops the subscriber.
func (s *TTLockServer) processWSConnection(conn *wsConnection) {
	stop := make(chan bool, 1)
	go s.processIncomingWSMessages(conn, stop)
	subID, updates := s.Settings.FanOut().SubscribeLockUpdates()
	defer s.Settings.FanOut().UnSubscribeLockUpdates(subID)

	for {
		select {
		case <-stop:
			return
		case <-s.ctx.Done():
			conn.conn.Close() // nolint: errcheck, gosec
			return
		case msg, ok := <-updates:
			if !ok {
				conn.conn.Close() // nolint: errcheck, gosec
				return
			}

			err := conn.writeJSON(msg)
			if err != nil {
				s.Logger.Warn("Failed to push lock update", common.LogUserNameToken, conn.user,
					common.LogErrorToken, err.Error())
				conn.conn.Close() // nolint: errcheck, gosec
				return
			}
		}
	}
}

// Processes incoming WS messages.
func (s *TTLockServer) processIncomingWSMessages(conn *wsConnection, stop chan bool) {
	defer conn.conn.Close() // nolint: errcheck
	for {
		mt, message, err := conn.conn.ReadMessage()
		if err != nil {
			s.Logger.Info("Closing WS connection for user", common.LogUserNameToken, conn.user)
			stop <- true
			return
		}

		// Ping request comes as a un-wrapped string
		if wsPing == string(message) {
			conn.writeMessage(mt, []byte(wsPong)) // nolint: gosec, errcheck
			continue
		}

		cmd := &wsCmd{}
		err = json.Unmarshal(message, cmd)
		if err != nil {
			s.Logger.Error("Failed to un-marshal WS command", err, common.LogUserNameToken, conn.user)
			continue
		}

		s.invokeWSCommand(conn.user, cmd)
	}
}

// Executes WS command in background.
// Results are delivered as regular lock updates.
func (s *TTLockServer) invokeWSCommand(user string, cmd *wsCmd) {
	lockID, err := utils.ParseLockID(cmd.ID)
	if err != nil {
		s.Logger.Warn("Received WS command for unknown lock", common.LogUserNameToken, user,
			common.LogLockIDToken, cmd.ID)
		return
	}

	if _, ok := s.Settings.Locks().GetState(lockID); !ok {
		s.Logger.Warn("Received WS command for unknown lock", common.LogUserNameToken, user,
			common.LogLockIDToken, cmd.ID)
		return
	}

	switch cmd.Cmd {
	case wsCmdTarget:
		desired, ok := cmd.Val.(bool)
		if !ok {
			s.Logger.Warn("Received WS command with wrong value", common.LogUserNameToken, user,
				common.LogLockIDToken, cmd.ID)
			return
		}

		s.Logger.Info("Received lock command", common.LogUserNameToken, user, common.LogLockIDToken, cmd.ID)
		s.runBackground(func(ctx context.Context) {
			s.Settings.Locks().SetTargetState(ctx, lockID, desired) // nolint: errcheck, gosec
		})
	case wsCmdRefresh:
		s.runBackground(func(ctx context.Context) {
			s.Settings.Locks().RefreshCurrentState(ctx, lockID) // nolint: errcheck, gosec
		})
	case wsCmdBattery:
		s.runBackground(func(ctx context.Context) {
			s.Settings.Locks().RefreshBatteryLevel(ctx, lockID) // nolint: errcheck, gosec
		})
	default:
		s.Logger.Warn("Received unknown WS command", common.LogUserNameToken, user,
			common.LogLockIDToken, cmd.ID, common.LogNameToken, cmd.Cmd)
	}
}
