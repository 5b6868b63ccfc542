package connector

import (
	"io"
	"strings"
	"sync"

	"github.com/razzie/jsonrpc"
	"github.com/razzie/reconchess/pkg/recon"
	"golang.org/x/net/websocket"
)

// Connection plays one game on a remote game server
type Connection struct {
	ws      io.Closer
	client  *jsonrpc.JsonRPC
	once    sync.Once
	done    chan struct{}
	history *recon.GameHistory
}

func NewConnection(sessionURL string, player recon.Player) (*Connection, error) {
	wsURL := strings.NewReplacer("http://", "ws://", "https://", "wss://", "/room/", "/ws/").Replace(sessionURL)
	ws, err := websocket.Dial(wsURL, "", wsURL)
	if err != nil {
		return nil, err
	}
	conn := &Connection{
		ws:     ws,
		client: jsonrpc.NewJsonRpc(ws),
		done:   make(chan struct{}),
	}
	conn.client.Register(&Player{conn: conn, player: player}, "")
	go func() {
		conn.client.Serve()
		conn.finish(nil)
	}()
	return conn, nil
}

// Wait blocks until the game ends or the server disconnects.
// The history is nil if the connection was lost before the end of the game.
func (conn *Connection) Wait() *recon.GameHistory {
	<-conn.done
	return conn.history
}

func (conn *Connection) Resign() {
	conn.client.Notify("Game.Resign", true)
}

func (conn *Connection) Close() error {
	return conn.ws.Close()
}

func (conn *Connection) finish(history *recon.GameHistory) {
	conn.once.Do(func() {
		conn.history = history
		close(conn.done)
	})
}
