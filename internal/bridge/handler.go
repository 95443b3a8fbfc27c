package bridge

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades requests to WebSocket and runs them as hub clients.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			// The agent only listens on the device itself; any local
			// origin (file://, localhost ports) may connect.
			InsecureSkipVerify: true,
		})
		if err != nil {
			hub.logger.Error("websocket accept", "error", err)
			return
		}

		client := newClient(hub, conn)
		client.run(r.Context())
	}
}
