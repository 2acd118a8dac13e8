package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades requests to websocket connections and runs them as hub
// clients. An empty originPatterns list, or one containing "*", accepts any
// origin.
func Handler(hub *Hub, originPatterns []string) http.HandlerFunc {
	opts := &ws.AcceptOptions{OriginPatterns: originPatterns}
	for _, p := range originPatterns {
		if p == "*" {
			opts = &ws.AcceptOptions{InsecureSkipVerify: true}
			break
		}
	}
	if len(originPatterns) == 0 {
		opts = &ws.AcceptOptions{InsecureSkipVerify: true}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, opts)
		if err != nil {
			hub.logger.Warn("accept websocket", "error", err)
			return
		}
		NewClient(hub, conn).Run(r.Context())
	}
}
