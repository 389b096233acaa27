package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/pubsub"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleFeedWs streams a game's solve feed over a websocket. Recent events
// are replayed first, then solves arrive live as they are ingested.
func (h *Handler) handleFeedWs(c *gin.Context) {
	gameID := c.Param("id")

	if _, err := database.GetGame(h.db, gameID); err != nil {
		c.String(http.StatusNotFound, "game not found")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Errorf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	msgChan, unsubscribe := pubsub.GetBroker().Subscribe(gameID)

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for msg := range msgChan {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zap.S().Warnf("error writing to websocket: %v", err)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.S().Infof("websocket unexpected close error: %v", err)
			}
			break
		}
	}

	// Detach before waiting: closing the subscriber channel is what ends the
	// writer goroutine, which would otherwise stay parked on a quiet feed.
	unsubscribe()
	<-clientClosed

	zap.S().Infof("solve feed websocket closed for game %s", gameID)
}
