package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/duet-dev/duet/db"
	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/types"
	"github.com/duet-dev/duet/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	relationshipClients   = make(map[uint]map[*websocket.Conn]bool)
	relationshipClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRelationshipRefresh tells both partners' clients to refetch the
// entry list. The signal carries no entry content, so nothing private can
// leak through it.
func BroadcastRelationshipRefresh(relationshipID uint) {
	relationshipClientsMu.RLock()
	clients, exists := relationshipClients[relationshipID]
	if !exists || len(clients) == 0 {
		relationshipClientsMu.RUnlock()
		return
	}

	// Copy the set so the lock is not held while writing to sockets
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	relationshipClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "Diary entries updated",
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			relationshipClientsMu.Lock()
			if clients, exists := relationshipClients[relationshipID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(relationshipClients, relationshipID)
				}
			}
			relationshipClientsMu.Unlock()
			conn.Close()
		}
	}
}

func WebSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// The feed is scoped by the caller's own relationship, never by a
	// client-supplied id.
	var profile models.Profile

	if err := db.DB.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	if profile.RelationshipID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No relationship found"})
		return
	}

	relationshipID := *profile.RelationshipID
	connID := uuid.NewString()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Non-browser clients (the CLI) send no Origin
				return true
			}
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	relationshipClientsMu.Lock()
	if relationshipClients[relationshipID] == nil {
		relationshipClients[relationshipID] = make(map[*websocket.Conn]bool)
	}
	relationshipClients[relationshipID][conn] = true
	relationshipClientsMu.Unlock()

	defer func() {
		relationshipClientsMu.Lock()

		if clients, exists := relationshipClients[relationshipID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(relationshipClients, relationshipID)
			}
		}

		relationshipClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection %s closed for relationship %d", connID, relationshipID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for connection %s: %v", connID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for connection %s: %v", connID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for connection %s: %v", connID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for connection %s: %v", connID, err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			log.Printf("Received message from connection %s: %s", connID, string(message))
		case websocket.PongMessage:
			log.Printf("Received pong from connection %s", connID)
		}
	}
}
