package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dominiofast/sistema-restaurante-dominio-sub001/kanban"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSController endpoint WebSocket do dashboard.
type WSController struct {
	Hub *kanban.Hub
}

func NewWSController(hub *kanban.Hub) *WSController {
	return &WSController{Hub: hub}
}

func (wc *WSController) Handle(c *gin.Context) {
	if _, exists := c.Get("company_id"); !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := wc.Hub.Register(ws)
	go client.WritePump()
	client.ReadPump()
}
