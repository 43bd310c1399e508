package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"veroxos/internal/modules/realtime/application/port"
	"veroxos/internal/modules/realtime/domain"
	"veroxos/internal/modules/realtime/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewOrdersWebsocketHandler exposes /ws/orders. Connections start with no
// room memberships and join via join-restaurant commands.
func NewOrdersWebsocketHandler(
	hub *infrastructure.Hub,
	snapshots port.BoardSnapshotFetcher,
	sendBuffer int,
) echo.HandlerFunc {
	commands := infrastructure.NewCommandProcessor(hub, snapshots)

	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws upgrade failed", slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, sendBuffer, commands)
		hub.AttachClient(client)

		go client.WritePump()
		go client.ReadPump()

		client.SendMessage(&domain.Message{
			Event:     domain.EventConnected,
			Data:      map[string]string{"clientId": client.ID()},
			Timestamp: time.Now().UTC(),
		})
		return nil
	}
}

// NewFirehoseWebsocketHandler exposes /ws/orders/firehose: a read-only feed
// of every relayed order event regardless of restaurant, for dashboards.
func NewFirehoseWebsocketHandler(hub *infrastructure.Hub, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws upgrade failed", slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, sendBuffer, nil)
		hub.AttachGlobal(client)

		go client.WritePump()
		go client.ReadPump()

		client.SendMessage(&domain.Message{
			Event:     domain.EventConnected,
			Data:      map[string]string{"clientId": client.ID()},
			Timestamp: time.Now().UTC(),
		})
		return nil
	}
}
