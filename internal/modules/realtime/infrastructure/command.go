package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"veroxos/internal/modules/realtime/application/port"
	"veroxos/internal/modules/realtime/domain"
)

// Command is a client-to-server frame.
type Command struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// roomPayload addresses a restaurant room by slug.
type roomPayload struct {
	Slug string `json:"slug"`
}

// CommandProcessor routes client commands. Join and leave are idempotent;
// unknown actions are logged and ignored.
type CommandProcessor struct {
	hub             *Hub
	snapshots       port.BoardSnapshotFetcher
	snapshotTimeout time.Duration
}

func NewCommandProcessor(hub *Hub, snapshots port.BoardSnapshotFetcher) *CommandProcessor {
	return &CommandProcessor{
		hub:             hub,
		snapshots:       snapshots,
		snapshotTimeout: 10 * time.Second,
	}
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case "join-restaurant":
		p.handleJoin(client, cmd)
	case "leave-restaurant":
		p.handleLeave(client, cmd)
	case "ping":
		client.SendMessage(&domain.Message{Event: domain.EventPong, Timestamp: time.Now().UTC()})
	default:
		slog.Debug("ws command ignored", slog.String("clientId", client.id), slog.String("action", cmd.Action))
	}
}

func (p *CommandProcessor) handleJoin(client *Client, cmd Command) {
	slug, ok := decodeSlug(client, cmd)
	if !ok {
		return
	}
	room := domain.RoomName(slug)
	p.hub.join(client, room)
	client.SendMessage(&domain.Message{
		Event:     domain.EventJoinedRestaurant,
		Room:      room,
		Data:      map[string]any{"success": true, "room": room},
		Timestamp: time.Now().UTC(),
	})
	p.sendBoardSnapshot(client, slug, room)
}

func (p *CommandProcessor) handleLeave(client *Client, cmd Command) {
	slug, ok := decodeSlug(client, cmd)
	if !ok {
		return
	}
	room := domain.RoomName(slug)
	p.hub.leave(client, room)
	client.SendMessage(&domain.Message{
		Event:     domain.EventLeftRestaurant,
		Room:      room,
		Data:      map[string]any{"success": true},
		Timestamp: time.Now().UTC(),
	})
}

// sendBoardSnapshot gives a joining client the current board so it does not
// need a separate REST refetch after reconnecting.
func (p *CommandProcessor) sendBoardSnapshot(client *Client, slug, room string) {
	if p.snapshots == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.snapshotTimeout)
	defer cancel()
	orders, err := p.snapshots.BoardSnapshot(ctx, slug)
	if err != nil {
		slog.Warn("board snapshot failed", slog.String("clientId", client.id), slog.String("room", room), slog.Any("error", err))
		return
	}
	client.SendMessage(&domain.Message{
		Event:     domain.EventOrdersSnapshot,
		Room:      room,
		Data:      orders,
		Timestamp: time.Now().UTC(),
	})
}

func decodeSlug(client *Client, cmd Command) (string, bool) {
	var payload roomPayload
	if len(cmd.Payload) > 0 {
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			client.SendMessage(&domain.Message{
				Event:     domain.EventError,
				Data:      map[string]string{"error": "invalid payload"},
				Timestamp: time.Now().UTC(),
			})
			return "", false
		}
	}
	slug := strings.TrimSpace(payload.Slug)
	if slug == "" {
		client.SendMessage(&domain.Message{
			Event:     domain.EventError,
			Data:      map[string]string{"error": "missing slug"},
			Timestamp: time.Now().UTC(),
		})
		return "", false
	}
	return slug, true
}
