package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/showroom"
)

// ShowroomHandler runs one browse session per websocket connection.
type ShowroomHandler struct {
	Loader *catalog.Loader
	Hub    *realtime.Hub
	Log    *logrus.Logger
}

func NewShowroomHandler(loader *catalog.Loader, hub *realtime.Hub, log *logrus.Logger) *ShowroomHandler {
	return &ShowroomHandler{Loader: loader, Hub: hub, Log: log}
}

// Upgrade validates :kind and only lets websocket handshakes through.
func (h *ShowroomHandler) Upgrade(c *fiber.Ctx) error {
	kind, ok := catalog.ParseKind(c.Params("kind"))
	if !ok {
		return fiber.ErrNotFound
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("kind", kind)
	return c.Next()
}

type wsMessage struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *ShowroomHandler) Serve(c *websocket.Conn) {
	kind, _ := c.Locals("kind").(catalog.Kind)
	client := realtime.NewClient(uuid.NewString(), kind, realtime.NewWebSocketConn(c))
	log := h.Log.WithFields(logrus.Fields{"client_id": client.ID, "kind": kind})

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Debug("showroom session closed")
	}()

	go func() {
		for msg := range client.Send {
			if err := client.Conn.WriteMessage(msg); err != nil {
				log.WithError(err).Debug("showroom write failed")
				return
			}
		}
	}()

	send := func(m wsMessage) {
		b, err := json.Marshal(m)
		if err != nil {
			log.WithError(err).Error("marshal showroom message")
			return
		}
		select {
		case client.Send <- b:
		default:
			log.Warn("showroom send buffer full, message dropped")
		}
	}

	load := func() ([]catalog.Product, bool) {
		products, err := h.Loader.Load(context.Background(), kind)
		if err != nil {
			log.WithError(err).Warn("showroom catalog load failed")
			send(wsMessage{Type: "error", Message: "Unable to load products"})
			return nil, false
		}
		return products, true
	}
	// a failed reload keeps the stale list
	reload := func(state showroom.State) showroom.State {
		if products, ok := load(); ok {
			return state.Reload(products)
		}
		return state
	}

	commands := make(chan showroom.Command)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var cmd showroom.Command
			if err := c.ReadJSON(&cmd); err != nil {
				return
			}
			// keepalives such as {"type":"pong"} carry no action
			if cmd.Action == "" {
				continue
			}
			commands <- cmd
		}
	}()

	initial, _ := load()
	state := showroom.New(kind, initial, c.Query("lang"))
	send(wsMessage{Type: "view", Data: state.View()})

	for {
		select {
		case <-closed:
			return

		case <-client.Reload:
			state = reload(state)
			send(wsMessage{Type: "view", Data: state.View()})

		case cmd := <-commands:
			if cmd.Action == showroom.ActionReload {
				state = reload(state)
				send(wsMessage{Type: "view", Data: state.View()})
				continue
			}
			next, err := state.Apply(cmd)
			if err != nil {
				send(wsMessage{Type: "error", Message: err.Error()})
				continue
			}
			state = next
			send(wsMessage{Type: "view", Data: state.View()})
		}
	}
}
