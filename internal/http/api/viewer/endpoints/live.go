package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	"github.com/helios-signage/helios/internal/http/api/viewer/packets"
	"github.com/helios-signage/helios/internal/live"
	"github.com/helios-signage/helios/internal/playback"
	redisclient "github.com/helios-signage/helios/internal/redis"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveController struct {
	store db.Store
	hub   *live.Hub
	coord *live.Coordinator
}

func NewLiveController(store db.Store, hub *live.Hub, coord *live.Coordinator) *LiveController {
	return &LiveController{store: store, hub: hub, coord: coord}
}

func LiveModule(store db.Store, hub *live.Hub, coord *live.Coordinator) api.Module {
	ctl := NewLiveController(store, hub, coord)
	return api.ModuleFunc(func(c *api.Controller) {
		c.Raw(http.MethodGet, "/live", ctl.subscribe)
		c.GETPublic("/current", ctl.currentSlide)
	})
}

// subscribe upgrades the connection and registers it with the hub. The new
// viewer immediately gets one unicast of the current slide without waiting
// for the next tick. Incoming messages may request a manual refresh or an
// out-of-schedule content check.
func (l *LiveController) subscribe(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id, err := l.hub.Register(conn)
	if err != nil {
		return
	}
	l.coord.SendCurrent(id)

	defer l.hub.Unregister(id)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg packets.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case live.RequestCurrentSlide:
			l.coord.SendCurrent(id)
		case live.CheckContentChanges:
			l.coord.CheckNow()
		}
	}
}

// currentSlide is the REST fallback for clients that cannot hold a
// websocket. Served from the broadcast cache when fresh, recomputed
// otherwise.
func (l *LiveController) currentSlide(ctx *gin.Context) (any, *api.APIError) {
	if data, ok := redisclient.GetCurrentView(ctx.Request.Context()); ok {
		var cached map[string]json.RawMessage
		if err := json.Unmarshal(data, &cached); err == nil {
			if payload, ok := cached["payload"]; ok {
				return payload, nil
			}
		}
	}

	view, err := playback.Resolve(l.store, time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resolve current slide"}
	}
	return view, nil
}
