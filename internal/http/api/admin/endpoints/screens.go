package endpoints

import (
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	"github.com/helios-signage/helios/internal/http/api/admin/packets"
	redisclient "github.com/helios-signage/helios/internal/redis"
	"github.com/helios-signage/helios/internal/model"
)

const pairingCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type ScreenController struct {
	store db.Store
}

func NewScreenController(store db.Store) *ScreenController {
	return &ScreenController{store: store}
}

func ScreenModule(store db.Store) api.Module {
	ctl := NewScreenController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
		c.PUT("/screens/:id", ctl.updateScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)
		c.POST("/screens/:id/pairing_code", ctl.issuePairingCode)
	})
}

func newPairingCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = pairingCodeCharset[rand.Intn(len(pairingCodeCharset))]
	}
	return string(b)
}

func (s *ScreenController) ownedScreen(ctx *gin.Context, user *model.User) (model.Screen, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Screen{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	screen, err := s.store.GetScreenByID(id)
	if err != nil {
		return model.Screen{}, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.CreatedBy != user.ID {
		return model.Screen{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return screen, nil
}

func (s *ScreenController) listScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := s.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list screens"}
	}

	response := make([]packets.ScreenResponse, 0, len(all))
	for _, it := range all {
		if it.CreatedBy != user.ID {
			continue
		}
		response = append(response, packets.NewScreenResponse(it))
	}
	return response, nil
}

func (s *ScreenController) createScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := s.store.CreateScreen(request.Name, request.Location, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return packets.NewScreenResponse(screen), nil
}

func (s *ScreenController) getScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewScreenResponse(screen), nil
}

func (s *ScreenController) updateScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateScreen(screen.ID, request.Name, request.Location); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *ScreenController) deleteScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := s.store.DeleteScreen(screen.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"message": "deleted"}, nil
}

// issuePairingCode mints a short-lived code the display shows on boot; the
// operator types it here to tie the device to this screen record.
func (s *ScreenController) issuePairingCode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	code := newPairingCode()
	if err := redisclient.StorePairingCode(ctx.Request.Context(), code, screen.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store pairing code"}
	}
	return packets.PairingCodeResponse{Code: code, ExpiresIn: 300}, nil
}
