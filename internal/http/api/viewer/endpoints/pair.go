package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/helios-signage/helios/internal/db"
	"github.com/helios-signage/helios/internal/http/api"
	"github.com/helios-signage/helios/internal/http/api/viewer/packets"
	redisclient "github.com/helios-signage/helios/internal/redis"
)

type PairingController struct {
	store db.Store
}

func NewPairingController(store db.Store) *PairingController {
	return &PairingController{store: store}
}

func PairingModule(store db.Store) api.Module {
	ctl := NewPairingController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POSTPublic("/pair", ctl.claim)
	})
}

// claim exchanges a pairing code (typed in by the operator, shown on the
// display) for a device id the display stores and presents from then on.
func (p *PairingController) claim(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ClaimPairingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screenID, ok := redisclient.ClaimPairingCode(ctx.Request.Context(), request.Code)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown or expired code"}
	}

	deviceID := uuid.NewString()
	if err := p.store.PairScreen(screenID, deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair screen"}
	}
	return packets.ClaimPairingResponse{ScreenID: screenID, DeviceID: deviceID}, nil
}
