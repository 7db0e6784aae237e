package packets

type ClientMessage struct {
	Type string `json:"type"`
}

type ClaimPairingRequest struct {
	Code string `json:"code" binding:"required"`
}

type ClaimPairingResponse struct {
	ScreenID int    `json:"screen_id"`
	DeviceID string `json:"device_id"`
}
