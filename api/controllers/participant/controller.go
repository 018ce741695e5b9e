package participant_controller

import "time"

// ParticipantController handles participant list uploads
type ParticipantController struct {
	maxUploadBytes int64
	now            func() time.Time
}

func NewParticipantController(maxUploadBytes int64) *ParticipantController {
	return &ParticipantController{maxUploadBytes: maxUploadBytes, now: time.Now}
}
