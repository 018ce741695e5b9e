package payload

import "github.com/sunthewhat/easy-cert-generator/type/shared/model"

type ParticipantListPayload struct {
	FileName     string              `json:"fileName"`
	Count        int                 `json:"count"`
	Participants []model.Participant `json:"participants"`
}
