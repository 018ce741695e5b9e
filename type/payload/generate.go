package payload

type GenerateItemResult struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	CertificateID string `json:"certificateId"`
	Filename      string `json:"filename,omitempty"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

type GenerateBatchPayload struct {
	ArchiveName string               `json:"archiveName"`
	ArchiveURL  string               `json:"archiveUrl,omitempty"`
	Generated   int                  `json:"generated"`
	Failed      int                  `json:"failed"`
	Collisions  []string             `json:"collisions,omitempty"`
	Results     []GenerateItemResult `json:"results"`
}

type SessionPayload struct {
	SessionID string `json:"sessionId"`
}
