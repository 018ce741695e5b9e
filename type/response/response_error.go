package response

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message *string  `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func Error(msg any) *ErrorResponse {
	if message, ok := msg.(string); ok {
		return &ErrorResponse{
			Success: false,
			Message: &message,
		}
	}
	return &ErrorResponse{
		Success: false,
		Message: Ptr("Unknown Error"),
	}
}
