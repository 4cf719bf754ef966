package web

// Envelope is the uniform response body for every API endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds an error envelope. Detail may be empty.
func Fail(message, detail string) Envelope {
	return Envelope{Success: false, Message: message, Error: detail}
}
