package model

// Response is a generic struct for API responses
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Notice  *Notice     `json:"notice,omitempty"`
	Message string      `json:"message"`
}

// Notice is a transient user-facing message.
type Notice struct {
	Kind         string `json:"kind"`
	Text         string `json:"text"`
	OpenSettings bool   `json:"open_settings,omitempty"`
}
