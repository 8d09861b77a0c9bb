package dto

// ErrorResponse is the body of every HTTP error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports liveness and store reachability.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	DBStatus  string `json:"db_status"`
	Error     string `json:"error,omitempty"`
}

// ExtractionErrorResponse is returned when the model output is unusable.
// Raw carries the model's payload so the client can show or retry it.
type ExtractionErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Raw     string `json:"raw"`
}
