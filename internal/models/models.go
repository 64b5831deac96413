package models

// ErrorResponse is the JSON body of every gateway error
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detalle,omitempty"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string `json:"status"`
}
