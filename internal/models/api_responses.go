package models

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Application string            `json:"application"`
	Port        string            `json:"port"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// InfoResponse is returned by GET /api/info.
type InfoResponse struct {
	Application string `json:"application"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Port        string `json:"port"`
}
