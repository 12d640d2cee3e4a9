package checkapp

import "encoding/json"

// Readiness represents the readiness of the service.
type Readiness struct {
	Status string `json:"status"`
}

// Encode implements the web.Encoder interface.
func (r Readiness) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// Liveness represents the liveness of the service.
type Liveness struct {
	Status     string `json:"status"`
	Build      string `json:"build"`
	Host       string `json:"host"`
	Name       string `json:"name"`
	PodIP      string `json:"podIP"`
	Node       string `json:"node"`
	Namespace  string `json:"namespace"`
	GOMAXPROCS int    `json:"GOMAXPROCS"`
}

// Encode implements the web.Encoder interface.
func (l Liveness) Encode() ([]byte, string, error) {
	data, err := json.Marshal(l)
	return data, "application/json", err
}
