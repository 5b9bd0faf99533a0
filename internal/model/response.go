package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type IngestResponse struct {
	Status   string `json:"status"`
	Inserted int    `json:"inserted"`
}
