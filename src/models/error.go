package models

// MErrorResponse is the body of every failed request.
type MErrorResponse struct {
	Error MErrorDetail `json:"error"`
}

type MErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
