package models

// ErrorBody is the machine-readable detail inside an API error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope returned by every API route.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
