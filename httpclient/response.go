package httpclient

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

type ErrorResponse struct {
	Message string `json:"message"`
}
