package api

// HTTPError is what endpoint handlers return when a request fails. Message
// is safe to show the caller; ErrorLog carries the underlying cause for the
// request log only.
type HTTPError struct {
	StatusCode int
	Message    string
	ErrorLog   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.ErrorLog
}

// ApiError is the JSON error body every endpoint responds with.
type ApiError struct {
	Error string `json:"message"`
}
