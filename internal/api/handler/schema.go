package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse carries informational non-error replies, e.g. the
// duplicate-user case on POST /users.
type messageResponse struct {
	Message string `json:"message"`
}
