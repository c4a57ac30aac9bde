package handlers

// ErrorResponse is the generic error shape returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a mutation without returning the resource.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NotFoundResponse is returned when deleting an article that does not
// exist. The shape differs from ErrorResponse on purpose; clients key off
// the notFound flag.
type NotFoundResponse struct {
	NotFound bool `json:"notFound"`
}
