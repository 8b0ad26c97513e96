package dto

type ErrorResponse struct {
	Error string `json:"error"`
	// Excerpt carries the first lines of an uploaded document when parsing
	// found no questions, so the admin can see what the server received.
	Excerpt string `json:"excerpt,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
