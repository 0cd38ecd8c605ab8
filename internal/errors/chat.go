package errors

import "net/http"

var ErrSelfMessage = &Exception{
	Message:    "you cannot send a message to yourself",
	StatusCode: http.StatusBadRequest,
}

var ErrNotParticipant = &Exception{
	Message:    "only task participants may use this conversation",
	StatusCode: http.StatusForbidden,
}

var ErrEmptyMessage = &Exception{
	Message:    "message must not be empty",
	StatusCode: http.StatusBadRequest,
}
