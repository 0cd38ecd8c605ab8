package errors

import "net/http"

var ErrInvalidAmount = &Exception{
	Message:    "amount must be greater than zero",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidSignature = &Exception{
	Message:    "invalid webhook signature",
	StatusCode: http.StatusUnauthorized,
}

var ErrProfileNotFound = &Exception{
	Message:    "profile not found",
	StatusCode: http.StatusNotFound,
}
