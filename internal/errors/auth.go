package errors

import "net/http"

var ErrInvalidCredentials = &Exception{
	Message:    "invalid email or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrEmailTaken = &Exception{
	Message:    "an account with this email already exists",
	StatusCode: http.StatusConflict,
}

var ErrUnauthenticated = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrForbidden = &Exception{
	Message:    "you are not allowed to perform this action",
	StatusCode: http.StatusForbidden,
}
