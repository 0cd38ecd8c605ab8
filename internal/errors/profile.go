package errors

import "net/http"

var ErrProfileIncomplete = &Exception{
	Message:    "complete your profile (name and phone) before posting or bidding",
	StatusCode: http.StatusForbidden,
}
