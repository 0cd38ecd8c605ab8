package errors

import "net/http"

var ErrBidNotFound = &Exception{
	Message:    "bid not found",
	StatusCode: http.StatusNotFound,
}

var ErrDuplicateBid = &Exception{
	Message:    "you have already placed a bid on this task",
	StatusCode: http.StatusConflict,
}

var ErrOwnTaskBid = &Exception{
	Message:    "you cannot bid on your own task",
	StatusCode: http.StatusConflict,
}

var ErrInvalidBidAmount = &Exception{
	Message:    "bid amount must be greater than zero",
	StatusCode: http.StatusBadRequest,
}

var ErrBidNotPending = &Exception{
	Message:    "bid has already been decided",
	StatusCode: http.StatusConflict,
}
