package errors

import "net/http"

var ErrInvalidRating = &Exception{
	Message:    "rating must be between 1 and 5",
	StatusCode: http.StatusBadRequest,
}

var ErrDuplicateReview = &Exception{
	Message:    "you have already reviewed this user for this task",
	StatusCode: http.StatusConflict,
}

var ErrTaskNotCompleted = &Exception{
	Message:    "reviews are only allowed on completed tasks",
	StatusCode: http.StatusConflict,
}

var ErrCompletionNotFound = &Exception{
	Message:    "completion not found",
	StatusCode: http.StatusNotFound,
}

var ErrFeedbackRequired = &Exception{
	Message:    "feedback is required when requesting a revision",
	StatusCode: http.StatusBadRequest,
}
