package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotOpen = &Exception{
	Message:    "task is no longer open",
	StatusCode: http.StatusConflict,
}

var ErrTaskAssignedDelete = &Exception{
	Message:    "an assigned task cannot be deleted",
	StatusCode: http.StatusConflict,
}

var ErrQuotaExceeded = &Exception{
	Message:    "free plan allows 3 tasks per month, upgrade to pro for unlimited tasks",
	StatusCode: http.StatusPaymentRequired,
}
