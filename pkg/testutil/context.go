package testutil

import (
	"net/http"
	"time"

	"rcgate/pkg/requestcontext"
)

// WithRequestTime pins the request clock, as the requesttime middleware
// would, so age and short-form century resolution are deterministic.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets the request ID the requestid middleware would assign.
func WithRequestID(req *http.Request, id string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), id))
}
