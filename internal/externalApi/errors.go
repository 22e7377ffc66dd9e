package externalApi

import "errors"

// Any of these means the upstream could not produce a usable answer.
var (
	ErrNotFound          = errors.New("error not found")
	ErrRateLimited       = errors.New("error rate limited")
	ErrRejected          = errors.New("error request rejected")
	ErrUnexpectedStatus  = errors.New("error unexpected status code")
	ErrMalformedResponse = errors.New("error malformed response")
)
