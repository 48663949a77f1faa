package model

import (
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrTagFetch marks network, status and decode failures of a single item
	ErrTagFetch = goerr.NewTag("fetch")

	// ErrTagEncode marks encode and filesystem failures of a single item
	ErrTagEncode = goerr.NewTag("encode")

	// ErrTagCodec marks a missing image codec capability detected before the run
	ErrTagCodec = goerr.NewTag("codec")
)

// ErrorKind classifies an item error as "fetch", "encode" or "unknown"
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case goerr.HasTag(err, ErrTagFetch):
		return "fetch"
	case goerr.HasTag(err, ErrTagEncode):
		return "encode"
	default:
		return "unknown"
	}
}

// ErrorValue returns a context value attached anywhere in a goerr error chain
func ErrorValue(err error, key string) (any, bool) {
	v, ok := goerr.Values(err)[key]
	return v, ok
}
