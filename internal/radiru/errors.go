package radiru

import "errors"

var (
	// ErrNetwork is returned when the config document cannot be fetched:
	// connection failure, non-2xx status, or an undecodable body.
	ErrNetwork = errors.New("fetch config document")

	// ErrCacheWrite is returned when the cache directory or file cannot be written.
	ErrCacheWrite = errors.New("write cached config document")

	// ErrCacheRead is returned when a cache file that should exist cannot be read.
	ErrCacheRead = errors.New("read cached config document")

	// ErrMalformedDocument is returned when the document is not well-formed markup.
	ErrMalformedDocument = errors.New("malformed config document")

	// ErrDocumentExhausted is returned when no record matches the requested location.
	ErrDocumentExhausted = errors.New("no record for location")

	// ErrEmptyEndpoint is returned when the matching record has no endpoint
	// for the requested channel.
	ErrEmptyEndpoint = errors.New("no endpoint for channel")

	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownChannel  = errors.New("unknown channel")
)
