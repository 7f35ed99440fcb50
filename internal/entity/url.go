// Package entity defines the entities and errors shared by every layer of the
// application: the shortened URL record and the error kinds the core reports.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrMissingField is returned when a required string input is blank or absent.
	ErrMissingField = errors.New("required field is missing")
	// ErrInvalidFormat is returned when a URL fails structural validation.
	ErrInvalidFormat = errors.New("url isn't valid, it needs a protocol, domain and tld")
	// ErrURLNotFound is returned when no URL exists for the given short URL ID.
	ErrURLNotFound = errors.New("url not found")
	// ErrIDGenerationExhausted is returned when no unique short URL ID could be
	// generated within the configured number of attempts.
	ErrIDGenerationExhausted = errors.New("couldn't generate short url id")
	// ErrPersistedDataInvalid is returned when a stored URL can no longer be parsed.
	ErrPersistedDataInvalid = errors.New("persisted url is no longer a valid url")
	// ErrShortURLIDExists is returned by a store when inserting a short URL ID that is already taken.
	ErrShortURLIDExists = errors.New("short url id exists")
)

// URL represents a shortened URL.
type URL struct {
	ID         int64     // ID is the surrogate key assigned by the store.
	ShortURLID string    // ShortURLID is the generated identifier the full URL is reachable by.
	FullURL    string    // FullURL is the sanitised URL the short URL ID redirects to.
	Visits     int64     // Visits is the number of successful redirections.
	CreatedAt  time.Time // CreatedAt is the timestamp when the URL was created.
	UpdatedAt  time.Time // UpdatedAt is the timestamp when the URL was last updated.
}
