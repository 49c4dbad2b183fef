package engine

import "errors"

var (
	// ErrNoCards is returned when the wallet is empty, so callers can tell
	// "no cards" apart from "no card has positive savings".
	ErrNoCards = errors.New("no cards in wallet")

	ErrInvalidInput = errors.New("invalid input")

	ErrCardNotFound = errors.New("card not found")
)
