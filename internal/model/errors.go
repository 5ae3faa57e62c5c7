package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidPosition     = errors.New("invalid board position")
	ErrInvalidHistoryIndex = errors.New("invalid history index")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
