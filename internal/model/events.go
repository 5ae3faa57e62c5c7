package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated   EventType = "game_created"
	EventMoveApplied   EventType = "move_applied"
	EventHistoryJumped EventType = "history_jumped"
	EventGameDeleted   EventType = "game_deleted"
)

// Event describes an accepted change to a game
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Payload   any // Type-specific data
}

// MoveAppliedPayload contains data for move applied events
type MoveAppliedPayload struct {
	Index     int
	Player    Mark
	MoveCount int
	Winner    Mark // Empty unless the move completed a line
}

// HistoryJumpedPayload contains data for history jumped events
type HistoryJumpedPayload struct {
	Index  int
	Winner Mark
}
