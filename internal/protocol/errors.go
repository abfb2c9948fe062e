package protocol

// Error codes.
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002

	ErrCodeNoSuchRoom    = 2001
	ErrCodeAlreadyInRoom = 2002

	ErrCodeMatchNotStarted = 3001
	ErrCodeInvalidMove     = 3002

	ErrCodeServerFull = 5001
)

// ErrorMessages maps error codes to user-facing text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "unknown error",
	ErrCodeInvalidMsg:      "invalid message format",
	ErrCodeRateLimit:       "too many requests",
	ErrCodeNoSuchRoom:      "room not found",
	ErrCodeAlreadyInRoom:   "already in a match",
	ErrCodeMatchNotStarted: "match has not started",
	ErrCodeInvalidMove:     "invalid move",
	ErrCodeServerFull:      "server is full",
}

// GameError is a protocol-level failure shared by the session and the
// handlers. Invalid moves are deliberately never sent to clients; the
// error flows back to the handler, which logs and drops it.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Predefined errors.
var (
	ErrNoSuchRoom      = &GameError{Code: ErrCodeNoSuchRoom, Message: "room not found"}
	ErrAlreadyInRoom   = &GameError{Code: ErrCodeAlreadyInRoom, Message: "already in a match"}
	ErrMatchNotStarted = &GameError{Code: ErrCodeMatchNotStarted, Message: "match has not started"}
	ErrInvalidMove     = &GameError{Code: ErrCodeInvalidMove, Message: "invalid move"}
)
