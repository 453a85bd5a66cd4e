// Package sessions holds the per-user ephemeral state the quiz flows run
// on: the anti-repetition sets for single-player rounds, the pending lobby
// player count, and the full multiplayer match object. The state is an
// explicit serializable value persisted by a Store, never a process global.
package sessions

// Flash is a one-shot user-facing notice consumed on the next render.
type Flash struct {
	Level   string `json:"level"` // success, warning, error
	Message string `json:"message"`
}

type MatchPlayer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// MatchState is the multiplayer state machine payload. CurrentTurnIndex
// always addresses a valid player and rotates by exactly one position,
// wrapping, after each accepted answer.
type MatchState struct {
	Players          []MatchPlayer `json:"players"`
	CurrentTurnIndex int           `json:"current_turn_index"`
	CategoryID       uint          `json:"category_id"`
}

func (m *MatchState) CurrentPlayer() *MatchPlayer {
	return &m.Players[m.CurrentTurnIndex]
}

// Valid reports whether the state can be played: at least one player and
// the turn cursor addressing one of them. Deserialized session blobs are
// not trusted to hold this.
func (m *MatchState) Valid() bool {
	return len(m.Players) > 0 && m.CurrentTurnIndex >= 0 && m.CurrentTurnIndex < len(m.Players)
}

// AdvanceTurn moves the cursor to the next player, wrapping around.
func (m *MatchState) AdvanceTurn() {
	m.CurrentTurnIndex = (m.CurrentTurnIndex + 1) % len(m.Players)
}

type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`

	// Played question ids keyed by category id. Every id identifies a
	// question of that category already shown to this player; cleared
	// when the category cycle is exhausted.
	PlayedQuestions map[uint][]uint `json:"played_questions,omitempty"`

	PendingPlayerCount int         `json:"pending_player_count,omitempty"`
	Match              *MatchState `json:"match,omitempty"`

	Flashes []Flash `json:"flashes,omitempty"`
}

func New() *Session {
	return &Session{
		PlayedQuestions: make(map[uint][]uint),
	}
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

func (s *Session) Played(categoryID uint) []uint {
	if s.PlayedQuestions == nil {
		return nil
	}
	return s.PlayedQuestions[categoryID]
}

func (s *Session) MarkPlayed(categoryID, questionID uint) {
	if s.PlayedQuestions == nil {
		s.PlayedQuestions = make(map[uint][]uint)
	}
	s.PlayedQuestions[categoryID] = append(s.PlayedQuestions[categoryID], questionID)
}

func (s *Session) ClearPlayed(categoryID uint) {
	delete(s.PlayedQuestions, categoryID)
}

func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// ConsumeFlashes returns the pending notices and clears them.
func (s *Session) ConsumeFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// ClearAuth drops the authenticated identity but keeps nothing else
// either: logout discards the whole game state with it.
func (s *Session) ClearAuth() {
	s.UserID = 0
	s.Username = ""
	s.PendingPlayerCount = 0
	s.Match = nil
}
