package services

import (
	"fmt"
	"math/rand"
	"strings"

	"quizarena/models"
	"quizarena/sessions"
)

// PointsPerCorrectAnswer is the fixed increment a player earns per correct
// multiplayer answer.
const PointsPerCorrectAnswer = 10

// MinPlayers is the smallest multiplayer lobby; the maximum comes from
// configuration.
const MinPlayers = 2

// PlayerColors is the fixed palette assigned to players in randomized
// order, reused cyclically when the lobby outgrows it.
var PlayerColors = []string{"#FF6347", "#4682B4", "#3CB371", "#FFA500", "#9370DB", "#F08080"}

// MatchService drives the multiplayer state machine carried in the
// session: lobby setup, turn rotation and per-player scores. Unlike the
// single-player flow there is no anti-repetition; every turn may repeat
// any question of the category.
type MatchService struct {
	store      QuestionSource
	rng        *rand.Rand
	maxPlayers int
}

func NewMatchService(store QuestionSource, rng *rand.Rand, maxPlayers int) *MatchService {
	return &MatchService{
		store:      store,
		rng:        rng,
		maxPlayers: maxPlayers,
	}
}

func (s *MatchService) MaxPlayers() int {
	return s.maxPlayers
}

// SetPlayerCount stores the desired lobby size in the session (step 1).
func (s *MatchService) SetPlayerCount(session *sessions.Session, count int) error {
	if count < MinPlayers || count > s.maxPlayers {
		return fmt.Errorf("player count must be between %d and %d", MinPlayers, s.maxPlayers)
	}
	session.PendingPlayerCount = count
	return nil
}

// StartMatch builds the match state from the lobby form (step 2): names
// default to "Player i" when blank, colors come shuffled from the fixed
// palette, the turn cursor starts at 0 and all scores at 0. The pending
// player count is cleared.
func (s *MatchService) StartMatch(session *sessions.Session, categoryID uint, names []string) (*sessions.MatchState, error) {
	if session.PendingPlayerCount == 0 {
		return nil, ErrNoPendingLobby
	}
	if _, err := s.store.CategoryByID(categoryID); err != nil {
		return nil, err
	}

	colors := make([]string, len(PlayerColors))
	copy(colors, PlayerColors)
	s.rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})

	count := session.PendingPlayerCount
	players := make([]sessions.MatchPlayer, 0, count)
	for i := 0; i < count; i++ {
		name := ""
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players = append(players, sessions.MatchPlayer{
			ID:    i + 1,
			Name:  name,
			Color: colors[i%len(colors)],
			Score: 0,
		})
	}

	match := &sessions.MatchState{
		Players:          players,
		CurrentTurnIndex: 0,
		CategoryID:       categoryID,
	}
	session.Match = match
	session.PendingPlayerCount = 0
	return match, nil
}

// NextQuestion picks a random question for the match's category. When none
// exists the match state is discarded: this ends the match, the caller
// routes back to lobby setup.
func (s *MatchService) NextQuestion(session *sessions.Session) (*models.QuizQuestion, error) {
	match := session.Match
	if match == nil {
		return nil, ErrNoMatch
	}

	ids, err := s.store.QuestionIDs(match.CategoryID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		session.Match = nil
		return nil, ErrCategoryEmpty
	}

	return s.store.QuestionByID(ids[s.rng.Intn(len(ids))])
}

// TurnResult reports the outcome of one accepted answer submission.
type TurnResult struct {
	PlayerName string
	Correct    bool
	Awarded    int
}

// SubmitAnswer resolves the current player's answer. An unknown answer id
// leaves the turn cursor and every score untouched. A known answer awards
// the fixed increment when correct, then rotates the turn cursor by one.
// A structurally invalid match state is discarded rather than indexed.
func (s *MatchService) SubmitAnswer(session *sessions.Session, answerID uint) (*TurnResult, error) {
	match := session.Match
	if match == nil {
		return nil, ErrNoMatch
	}
	if !match.Valid() {
		session.Match = nil
		return nil, ErrNoMatch
	}

	answer, err := s.store.AnswerByID(answerID)
	if err != nil {
		return nil, err
	}

	current := match.CurrentPlayer()
	result := &TurnResult{
		PlayerName: current.Name,
		Correct:    answer.IsCorrect,
	}
	if answer.IsCorrect {
		current.Score += PointsPerCorrectAnswer
		result.Awarded = PointsPerCorrectAnswer
	}

	match.AdvanceTurn()
	return result, nil
}

// ShuffleAnswers randomizes answer order for rendering.
func (s *MatchService) ShuffleAnswers(question *models.QuizQuestion) []models.Answer {
	answers := make([]models.Answer, len(question.Answers))
	copy(answers, question.Answers)
	s.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}
