package services

import "errors"

var (
	// ErrCycleExhausted means every question of the category has been
	// played this session; the played set has been cleared so a new
	// cycle can start on the next visit.
	ErrCycleExhausted = errors.New("all questions in this category have been played")
	// ErrCategoryEmpty means the category has no content at all and
	// generation could not supply any. Terminal for the category.
	ErrCategoryEmpty = errors.New("category has no questions and generation failed")

	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")

	ErrNoMatch        = errors.New("no multiplayer match in progress")
	ErrNoPendingLobby = errors.New("player count has not been chosen")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrGenerationFailed   = errors.New("question generation failed")
)
