package services

import (
	"math/rand"

	"quizarena/models"
	"quizarena/sessions"
)

// GeneratedDifficulty is the difficulty requested when the bank runs dry
// and a fresh question has to be generated.
const GeneratedDifficulty = 2

// ProgressService picks the next single-player question for a category,
// never repeating a question within a session cycle. When every question
// has been seen it makes one generation attempt before reporting
// exhaustion.
type ProgressService struct {
	store     QuestionSource
	generator Generator
	rng       *rand.Rand
}

func NewProgressService(store QuestionSource, generator Generator, rng *rand.Rand) *ProgressService {
	return &ProgressService{
		store:     store,
		generator: generator,
		rng:       rng,
	}
}

// NextQuestion returns an unseen question for the category and records it
// in the session's played set.
//
// Outcomes when no question can be produced:
//   - ErrCycleExhausted: everything was played; the played set is cleared
//     so the next visit starts a fresh cycle.
//   - ErrCategoryEmpty: the category never had content and generation
//     failed. Terminal for this category.
func (s *ProgressService) NextQuestion(session *sessions.Session, category *models.Category) (*models.QuizQuestion, error) {
	allIDs, err := s.store.QuestionIDs(category.ID)
	if err != nil {
		return nil, err
	}

	played := session.Played(category.ID)
	playedSet := make(map[uint]bool, len(played))
	for _, id := range played {
		playedSet[id] = true
	}

	available := make([]uint, 0, len(allIDs))
	for _, id := range allIDs {
		if !playedSet[id] {
			available = append(available, id)
		}
	}

	var question *models.QuizQuestion
	if len(available) > 0 {
		pick := available[s.rng.Intn(len(available))]
		question, err = s.store.QuestionByID(pick)
		if err != nil {
			return nil, err
		}
	} else {
		// Bank empty or fully played: one generation attempt.
		question, err = s.generator.Generate(category.Descriptor, GeneratedDifficulty)
		if err != nil {
			question = nil
		}
	}

	if question == nil {
		if len(played) > 0 {
			session.ClearPlayed(category.ID)
			return nil, ErrCycleExhausted
		}
		return nil, ErrCategoryEmpty
	}

	session.MarkPlayed(category.ID, question.ID)
	return question, nil
}

// ShuffleAnswers returns the question's answers in randomized order
// without revealing correctness ordering.
func (s *ProgressService) ShuffleAnswers(question *models.QuizQuestion) []models.Answer {
	answers := make([]models.Answer, len(question.Answers))
	copy(answers, question.Answers)
	s.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}
