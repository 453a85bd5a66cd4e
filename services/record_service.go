package services

import (
	"errors"

	"quizarena/models"

	"gorm.io/gorm"
)

// RecordService is plain CRUD over the persisted outcome records. No
// bespoke lifecycle logic beyond what the API needs.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

var ErrRecordNotFound = errors.New("record not found")

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// --- PlayerScore ---

func (s *RecordService) ListScores() ([]models.PlayerScore, error) {
	var scores []models.PlayerScore
	err := s.db.Order("id").Find(&scores).Error
	return scores, err
}

// Leaderboard returns scores ordered best-first for the classements page.
func (s *RecordService) Leaderboard(limit int) ([]models.PlayerScore, error) {
	var scores []models.PlayerScore
	err := s.db.Order("score DESC").Limit(limit).Find(&scores).Error
	return scores, err
}

func (s *RecordService) ScoreByID(id uint) (*models.PlayerScore, error) {
	var score models.PlayerScore
	if err := s.db.First(&score, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &score, nil
}

func (s *RecordService) CreateScore(score *models.PlayerScore) error {
	return s.db.Create(score).Error
}

func (s *RecordService) UpdateScore(id uint, updated *models.PlayerScore) (*models.PlayerScore, error) {
	score, err := s.ScoreByID(id)
	if err != nil {
		return nil, err
	}
	score.GameSessionID = updated.GameSessionID
	score.PlayerName = updated.PlayerName
	score.Score = updated.Score
	if err := s.db.Save(score).Error; err != nil {
		return nil, err
	}
	return score, nil
}

func (s *RecordService) DeleteScore(id uint) error {
	if _, err := s.ScoreByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.PlayerScore{}, id).Error
}

// --- PlayerAnswer ---

func (s *RecordService) ListPlayerAnswers() ([]models.PlayerAnswer, error) {
	var answers []models.PlayerAnswer
	err := s.db.Order("id").Find(&answers).Error
	return answers, err
}

func (s *RecordService) PlayerAnswerByID(id uint) (*models.PlayerAnswer, error) {
	var answer models.PlayerAnswer
	if err := s.db.First(&answer, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &answer, nil
}

func (s *RecordService) CreatePlayerAnswer(answer *models.PlayerAnswer) error {
	return s.db.Create(answer).Error
}

func (s *RecordService) UpdatePlayerAnswer(id uint, updated *models.PlayerAnswer) (*models.PlayerAnswer, error) {
	answer, err := s.PlayerAnswerByID(id)
	if err != nil {
		return nil, err
	}
	answer.GameSessionID = updated.GameSessionID
	answer.PlayerName = updated.PlayerName
	answer.QuestionID = updated.QuestionID
	answer.AnswerID = updated.AnswerID
	answer.IsCorrect = updated.IsCorrect
	if err := s.db.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *RecordService) DeletePlayerAnswer(id uint) error {
	if _, err := s.PlayerAnswerByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.PlayerAnswer{}, id).Error
}

// --- GameSession ---

func (s *RecordService) ListGameSessions() ([]models.GameSession, error) {
	var gameSessions []models.GameSession
	err := s.db.Order("id").Find(&gameSessions).Error
	return gameSessions, err
}

func (s *RecordService) GameSessionByID(id uint) (*models.GameSession, error) {
	var gameSession models.GameSession
	if err := s.db.Preload("Scores").Preload("Answers").First(&gameSession, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &gameSession, nil
}

func (s *RecordService) CreateGameSession(gameSession *models.GameSession) error {
	return s.db.Create(gameSession).Error
}

func (s *RecordService) UpdateGameSession(id uint, updated *models.GameSession) (*models.GameSession, error) {
	gameSession, err := s.GameSessionByID(id)
	if err != nil {
		return nil, err
	}
	gameSession.UserID = updated.UserID
	gameSession.CategoryID = updated.CategoryID
	gameSession.Mode = updated.Mode
	gameSession.StartedAt = updated.StartedAt
	gameSession.EndedAt = updated.EndedAt
	if err := s.db.Save(gameSession).Error; err != nil {
		return nil, err
	}
	return gameSession, nil
}

func (s *RecordService) DeleteGameSession(id uint) error {
	if _, err := s.GameSessionByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.GameSession{}, id).Error
}
