package services

import (
	"errors"

	"quizarena/models"

	"gorm.io/gorm"
)

// DefaultCategories are created lazily on the first offline visit when the
// category table is still empty.
var DefaultCategories = []string{
	"Géographie", "Histoire", "Sciences", "Informatique", "Islam", "Culture Générale",
}

// QuestionSource is the question-store boundary the quiz flows run
// against. QuestionService is the gorm-backed implementation; tests
// substitute fakes.
type QuestionSource interface {
	Categories() ([]models.Category, error)
	CategoryByID(id uint) (*models.Category, error)
	EnsureDefaultCategories() error
	QuestionIDs(categoryID uint) ([]uint, error)
	QuestionByID(id uint) (*models.QuizQuestion, error)
	AnswerByID(id uint) (*models.Answer, error)
	CorrectAnswer(questionID uint) (*models.Answer, error)
}

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

func (s *QuestionService) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("id").Find(&categories).Error
	return categories, err
}

func (s *QuestionService) CategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// EnsureDefaultCategories seeds the fixed default list when no categories
// exist yet. Categories are never deleted by this logic.
func (s *QuestionService) EnsureDefaultCategories() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range DefaultCategories {
		if err := s.db.Create(&models.Category{Descriptor: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *QuestionService) QuestionIDs(categoryID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.QuizQuestion{}).
		Where("category_id = ?", categoryID).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *QuestionService) QuestionByID(id uint) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	err := s.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.id")
	}).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) AnswerByID(id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// CorrectAnswer returns the single correct answer of a question. The
// exactly-one-correct invariant is validated at API write time but not at
// the storage level, so this picks the first when the data disagrees.
func (s *QuestionService) CorrectAnswer(questionID uint) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.Where("question_id = ? AND is_correct = ?", questionID, true).
		Order("id").First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// --- JSON API CRUD ---

type CreateQuestionRequest struct {
	CategoryID uint                  `json:"category_id" binding:"required"`
	Text       string                `json:"text" binding:"required"`
	Difficulty int                   `json:"difficulty" binding:"required,min=1,max=3"`
	Answers    []CreateAnswerRequest `json:"answers" binding:"required,min=2,max=6"`
}

type CreateAnswerRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type UpdateQuestionRequest struct {
	CategoryID uint                  `json:"category_id"`
	Text       string                `json:"text"`
	Difficulty int                   `json:"difficulty"`
	Answers    []CreateAnswerRequest `json:"answers"`
}

func validateOneCorrect(answers []CreateAnswerRequest) error {
	correctCount := 0
	for _, a := range answers {
		if a.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return errors.New("each question must have exactly one correct answer")
	}
	return nil
}

func (s *QuestionService) ListQuestions() ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := s.db.Preload("Answers").Order("id").Find(&questions).Error
	return questions, err
}

func (s *QuestionService) CreateQuestion(req *CreateQuestionRequest) (*models.QuizQuestion, error) {
	if _, err := s.CategoryByID(req.CategoryID); err != nil {
		return nil, err
	}
	if err := validateOneCorrect(req.Answers); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	question := models.QuizQuestion{
		CategoryID: req.CategoryID,
		Text:       req.Text,
		Difficulty: req.Difficulty,
	}
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, aReq := range req.Answers {
		answer := models.Answer{
			QuestionID: question.ID,
			Text:       aReq.Text,
			IsCorrect:  aReq.IsCorrect,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.QuestionByID(question.ID)
}

func (s *QuestionService) UpdateQuestion(id uint, req *UpdateQuestionRequest) (*models.QuizQuestion, error) {
	question, err := s.QuestionByID(id)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.CategoryID != 0 {
		question.CategoryID = req.CategoryID
	}
	if req.Text != "" {
		question.Text = req.Text
	}
	if req.Difficulty != 0 {
		question.Difficulty = req.Difficulty
	}
	question.Answers = nil

	if err := tx.Save(question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// If answers are provided, replace the whole set.
	if req.Answers != nil {
		if err := validateOneCorrect(req.Answers); err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, aReq := range req.Answers {
			answer := models.Answer{
				QuestionID: question.ID,
				Text:       aReq.Text,
				IsCorrect:  aReq.IsCorrect,
			}
			if err := tx.Create(&answer).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.QuestionByID(question.ID)
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if _, err := s.QuestionByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.QuizQuestion{}, id).Error
}
