package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quizarena/models"
	"quizarena/pkg/logger"

	"gorm.io/gorm"
)

// Generator synthesizes and persists a new question with its answers for a
// category, or fails. The quiz flows make exactly one attempt, no retries.
type Generator interface {
	Generate(categoryName string, difficulty int) (*models.QuizQuestion, error)
}

// NewGenerator wires the HTTP generator when a URL is configured and a
// generator that always fails otherwise; with the latter the progress
// tracker simply reports exhaustion.
func NewGenerator(url string, db *gorm.DB) Generator {
	if url == "" {
		return disabledGenerator{}
	}
	return &HTTPGenerator{
		url:    url,
		db:     db,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(categoryName string, difficulty int) (*models.QuizQuestion, error) {
	return nil, ErrGenerationFailed
}

// HTTPGenerator asks an external service for a question-with-answers and
// persists the result under the named category.
type HTTPGenerator struct {
	url    string
	db     *gorm.DB
	client *http.Client
}

type generateRequest struct {
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type generateResponse struct {
	Text    string `json:"text"`
	Answers []struct {
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
	} `json:"answers"`
}

func (g *HTTPGenerator) Generate(categoryName string, difficulty int) (*models.QuizQuestion, error) {
	var category models.Category
	if err := g.db.Where("descriptor = ?", categoryName).First(&category).Error; err != nil {
		return nil, ErrCategoryNotFound
	}

	body, err := json.Marshal(generateRequest{Category: categoryName, Difficulty: difficulty})
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Post(g.url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Warn("question generation request failed", "category", categoryName, "error", err)
		return nil, ErrGenerationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("question generation rejected", "category", categoryName, "status", resp.StatusCode)
		return nil, ErrGenerationFailed
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("failed to decode generated question: %w", err)
	}
	if generated.Text == "" || len(generated.Answers) < 2 {
		return nil, ErrGenerationFailed
	}

	tx := g.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	question := models.QuizQuestion{
		CategoryID: category.ID,
		Text:       generated.Text,
		Difficulty: difficulty,
	}
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, a := range generated.Answers {
		answer := models.Answer{
			QuestionID: question.ID,
			Text:       a.Text,
			IsCorrect:  a.IsCorrect,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		question.Answers = append(question.Answers, answer)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("generated question", "category", categoryName, "question_id", question.ID)
	return &question, nil
}
