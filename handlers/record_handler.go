package handlers

import (
	"net/http"

	"quizarena/models"
	"quizarena/services"

	"github.com/gin-gonic/gin"
)

// RecordHandler exposes the persisted outcome records (player scores,
// player answers, game sessions) as plain CRUD collections.
type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// --- /api/player-scores/ ---

func (h *RecordHandler) ListScores(c *gin.Context) {
	scores, err := h.recordService.ListScores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *RecordHandler) GetScore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score ID"})
		return
	}

	score, err := h.recordService.ScoreByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Score not found"})
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *RecordHandler) CreateScore(c *gin.Context) {
	var score models.PlayerScore
	if err := c.ShouldBindJSON(&score); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recordService.CreateScore(&score); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, score)
}

func (h *RecordHandler) UpdateScore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score ID"})
		return
	}

	var score models.PlayerScore
	if err := c.ShouldBindJSON(&score); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.recordService.UpdateScore(id, &score)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Score not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteScore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score ID"})
		return
	}

	if err := h.recordService.DeleteScore(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Score not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Score deleted successfully"})
}

// --- /api/player-answers/ ---

func (h *RecordHandler) ListPlayerAnswers(c *gin.Context) {
	answers, err := h.recordService.ListPlayerAnswers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *RecordHandler) GetPlayerAnswer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	answer, err := h.recordService.PlayerAnswerByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *RecordHandler) CreatePlayerAnswer(c *gin.Context) {
	var answer models.PlayerAnswer
	if err := c.ShouldBindJSON(&answer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recordService.CreatePlayerAnswer(&answer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *RecordHandler) UpdatePlayerAnswer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	var answer models.PlayerAnswer
	if err := c.ShouldBindJSON(&answer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.recordService.UpdatePlayerAnswer(id, &answer)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeletePlayerAnswer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	if err := h.recordService.DeletePlayerAnswer(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}

// --- /api/game-sessions/ ---

func (h *RecordHandler) ListGameSessions(c *gin.Context) {
	gameSessions, err := h.recordService.ListGameSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gameSessions)
}

func (h *RecordHandler) GetGameSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	gameSession, err := h.recordService.GameSessionByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game session not found"})
		return
	}
	c.JSON(http.StatusOK, gameSession)
}

func (h *RecordHandler) CreateGameSession(c *gin.Context) {
	var gameSession models.GameSession
	if err := c.ShouldBindJSON(&gameSession); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recordService.CreateGameSession(&gameSession); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gameSession)
}

func (h *RecordHandler) UpdateGameSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var gameSession models.GameSession
	if err := c.ShouldBindJSON(&gameSession); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.recordService.UpdateGameSession(id, &gameSession)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game session not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler) DeleteGameSession(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	if err := h.recordService.DeleteGameSession(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game session deleted successfully"})
}
