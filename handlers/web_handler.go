package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"quizarena/middleware"
	"quizarena/models"
	"quizarena/pkg/logger"
	"quizarena/services"
	"quizarena/sessions"

	"github.com/gin-gonic/gin"
)

// FixedQuestionTime is the display timer value for single-player rounds.
const FixedQuestionTime = 15

// WebHandler serves the server-rendered HTML surface: home, the offline
// single-player flow, the multiplayer lobby and match, authentication
// pages and the leaderboard.
type WebHandler struct {
	questions     services.QuestionSource
	progress      *services.ProgressService
	match         *services.MatchService
	auth          *services.AuthService
	recordService *services.RecordService
}

func NewWebHandler(
	questions services.QuestionSource,
	progress *services.ProgressService,
	match *services.MatchService,
	auth *services.AuthService,
	recordService *services.RecordService,
) *WebHandler {
	return &WebHandler{
		questions:     questions,
		progress:      progress,
		match:         match,
		auth:          auth,
		recordService: recordService,
	}
}

// pageData builds the context every template expects: flashes, auth state
// and a page title.
func pageData(c *gin.Context, title string, extra gin.H) gin.H {
	session := middleware.GetSession(c)
	data := gin.H{
		"page_title":    title,
		"authenticated": session.IsAuthenticated(),
		"username":      session.Username,
		"flashes":       session.ConsumeFlashes(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *WebHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", pageData(c, "Quiz Arena", nil))
}

// --- Offline (single-player) ---

func (h *WebHandler) OfflineCategories(c *gin.Context) {
	if err := h.questions.EnsureDefaultCategories(); err != nil {
		logger.Warn("failed to seed default categories", "error", err)
	}

	categories, err := h.questions.Categories()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, "Error", gin.H{
			"message": "Failed to load categories.",
		}))
		return
	}

	c.HTML(http.StatusOK, "offline_categories.html", pageData(c, "Choose a Category", gin.H{
		"categories": categories,
	}))
}

func (h *WebHandler) OfflinePlay(c *gin.Context) {
	session := middleware.GetSession(c)

	category, ok := h.offlineCategory(c, session)
	if !ok {
		return
	}

	question, err := h.progress.NextQuestion(session, category)
	if err != nil {
		h.renderOfflineStop(c, category, err)
		return
	}

	c.HTML(http.StatusOK, "offline_game.html", pageData(c, "Quiz: "+category.Descriptor, gin.H{
		"category":   category,
		"question":   question,
		"answers":    h.progress.ShuffleAnswers(question),
		"fixed_time": FixedQuestionTime,
		"submitted":  false,
	}))
}

// OfflineSubmit resolves a submitted answer and renders the result view.
// An unknown answer id silently falls back to a fresh question, matching
// the lenient behavior of the GET path.
func (h *WebHandler) OfflineSubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	category, ok := h.offlineCategory(c, session)
	if !ok {
		return
	}

	answerID, err := strconv.ParseUint(c.PostForm("answer_id"), 10, 32)
	if err != nil {
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	answer, err := h.questions.AnswerByID(uint(answerID))
	if err != nil {
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	question, err := h.questions.QuestionByID(answer.QuestionID)
	if err != nil {
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	var correctAnswerID uint
	if correct, err := h.questions.CorrectAnswer(question.ID); err == nil {
		correctAnswerID = correct.ID
	}

	c.HTML(http.StatusOK, "offline_game.html", pageData(c, "Quiz: "+category.Descriptor, gin.H{
		"category":            category,
		"question":            question,
		"answers":             h.progress.ShuffleAnswers(question),
		"fixed_time":          FixedQuestionTime,
		"submitted":           true,
		"is_correct":          answer.IsCorrect,
		"submitted_answer_id": answer.ID,
		"correct_answer_id":   correctAnswerID,
	}))
}

func (h *WebHandler) offlineCategory(c *gin.Context, session *sessions.Session) (*models.Category, bool) {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 32)
	if err != nil {
		session.AddFlash("error", "Unknown category.")
		c.Redirect(http.StatusFound, "/offline/")
		return nil, false
	}

	category, err := h.questions.CategoryByID(uint(categoryID))
	if err != nil {
		session.AddFlash("error", "Unknown category.")
		c.Redirect(http.StatusFound, "/offline/")
		return nil, false
	}
	return category, true
}

// renderOfflineStop distinguishes cycle exhaustion (replay available, the
// played set was just reset) from a category with no content at all.
func (h *WebHandler) renderOfflineStop(c *gin.Context, category *models.Category, err error) {
	switch {
	case errors.Is(err, services.ErrCycleExhausted):
		c.HTML(http.StatusOK, "error.html", pageData(c, "Category Complete", gin.H{
			"message":  fmt.Sprintf("All questions in %s have been played. Come back for a new round!", category.Descriptor),
			"back_url": "/offline/",
		}))
	case errors.Is(err, services.ErrCategoryEmpty):
		c.HTML(http.StatusOK, "error.html", pageData(c, "No Questions", gin.H{
			"message":  fmt.Sprintf("The question bank is empty for %s, and generation failed.", category.Descriptor),
			"back_url": "/offline/",
		}))
	default:
		logger.Error("failed to pick a question", "category_id", category.ID, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, "Error", gin.H{
			"message":  "Something went wrong while picking a question.",
			"back_url": "/offline/",
		}))
	}
}

// --- Multiplayer ---

func (h *WebHandler) MultiplayerSetup(c *gin.Context) {
	c.HTML(http.StatusOK, "multiplayer_setup.html", pageData(c, "Number of Players", gin.H{
		"max_players": h.match.MaxPlayers(),
	}))
}

func (h *WebHandler) MultiplayerSetupSubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	count, err := strconv.Atoi(c.PostForm("num_players"))
	if err != nil {
		session.AddFlash("error", "Please enter a valid number.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	if err := h.match.SetPlayerCount(session, count); err != nil {
		session.AddFlash("error", err.Error())
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	c.Redirect(http.StatusFound, "/multiplayer/")
}

func (h *WebHandler) MultiplayerLobby(c *gin.Context) {
	session := middleware.GetSession(c)

	if session.PendingPlayerCount == 0 {
		session.AddFlash("warning", "Please choose the number of players first.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	categories, ok := h.lobbyCategories(c, session)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "multiplayer_lobby.html", pageData(c, "Multiplayer Lobby", gin.H{
		"num_players": session.PendingPlayerCount,
		"player_nums": playerRange(session.PendingPlayerCount),
		"categories":  categories,
	}))
}

func (h *WebHandler) MultiplayerLobbySubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	if session.PendingPlayerCount == 0 {
		session.AddFlash("warning", "Please choose the number of players first.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	if _, ok := h.lobbyCategories(c, session); !ok {
		return
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil {
		session.AddFlash("error", "Please select a category.")
		c.Redirect(http.StatusFound, "/multiplayer/")
		return
	}

	names := make([]string, 0, session.PendingPlayerCount)
	for i := 1; i <= session.PendingPlayerCount; i++ {
		names = append(names, c.PostForm(fmt.Sprintf("player_name_%d", i)))
	}

	if _, err := h.match.StartMatch(session, uint(categoryID), names); err != nil {
		session.AddFlash("error", "Could not start the match: "+err.Error())
		c.Redirect(http.StatusFound, "/multiplayer/")
		return
	}

	session.AddFlash("success", "Lobby created! Let the game begin.")
	c.Redirect(http.StatusFound, "/multiplayer/play/")
}

// playableMatch returns the session's match when it is present and
// structurally sound. Anything else (including a corrupted session blob
// with no players or a turn cursor out of range) is discarded and the
// caller redirected to lobby setup.
func playableMatch(c *gin.Context, session *sessions.Session) (*sessions.MatchState, bool) {
	match := session.Match
	if match == nil || !match.Valid() {
		session.Match = nil
		session.AddFlash("error", "No multiplayer match in progress. Please create a lobby.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return nil, false
	}
	return match, true
}

func (h *WebHandler) MultiplayerPlay(c *gin.Context) {
	session := middleware.GetSession(c)

	match, ok := playableMatch(c, session)
	if !ok {
		return
	}

	category, err := h.questions.CategoryByID(match.CategoryID)
	if err != nil {
		session.Match = nil
		session.AddFlash("error", "The match category is gone.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	question, err := h.match.NextQuestion(session)
	if err != nil {
		// NextQuestion already discarded the match state: hard stop.
		session.AddFlash("error", fmt.Sprintf("No questions available for %s. The match has ended.", category.Descriptor))
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	c.HTML(http.StatusOK, "multiplayer_game.html", pageData(c, "Multiplayer Match", gin.H{
		"category":       category,
		"players":        match.Players,
		"current_player": match.CurrentPlayer(),
		"question":       question,
		"answers":        h.match.ShuffleAnswers(question),
	}))
}

func (h *WebHandler) MultiplayerPlaySubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	if _, ok := playableMatch(c, session); !ok {
		return
	}

	answerID, parseErr := strconv.ParseUint(c.PostForm("answer_id"), 10, 32)
	if parseErr != nil {
		h.rerenderSameTurn(c, session)
		return
	}

	result, err := h.match.SubmitAnswer(session, uint(answerID))
	if err != nil {
		if errors.Is(err, services.ErrAnswerNotFound) {
			// Unknown answer: same question, same turn, nothing scored.
			h.rerenderSameTurn(c, session)
			return
		}
		session.AddFlash("error", "No multiplayer match in progress. Please create a lobby.")
		c.Redirect(http.StatusFound, "/multiplayer/setup/")
		return
	}

	if result.Correct {
		session.AddFlash("success", fmt.Sprintf("%s scored %d points!", result.PlayerName, result.Awarded))
	} else {
		session.AddFlash("warning", fmt.Sprintf("%s missed the question.", result.PlayerName))
	}

	c.Redirect(http.StatusFound, "/multiplayer/play/")
}

// rerenderSameTurn shows the submitted question again with an error
// notice, keeping the turn cursor and scores untouched.
func (h *WebHandler) rerenderSameTurn(c *gin.Context, session *sessions.Session) {
	match := session.Match

	questionID, err := strconv.ParseUint(c.PostForm("question_id"), 10, 32)
	if err != nil {
		c.Redirect(http.StatusFound, "/multiplayer/play/")
		return
	}
	question, err := h.questions.QuestionByID(uint(questionID))
	if err != nil {
		c.Redirect(http.StatusFound, "/multiplayer/play/")
		return
	}
	category, err := h.questions.CategoryByID(match.CategoryID)
	if err != nil {
		c.Redirect(http.StatusFound, "/multiplayer/play/")
		return
	}

	session.AddFlash("error", "Invalid answer.")
	c.HTML(http.StatusOK, "multiplayer_game.html", pageData(c, "Multiplayer Match", gin.H{
		"category":       category,
		"players":        match.Players,
		"current_player": match.CurrentPlayer(),
		"question":       question,
		"answers":        h.match.ShuffleAnswers(question),
	}))
}

// --- Leaderboard ---

func (h *WebHandler) Classements(c *gin.Context) {
	scores, err := h.recordService.Leaderboard(50)
	if err != nil {
		logger.Error("failed to load leaderboard", "error", err)
		scores = nil
	}

	c.HTML(http.StatusOK, "classements.html", pageData(c, "Leaderboard", gin.H{
		"scores": scores,
	}))
}

// --- Accounts ---

func (h *WebHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", pageData(c, "Register", gin.H{
		"errors": map[string]string{},
	}))
}

func (h *WebHandler) RegisterSubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	in := services.RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}

	user, fieldErrors, err := h.auth.Register(in)
	if err != nil {
		logger.Error("registration failed", "error", err)
		session.AddFlash("error", "Something went wrong, please try again.")
		c.HTML(http.StatusInternalServerError, "register.html", pageData(c, "Register", gin.H{
			"errors":   map[string]string{},
			"username": in.Username,
			"email":    in.Email,
		}))
		return
	}
	if len(fieldErrors) > 0 {
		// Redisplay with the entered username/email; passwords are
		// never echoed back.
		c.HTML(http.StatusOK, "register.html", pageData(c, "Register", gin.H{
			"errors":   fieldErrors,
			"username": in.Username,
			"email":    in.Email,
		}))
		return
	}

	session.UserID = user.ID
	session.Username = user.Username
	session.AddFlash("success", fmt.Sprintf("Account created successfully! Welcome %s.", user.Username))
	logger.Info("user registered", "user_id", user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *WebHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", pageData(c, "Login", nil))
}

func (h *WebHandler) LoginSubmit(c *gin.Context) {
	session := middleware.GetSession(c)

	username := c.PostForm("username")
	user, err := h.auth.Login(username, c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusOK, "login.html", pageData(c, "Login", gin.H{
			"error":    "Invalid username or password.",
			"username": username,
		}))
		return
	}

	session.UserID = user.ID
	session.Username = user.Username
	session.AddFlash("success", fmt.Sprintf("Welcome back, %s!", user.Username))
	logger.Info("user logged in", "user_id", user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *WebHandler) Logout(c *gin.Context) {
	session := middleware.GetSession(c)
	session.ClearAuth()
	session.AddFlash("success", "Logged out.")
	c.Redirect(http.StatusFound, "/")
}

func (h *WebHandler) Profile(c *gin.Context) {
	session := middleware.GetSession(c)

	user, err := h.auth.UserByID(session.UserID)
	if err != nil {
		session.ClearAuth()
		c.Redirect(http.StatusFound, "/login/")
		return
	}

	c.HTML(http.StatusOK, "profile.html", pageData(c, "Profile", gin.H{
		"user": user.Public(),
	}))
}

func (h *WebHandler) lobbyCategories(c *gin.Context, session *sessions.Session) ([]models.Category, bool) {
	categories, err := h.questions.Categories()
	if err != nil || len(categories) == 0 {
		session.AddFlash("error", "Please create categories before starting a multiplayer match.")
		c.Redirect(http.StatusFound, "/")
		return nil, false
	}
	return categories, true
}

func playerRange(n int) []int {
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
