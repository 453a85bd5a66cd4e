package services

import (
	"math/rand"
	"sort"

	"quizarena/models"
)

// fakeSource is an in-memory QuestionSource for tests.
type fakeSource struct {
	categories map[uint]*models.Category
	questions  map[uint]*models.QuizQuestion
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		categories: make(map[uint]*models.Category),
		questions:  make(map[uint]*models.QuizQuestion),
	}
}

func (f *fakeSource) addCategory(id uint, descriptor string) *models.Category {
	category := &models.Category{ID: id, Descriptor: descriptor}
	f.categories[id] = category
	return category
}

// addQuestion registers a question with one correct and one wrong answer.
// Answer ids are derived from the question id: correct = qid*10+1,
// wrong = qid*10+2.
func (f *fakeSource) addQuestion(categoryID, id uint, text string) *models.QuizQuestion {
	question := &models.QuizQuestion{
		ID:         id,
		CategoryID: categoryID,
		Text:       text,
		Difficulty: 1,
		Answers: []models.Answer{
			{ID: id*10 + 1, QuestionID: id, Text: "right", IsCorrect: true},
			{ID: id*10 + 2, QuestionID: id, Text: "wrong", IsCorrect: false},
		},
	}
	f.questions[id] = question
	return question
}

func (f *fakeSource) Categories() ([]models.Category, error) {
	ids := make([]uint, 0, len(f.categories))
	for id := range f.categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	categories := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, *f.categories[id])
	}
	return categories, nil
}

func (f *fakeSource) CategoryByID(id uint) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeSource) EnsureDefaultCategories() error {
	return nil
}

func (f *fakeSource) QuestionIDs(categoryID uint) ([]uint, error) {
	var ids []uint
	for id, q := range f.questions {
		if q.CategoryID == categoryID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeSource) QuestionByID(id uint) (*models.QuizQuestion, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (f *fakeSource) AnswerByID(id uint) (*models.Answer, error) {
	for _, q := range f.questions {
		for i := range q.Answers {
			if q.Answers[i].ID == id {
				return &q.Answers[i], nil
			}
		}
	}
	return nil, ErrAnswerNotFound
}

func (f *fakeSource) CorrectAnswer(questionID uint) (*models.Answer, error) {
	question, ok := f.questions[questionID]
	if !ok {
		return nil, ErrAnswerNotFound
	}
	for i := range question.Answers {
		if question.Answers[i].IsCorrect {
			return &question.Answers[i], nil
		}
	}
	return nil, ErrAnswerNotFound
}

var _ QuestionSource = (*fakeSource)(nil)

// fakeGenerator records calls and either produces questions into the
// source or fails.
type fakeGenerator struct {
	source *fakeSource
	nextID uint
	fail   bool
	calls  int
}

func (g *fakeGenerator) Generate(categoryName string, difficulty int) (*models.QuizQuestion, error) {
	g.calls++
	if g.fail {
		return nil, ErrGenerationFailed
	}
	for id, category := range g.source.categories {
		if category.Descriptor == categoryName {
			question := g.source.addQuestion(id, g.nextID, "generated")
			question.Difficulty = difficulty
			g.nextID++
			return question, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
