package services

import (
	"errors"
	"testing"

	"quizarena/sessions"
)

func newTestMatchService(source *fakeSource) *MatchService {
	return NewMatchService(source, testRNG(), 6)
}

func TestSetPlayerCountBounds(t *testing.T) {
	source := newFakeSource()
	match := newTestMatchService(source)

	tests := []struct {
		count int
		ok    bool
	}{
		{1, false},
		{2, true},
		{6, true},
		{7, false},
		{0, false},
		{-3, false},
	}

	for _, tt := range tests {
		session := sessions.New()
		err := match.SetPlayerCount(session, tt.count)
		if tt.ok && err != nil {
			t.Errorf("SetPlayerCount(%d) unexpected error: %v", tt.count, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("SetPlayerCount(%d) expected error", tt.count)
			}
			if session.PendingPlayerCount != 0 {
				t.Errorf("SetPlayerCount(%d) mutated session on invalid input", tt.count)
			}
		}
	}
}

func TestStartMatchDefaultsAndColors(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	match := newTestMatchService(source)

	session := sessions.New()
	if err := match.SetPlayerCount(session, 3); err != nil {
		t.Fatalf("set count: %v", err)
	}

	state, err := match.StartMatch(session, 1, []string{"Alice", "", "  "})
	if err != nil {
		t.Fatalf("start match: %v", err)
	}

	if len(state.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(state.Players))
	}
	if state.Players[0].Name != "Alice" {
		t.Errorf("player 1 name = %q", state.Players[0].Name)
	}
	if state.Players[1].Name != "Player 2" || state.Players[2].Name != "Player 3" {
		t.Errorf("blank names not defaulted: %+v", state.Players)
	}
	if state.CurrentTurnIndex != 0 {
		t.Errorf("turn index = %d, want 0", state.CurrentTurnIndex)
	}

	seenColors := make(map[string]bool)
	for _, p := range state.Players {
		if p.Score != 0 {
			t.Errorf("player %s starts with score %d", p.Name, p.Score)
		}
		if seenColors[p.Color] {
			t.Errorf("color %s assigned twice within palette size", p.Color)
		}
		seenColors[p.Color] = true

		found := false
		for _, c := range PlayerColors {
			if c == p.Color {
				found = true
			}
		}
		if !found {
			t.Errorf("color %s not from the palette", p.Color)
		}
	}

	if session.PendingPlayerCount != 0 {
		t.Error("pending player count not cleared after match start")
	}
}

func TestStartMatchRequiresPendingCount(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	match := newTestMatchService(source)

	_, err := match.StartMatch(sessions.New(), 1, nil)
	if !errors.Is(err, ErrNoPendingLobby) {
		t.Fatalf("expected ErrNoPendingLobby, got %v", err)
	}
}

func TestStartMatchUnknownCategory(t *testing.T) {
	source := newFakeSource()
	match := newTestMatchService(source)

	session := sessions.New()
	session.PendingPlayerCount = 2

	_, err := match.StartMatch(session, 99, nil)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestFullRotationAwardsTenEach(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	question := source.addQuestion(1, 1, "q")
	correctID := question.Answers[0].ID

	match := newTestMatchService(source)
	session := sessions.New()
	session.PendingPlayerCount = 4
	if _, err := match.StartMatch(session, 1, []string{"a", "b", "c", "d"}); err != nil {
		t.Fatalf("start match: %v", err)
	}

	for turn := 0; turn < 4; turn++ {
		result, err := match.SubmitAnswer(session, correctID)
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		if !result.Correct || result.Awarded != PointsPerCorrectAnswer {
			t.Fatalf("turn %d result: %+v", turn, result)
		}
	}

	state := session.Match
	if state.CurrentTurnIndex != 0 {
		t.Errorf("turn index = %d after full rotation, want 0", state.CurrentTurnIndex)
	}
	for _, p := range state.Players {
		if p.Score != PointsPerCorrectAnswer {
			t.Errorf("player %s score = %d, want %d", p.Name, p.Score, PointsPerCorrectAnswer)
		}
	}
}

func TestWrongAnswerRotatesWithoutPoints(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	question := source.addQuestion(1, 1, "q")
	wrongID := question.Answers[1].ID

	match := newTestMatchService(source)
	session := sessions.New()
	session.PendingPlayerCount = 2
	if _, err := match.StartMatch(session, 1, nil); err != nil {
		t.Fatalf("start match: %v", err)
	}

	result, err := match.SubmitAnswer(session, wrongID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct || result.Awarded != 0 {
		t.Fatalf("wrong answer scored: %+v", result)
	}
	if session.Match.CurrentTurnIndex != 1 {
		t.Errorf("turn index = %d, want 1 (wrong answers still end the turn)", session.Match.CurrentTurnIndex)
	}
	if session.Match.Players[0].Score != 0 {
		t.Errorf("score mutated on wrong answer: %d", session.Match.Players[0].Score)
	}
}

func TestUnknownAnswerNeverAdvancesTurnOrScore(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	source.addQuestion(1, 1, "q")

	match := newTestMatchService(source)
	session := sessions.New()
	session.PendingPlayerCount = 2
	if _, err := match.StartMatch(session, 1, nil); err != nil {
		t.Fatalf("start match: %v", err)
	}

	_, err := match.SubmitAnswer(session, 9999)
	if !errors.Is(err, ErrAnswerNotFound) {
		t.Fatalf("expected ErrAnswerNotFound, got %v", err)
	}
	if session.Match.CurrentTurnIndex != 0 {
		t.Errorf("turn index advanced on unknown answer: %d", session.Match.CurrentTurnIndex)
	}
	for _, p := range session.Match.Players {
		if p.Score != 0 {
			t.Errorf("score mutated on unknown answer: %+v", p)
		}
	}
}

func TestNextQuestionEndsMatchWhenCategoryEmpty(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")

	match := newTestMatchService(source)
	session := sessions.New()
	session.PendingPlayerCount = 2
	if _, err := match.StartMatch(session, 1, nil); err != nil {
		t.Fatalf("start match: %v", err)
	}

	_, err := match.NextQuestion(session)
	if !errors.Is(err, ErrCategoryEmpty) {
		t.Fatalf("expected ErrCategoryEmpty, got %v", err)
	}
	if session.Match != nil {
		t.Fatal("match state should be discarded when the category has no questions")
	}
}

func TestSubmitAnswerDiscardsInvalidMatchState(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	source.addQuestion(1, 1, "q")

	match := newTestMatchService(source)

	states := []*sessions.MatchState{
		{Players: nil, CurrentTurnIndex: 0, CategoryID: 1},
		{Players: []sessions.MatchPlayer{{ID: 1, Name: "Alice"}}, CurrentTurnIndex: 3, CategoryID: 1},
	}
	for _, state := range states {
		session := sessions.New()
		session.Match = state

		_, err := match.SubmitAnswer(session, 11)
		if !errors.Is(err, ErrNoMatch) {
			t.Fatalf("expected ErrNoMatch for %+v, got %v", state, err)
		}
		if session.Match != nil {
			t.Fatalf("invalid match state should be discarded: %+v", state)
		}
	}
}

func TestNextQuestionWithoutMatch(t *testing.T) {
	source := newFakeSource()
	match := newTestMatchService(source)

	_, err := match.NextQuestion(sessions.New())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestMatchQuestionsMayRepeat(t *testing.T) {
	source := newFakeSource()
	source.addCategory(1, "Histoire")
	source.addQuestion(1, 1, "only one")

	match := newTestMatchService(source)
	session := sessions.New()
	session.PendingPlayerCount = 2
	if _, err := match.StartMatch(session, 1, nil); err != nil {
		t.Fatalf("start match: %v", err)
	}

	// No anti-repetition across turns: the single question keeps coming.
	for i := 0; i < 3; i++ {
		question, err := match.NextQuestion(session)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		if question.ID != 1 {
			t.Fatalf("unexpected question %d", question.ID)
		}
	}
}
