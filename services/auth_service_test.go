package services

import (
	"errors"
	"testing"

	"quizarena/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (s *fakeUserStore) UserByID(id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *fakeUserStore) UserByUsername(username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (s *fakeUserStore) UsernameExists(username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *fakeUserStore) EmailExists(email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) CreateUser(user *models.User) error {
	user.ID = s.nextID
	s.nextID++
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) ListUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *fakeUserStore) SaveUser(user *models.User) error {
	for name, u := range s.users {
		if u.ID == user.ID && name != user.Username {
			delete(s.users, name)
		}
	}
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) DeleteUser(id uint) error {
	for name, u := range s.users {
		if u.ID == id {
			delete(s.users, name)
		}
	}
	return nil
}

var _ UserStore = (*fakeUserStore)(nil)

func newTestAuthService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(store, "test-secret"), store
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
	}
}

func TestRegisterSuccess(t *testing.T) {
	auth, store := newTestAuthService()

	user, fieldErrors, err := auth.Register(validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(fieldErrors) != 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrors)
	}
	if user.ID == 0 {
		t.Fatal("user not persisted")
	}
	if user.PasswordHash == "supersecret" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if _, ok := store.users["alice"]; !ok {
		t.Fatal("user missing from store")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{
			name:   "username too short",
			mutate: func(in *RegisterInput) { in.Username = "ab" },
			field:  "username",
		},
		{
			name:   "username missing",
			mutate: func(in *RegisterInput) { in.Username = "" },
			field:  "username",
		},
		{
			name:   "email missing",
			mutate: func(in *RegisterInput) { in.Email = "" },
			field:  "email",
		},
		{
			name:   "email without at sign",
			mutate: func(in *RegisterInput) { in.Email = "alice.example.com" },
			field:  "email",
		},
		{
			name:   "password too short",
			mutate: func(in *RegisterInput) { in.Password = "seven77"; in.ConfirmPassword = "seven77" },
			field:  "password",
		},
		{
			name:   "password missing",
			mutate: func(in *RegisterInput) { in.Password = ""; in.ConfirmPassword = "" },
			field:  "password",
		},
		{
			name:   "confirmation mismatch",
			mutate: func(in *RegisterInput) { in.ConfirmPassword = "different1" },
			field:  "confirm_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, _ := newTestAuthService()

			in := validInput()
			tt.mutate(&in)

			user, fieldErrors, err := auth.Register(in)
			if err != nil {
				t.Fatalf("register: %v", err)
			}
			if user != nil {
				t.Fatal("user created despite invalid input")
			}
			if fieldErrors[tt.field] == "" {
				t.Fatalf("expected error on field %q, got %v", tt.field, fieldErrors)
			}
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	auth, _ := newTestAuthService()

	if _, _, err := auth.Register(validInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same username, different email.
	in := validInput()
	in.Email = "other@example.com"
	_, fieldErrors, err := auth.Register(in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if fieldErrors["username"] == "" {
		t.Fatalf("expected duplicate-username error, got %v", fieldErrors)
	}

	// Same email, different username.
	in = validInput()
	in.Username = "bob"
	_, fieldErrors, err = auth.Register(in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if fieldErrors["email"] == "" {
		t.Fatalf("expected duplicate-email error, got %v", fieldErrors)
	}
}

func TestLoginSuccess(t *testing.T) {
	auth, _ := newTestAuthService()
	if _, _, err := auth.Register(validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := auth.Login("alice", "supersecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	auth, _ := newTestAuthService()
	if _, _, err := auth.Register(validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password for an existing user and a login for a user that
	// does not exist must be indistinguishable.
	_, errWrongPassword := auth.Login("alice", "not-the-password")
	_, errUnknownUser := auth.Login("mallory", "whatever123")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatal("credential failures leak which field was wrong")
	}
}
