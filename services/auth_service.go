package services

import (
	"strings"
	"time"

	"quizarena/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the credential-store boundary of the auth gateway and the
// users API collection.
type UserStore interface {
	UserByID(id uint) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	CreateUser(user *models.User) error
	ListUsers() ([]models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(id uint) error
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the input and creates the account with a bcrypt
// hash. Validation failures come back as field-level messages; the caller
// redisplays the form with username/email preserved and passwords blank.
func (s *AuthService) Register(in RegisterInput) (*models.User, map[string]string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	fieldErrors := map[string]string{}

	if in.Username == "" {
		fieldErrors["username"] = "Username is required."
	} else if len(in.Username) < 3 {
		fieldErrors["username"] = "Username must be at least 3 characters."
	}
	if in.Email == "" {
		fieldErrors["email"] = "Email is required."
	} else if !strings.Contains(in.Email, "@") {
		fieldErrors["email"] = "Email must be valid."
	}
	if in.Password == "" {
		fieldErrors["password"] = "Password is required."
	} else if len(in.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters."
	}
	if in.Password != in.ConfirmPassword {
		fieldErrors["confirm_password"] = "Passwords do not match."
	}

	if in.Username != "" && fieldErrors["username"] == "" {
		taken, err := s.users.UsernameExists(in.Username)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			fieldErrors["username"] = "This username is already taken."
		}
	}
	if in.Email != "" && fieldErrors["email"] == "" {
		taken, err := s.users.EmailExists(in.Email)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			fieldErrors["email"] = "This email is already in use."
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, nil, err
	}

	return user, nil, nil
}

// Login verifies the credentials. Failures are uniform: the caller learns
// nothing about which field was wrong or whether the username exists.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.users.UserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) UserByID(id uint) (*models.User, error) {
	return s.users.UserByID(id)
}

func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.users.ListUsers()
}

// UpdateUser renames a user; only the username is writable through the
// API, everything else is read-only or hashed at create time.
func (s *AuthService) UpdateUser(id uint, username string) (*models.User, error) {
	user, err := s.users.UserByID(id)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username != "" && username != user.Username {
		taken, err := s.users.UsernameExists(username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = username
	}

	if err := s.users.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DeleteUser(id uint) error {
	if _, err := s.users.UserByID(id); err != nil {
		return err
	}
	return s.users.DeleteUser(id)
}

// GenerateToken issues the bearer token the JSON API authenticates with.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// --- gorm-backed UserStore ---

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) UsernameExists(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *GormUserStore) EmailExists(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *GormUserStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormUserStore) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id").Find(&users).Error
	return users, err
}

func (s *GormUserStore) SaveUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *GormUserStore) DeleteUser(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}

var _ UserStore = (*GormUserStore)(nil)
