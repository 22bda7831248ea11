package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/newsfeed-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound is returned when no user matches the given ID or email.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidPassword is returned when credentials fail the hash comparison.
var ErrInvalidPassword = errors.New("invalid password")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(name, email, password string, preferences []string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	UpdatePreferences(id string, preferences []string) (models.User, error)
	MarkArticleRead(id, articleID string) error
	MarkArticleFavorite(id, articleID string) error
	GetReadArticles(id string) ([]string, error)
	GetFavoriteArticles(id string) ([]string, error)
}

// UserService provides business logic for user management and article
// interaction tracking.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user, hashing their password. The email is
// lowercased and trimmed before storage; a duplicate surfaces the store's
// uniqueness error to the caller.
func (s *UserService) CreateUser(name, email, password string, preferences []string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if preferences == nil {
		preferences = []string{}
	}

	user := models.User{
		ID:               uuid.New().String(),
		Name:             name,
		Email:            normalizeEmail(email),
		PasswordHash:     string(hashedPassword),
		Preferences:      preferences,
		ReadArticles:     []string{},
		FavoriteArticles: []string{},
	}

	prefsJSON, err := json.Marshal(user.Preferences)
	if err != nil {
		return models.User{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash, preferences_json) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash, string(prefsJSON))
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, email, password_hash, preferences_json, read_articles_json, favorite_articles_json, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail retrieves a single user by their normalized email,
// including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, email, password_hash, preferences_json, read_articles_json, favorite_articles_json, created_at FROM users WHERE email = ?", normalizeEmail(email))
	user, err := scanUserRaw(row)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials. It distinguishes an
// unknown email (ErrUserNotFound) from a bad password (ErrInvalidPassword)
// so callers can map them to different responses.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidPassword
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// UpdatePreferences replaces the user's preference list wholesale.
func (s *UserService) UpdatePreferences(id string, preferences []string) (models.User, error) {
	if preferences == nil {
		preferences = []string{}
	}
	prefsJSON, err := json.Marshal(preferences)
	if err != nil {
		return models.User{}, err
	}

	res, err := s.db.Exec("UPDATE users SET preferences_json = ? WHERE id = ?", string(prefsJSON), id)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}
	return s.GetUserByID(id)
}

// MarkArticleRead records that the user has read the article. Marking the
// same article twice leaves a single entry.
func (s *UserService) MarkArticleRead(id, articleID string) error {
	return s.appendArticle(id, articleID, "read_articles_json")
}

// MarkArticleFavorite records the article as a favorite of the user.
// Idempotent, like MarkArticleRead.
func (s *UserService) MarkArticleFavorite(id, articleID string) error {
	return s.appendArticle(id, articleID, "favorite_articles_json")
}

// GetReadArticles returns the user's read article IDs, oldest first.
func (s *UserService) GetReadArticles(id string) ([]string, error) {
	return s.articleList(id, "read_articles_json")
}

// GetFavoriteArticles returns the user's favorite article IDs, oldest first.
func (s *UserService) GetFavoriteArticles(id string) ([]string, error) {
	return s.articleList(id, "favorite_articles_json")
}

func (s *UserService) appendArticle(id, articleID, column string) error {
	list, err := s.articleList(id, column)
	if err != nil {
		return err
	}
	if slices.Contains(list, articleID) {
		return nil
	}
	list = append(list, articleID)

	listJSON, err := json.Marshal(list)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE users SET "+column+" = ? WHERE id = ?", string(listJSON), id)
	return err
}

func (s *UserService) articleList(id, column string) ([]string, error) {
	var raw string
	row := s.db.QueryRow("SELECT "+column+" FROM users WHERE id = ?", id)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return decodeStringList(raw)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// scanUser scans a full user row and strips the password hash.
func scanUser(row *sql.Row) (models.User, error) {
	user, err := scanUserRaw(row)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func scanUserRaw(row *sql.Row) (models.User, error) {
	var user models.User
	var prefsJSON, readJSON, favJSON string
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &prefsJSON, &readJSON, &favJSON, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if user.Preferences, err = decodeStringList(prefsJSON); err != nil {
		return models.User{}, err
	}
	if user.ReadArticles, err = decodeStringList(readJSON); err != nil {
		return models.User{}, err
	}
	if user.FavoriteArticles, err = decodeStringList(favJSON); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("corrupt list column: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
