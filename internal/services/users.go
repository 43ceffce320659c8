package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the user directory: sign-up, credentials and profiles.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a local account with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if len(req.Password) < 8 {
		return nil, errs.Errorf(errs.Validation, "password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Bio:      req.Bio,
	}
	if user.Username == "" || user.Email == "" {
		return nil, errs.Errorf(errs.Validation, "username and email are required")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		if _, err := users.GetUserByUsername(user.Username); err == nil {
			return errs.Errorf(errs.Validation, "username %q is already taken", user.Username)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := users.GetUserByEmail(user.Email); err == nil {
			return errs.Errorf(errs.Validation, "email %q is already registered", user.Email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return users.CreateUser(user)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("user", user.ID).Info("user registered")
	return user, nil
}

// Authenticate checks a password against the account named by login,
// which may be a username or an email address.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	users := repositories.NewPostgresUserRepository(s.db.WithContext(ctx))
	login = strings.TrimSpace(login)

	user, err := users.GetUserByUsername(login)
	if errors.Is(err, gorm.ErrRecordNotFound) && strings.Contains(login, "@") {
		user, err = users.GetUserByEmail(strings.ToLower(login))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.Permission, "invalid credentials")
		}
		return nil, err
	}
	if user.Password == "" {
		// Firebase-only accounts have no local password.
		return nil, errs.Errorf(errs.Permission, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.Errorf(errs.Permission, "invalid credentials")
	}
	return user, nil
}

// LinkFirebaseUser resolves a verified Firebase identity to a local user:
// first by UID, then by email (linking the UID), else by creating one.
func (s *UserService) LinkFirebaseUser(ctx context.Context, uid, email, name string) (*models.User, error) {
	if uid == "" {
		return nil, errs.Errorf(errs.Validation, "firebase uid is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)

		found, err := users.GetUserByFirebaseUID(uid)
		if err == nil {
			user = found
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if email != "" {
			found, err = users.GetUserByEmail(email)
			if err == nil {
				found.FirebaseUID = &uid
				user = found
				return users.UpdateUser(found)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		username, err := availableUsername(users, name, email, uid)
		if err != nil {
			return err
		}
		if email == "" {
			email = uid + "@firebase.local"
		}
		user = &models.User{Username: username, Email: email, FirebaseUID: &uid}
		return users.CreateUser(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// availableUsername derives an alphanumeric username from the display name
// or email, appending part of the uid when the plain form is taken.
func availableUsername(users repositories.UserRepository, name, email, uid string) (string, error) {
	base := alphanumeric(name)
	if base == "" {
		base = alphanumeric(strings.SplitN(email, "@", 2)[0])
	}
	if base == "" {
		base = "user"
	}
	if len(base) > 120 {
		base = base[:120]
	}

	candidates := []string{base, base + strings.ToLower(alphanumeric(uid))}
	for _, candidate := range candidates {
		if len(candidate) > 150 {
			candidate = candidate[:150]
		}
		_, err := users.GetUserByUsername(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errs.Errorf(errs.Validation, "no username available for firebase user %s", uid)
}

func alphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).GetUserByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.NotFound, "user %d not found", id)
	}
	return user, err
}

// UpdateProfile applies the non-empty fields of req.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		found, err := users.GetUserByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.NotFound, "user %d not found", id)
		}
		if err != nil {
			return err
		}

		if req.Email != "" {
			email := strings.ToLower(strings.TrimSpace(req.Email))
			if email != found.Email {
				if _, err := users.GetUserByEmail(email); err == nil {
					return errs.Errorf(errs.Validation, "email %q is already registered", email)
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				found.Email = email
			}
		}
		if req.Bio != "" {
			found.Bio = req.Bio
		}
		if req.ProfilePicture != "" {
			found.ProfilePicture = req.ProfilePicture
		}
		user = found
		return users.UpdateUser(found)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers matches username or email substrings, ignoring case.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.Errorf(errs.Validation, "search query is required")
	}
	return repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).SearchUsers(query)
}
