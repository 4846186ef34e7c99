package service

import (
	"context"
	"strings"
	"time"

	"reservation_system/internal/domain"
	"reservation_system/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const directoryKey = "admin:users"

// DefaultHashCost is the bcrypt cost used for new passwords
const DefaultHashCost = domain.PasswordHashCost

// SignupInput carries a new account's details
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Birthday *time.Time
}

// UserOptions configures a UserService
type UserOptions struct {
	JWTSecret string        // HMAC secret for issued tokens
	JWTTTL    time.Duration // Token lifetime
	CacheTTL  time.Duration // Directory cache lifetime
	HashCost  int           // bcrypt cost, DefaultHashCost when zero
}

// UserService handles signup, login, principal resolution and the admin directory
type UserService struct {
	users UserRepository
	cache utils.Cache
	opts  UserOptions
}

// NewUserService creates a UserService
func NewUserService(users UserRepository, cache utils.Cache, opts UserOptions) *UserService {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	if opts.HashCost == 0 {
		opts.HashCost = DefaultHashCost
	}
	if opts.JWTTTL == 0 {
		opts.JWTTTL = 24 * time.Hour
	}
	return &UserService{users: users, cache: cache, opts: opts}
}

// Signup registers a regular user account
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidation("Missing required fields")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.NewConflict("User already exists!")
	} else if !isNotFound(err) {
		return nil, storageFailure("Server error", err, logrus.Fields{"email": email})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.HashCost)
	if err != nil {
		return nil, domain.NewInternal("Failed to hash password", err)
	}
	user := &domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Phone:    strings.TrimSpace(in.Phone),
		Birthday: in.Birthday,
		Role:     domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup may have taken the email after the check above
		if _, lookupErr := s.users.FindByEmail(ctx, email); lookupErr == nil {
			return nil, domain.NewConflict("User already exists!")
		}
		return nil, storageFailure("Server error", err, logrus.Fields{"email": email})
	}
	if err := s.cache.Delete(ctx, directoryKey); err != nil {
		logrus.WithError(err).Warn("Directory cache invalidation failed")
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Info("User signed up")
	return user, nil
}

// Login checks credentials and issues a token
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.NewValidation("Missing required fields")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", nil, domain.NewUnauthorized("Invalid credentials")
		}
		return "", nil, storageFailure("Login failed", err, logrus.Fields{"email": email})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.NewUnauthorized("Invalid credentials")
	}
	token, err := utils.GenerateJWT(user.ID, s.opts.JWTSecret, s.opts.JWTTTL)
	if err != nil {
		return "", nil, domain.NewInternal("Failed to generate token", err)
	}
	return token, user, nil
}

// Authenticate turns a bearer token into the caller's Principal. The role is
// read from the store on every call so demotions take effect immediately.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	id, err := utils.ParseJWT(token, s.opts.JWTSecret)
	if err != nil {
		return domain.Principal{}, domain.NewUnauthorized("Invalid or expired token")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return domain.Principal{}, domain.NewUnauthorized("Unauthorized")
		}
		return domain.Principal{}, storageFailure("Failed to resolve session", err, logrus.Fields{"user_id": id})
	}
	return domain.Principal{ID: user.ID, Role: user.Role}, nil
}

// Profile returns the caller's own account
func (s *UserService) Profile(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFound("User not found")
		}
		return nil, storageFailure("Failed to fetch user", err, logrus.Fields{"user_id": p.ID})
	}
	return user, nil
}

// Directory lists every user's name, email and birthday sorted by name; admin only
func (s *UserService) Directory(ctx context.Context, p domain.Principal) ([]domain.UserSummary, error) {
	if !p.IsAdmin() {
		return nil, domain.NewForbidden("Unauthorized access")
	}
	var cached []domain.UserSummary
	if found, err := s.cache.Get(ctx, directoryKey, &cached); err == nil && found {
		return cached, nil
	}
	rows, err := s.users.ListSummaries(ctx)
	if err != nil {
		return nil, storageFailure("Failed to fetch users", err, nil)
	}
	if err := s.cache.Set(ctx, directoryKey, rows, s.opts.CacheTTL); err != nil {
		logrus.WithError(err).Warn("Directory cache write failed")
	}
	return rows, nil
}
