package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt не принимает пароли длиннее 72 байт
	maxPasswordBytes = 72

	msgUsernameTaken   = "A user with that username already exists."
	msgUsernameInvalid = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgUsernameLong    = "Ensure this field has no more than 150 characters."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordNumeric = "This password is entirely numeric."
	msgPasswordLong    = "Ensure this field has no more than 72 bytes."
	msgEmailInvalid    = "Enter a valid email address."
	msgBadCredentials  = "No active account found with the given credentials"
	msgTokenInvalid    = "Token is invalid or expired"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type Registration struct {
	Username *string
	Email    *string
	Password *string
}

type Credentials struct {
	Username *string
	Password *string
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost, mostly for tests.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// Service covers registration, the current user and token exchange.
type Service struct {
	users    UserStorage
	tokens   *auth.TokenManager
	hashCost int
	now      func() time.Time
}

func NewService(users UserStorage, tokens *auth.TokenManager, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, in Registration) (*models.User, error) {
	verr := &apperr.Error{Kind: apperr.KindValidation}

	username := ""
	switch {
	case in.Username == nil || *in.Username == "":
		verr.Add("username", apperr.MsgRequired)
	case len(*in.Username) > maxUsernameLength:
		verr.Add("username", msgUsernameLong)
	case !usernamePattern.MatchString(*in.Username):
		verr.Add("username", msgUsernameInvalid)
	default:
		username = *in.Username
	}

	email := ""
	if in.Email != nil && *in.Email != "" {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			verr.Add("email", msgEmailInvalid)
		} else {
			email = *in.Email
		}
	}

	if in.Password == nil || *in.Password == "" {
		verr.Add("password", apperr.MsgRequired)
	} else {
		if len(*in.Password) < minPasswordLength {
			verr.Add("password", msgPasswordShort)
		}
		if len(*in.Password) > maxPasswordBytes {
			verr.Add("password", msgPasswordLong)
		}
		if isNumeric(*in.Password) {
			verr.Add("password", msgPasswordNumeric)
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Username:   username,
		Email:      email,
		Password:   string(hashedPassword),
		DateJoined: s.now().UTC(),
	}
	err = s.users.CreateUser(ctx, u)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, apperr.Validation("username", msgUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Me returns the authenticated caller.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	actor := auth.ActorFromContext(ctx)
	if err := permission.Authenticated(actor).Err(); err != nil {
		return nil, err
	}

	u, err := s.users.GetUserByID(ctx, actor.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.Unauthenticated(apperr.MsgInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	return u, nil
}

func (s *Service) ObtainTokens(ctx context.Context, in Credentials) (auth.TokenPair, error) {
	verr := &apperr.Error{Kind: apperr.KindValidation}
	if in.Username == nil || *in.Username == "" {
		verr.Add("username", apperr.MsgRequired)
	}
	if in.Password == nil || *in.Password == "" {
		verr.Add("password", apperr.MsgRequired)
	}
	if len(verr.Fields) > 0 {
		return auth.TokenPair{}, verr
	}

	u, err := s.users.GetUserByUsername(ctx, *in.Username)
	if errors.Is(err, storage.ErrNotFound) {
		return auth.TokenPair{}, apperr.Unauthenticated(msgBadCredentials)
	}
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("could not get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(*in.Password))
	if err != nil {
		return auth.TokenPair{}, apperr.Unauthenticated(msgBadCredentials)
	}

	return s.tokens.IssuePair(u.ID, u.Username)
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refresh *string) (string, error) {
	if refresh == nil || *refresh == "" {
		return "", apperr.Validation("refresh", apperr.MsgRequired)
	}

	claims, err := s.tokens.Parse(*refresh, auth.RefreshToken)
	if err != nil {
		return "", apperr.Unauthenticated(msgTokenInvalid)
	}

	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", apperr.Unauthenticated(msgTokenInvalid)
	}
	if err != nil {
		return "", fmt.Errorf("could not get user: %w", err)
	}

	return s.tokens.IssueAccess(u.ID, u.Username)
}

// Verify accepts any valid token, access or refresh.
func (s *Service) Verify(token *string) error {
	if token == nil || *token == "" {
		return apperr.Validation("token", apperr.MsgRequired)
	}
	if _, err := s.tokens.Parse(*token, ""); err != nil {
		return apperr.Unauthenticated(msgTokenInvalid)
	}
	return nil
}

func isNumeric(s string) bool {
	return strings.Trim(s, "0123456789") == ""
}
