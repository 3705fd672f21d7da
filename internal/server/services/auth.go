// Package services contains server-side business logic. This file implements
// AuthService, which handles signup, password login and issuing/refreshing
// JWT access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// SignupMessage is returned on successful registration.
const SignupMessage = "User registered successfully"

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// LoginRequest is the password login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResult struct {
	Message string `json:"message"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
// Both are JWTs signed with the same key.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccessToken is the result of a silent refresh.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
}

// AuthService provides authentication operations:
// - Signup: create users with a hashed password
// - Login: verify credentials and mint a token pair
// - RefreshAccessToken: mint a new access token from a valid refresh token
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       cryptox.PasswordHasher
	issuer                       *auth.Issuer
	validate                     *validator.Validate
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration

	// decoy is verified against when the email is unknown so that both
	// login failures cost one hash comparison.
	decoyOnce sync.Once
	decoy     string
}

// decoyPassword is hashed once to produce the digest used for unknown emails.
const decoyPassword = "authkeeper-decoy-password"

// NewAuthService constructs an AuthService. db may be nil for the in-memory
// repository manager.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher, issuer *auth.Issuer, cfg *config.Config) *AuthService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("maxbytes", maxBytes)

	return &AuthService{
		db:                           db,
		repomanager:                  m,
		hasher:                       hasher,
		issuer:                       issuer,
		validate:                     v,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Signup validates the request and stores a new user. A taken email yields
// common.ErrDuplicateEmail whether it is caught by the lookup or by the
// store's unique index. Signup does not log the user in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	if err := s.validateRequest(req); err != nil {
		metrics.SignupTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		metrics.SignupTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		metrics.SignupTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrorInternal, err)
	}

	digest, err := s.hasher.Hash([]byte(req.Password))
	if err != nil {
		metrics.SignupTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user := &models.User{Name: req.Name, Email: req.Email, PasswordHash: digest}
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			metrics.SignupTotal.WithLabelValues(metrics.ResultRejected).Inc()
			return nil, common.ErrDuplicateEmail
		}
		metrics.SignupTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorInternal, err)
	}

	metrics.SignupTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return &SignupResult{Message: SignupMessage}, nil
}

// Login verifies the password against the stored digest. Unknown email and
// wrong password both yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify([]byte(req.Password), s.decoyDigest())
			metrics.LoginTotal.WithLabelValues(metrics.ResultRejected).Inc()
			return nil, common.ErrInvalidCredentials
		}
		metrics.LoginTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify([]byte(req.Password), user.PasswordHash) {
		metrics.LoginTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		metrics.LoginTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	metrics.LoginTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return pair, nil
}

// RefreshAccessToken verifies a refresh token and mints a new access token
// for its subject. The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessToken, error) {
	if refreshToken == "" {
		metrics.RefreshTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, common.ErrMissingRefreshToken
	}

	claims, err := s.issuer.Verify(refreshToken)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, common.ErrInvalidRefreshToken
	}

	access, err := s.issuer.Issue(claims.Identity(), s.accessTokenValidityDuration)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%w: sign access token: %v", common.ErrorInternal, err)
	}

	metrics.RefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return &AccessToken{AccessToken: access}, nil
}

// RefreshTokenValidity is the lifetime of issued refresh tokens; the HTTP
// layer uses it as the cookie Max-Age.
func (s *AuthService) RefreshTokenValidity() time.Duration {
	return s.refreshTokenValidityDuration
}

// --- helpers below ---

func (s *AuthService) decoyDigest() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash([]byte(decoyPassword))
	})
	return s.decoy
}

func (s *AuthService) generateTokenPair(id auth.Identity) (*TokenPair, error) {
	access, err := s.issuer.Issue(id, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: sign access token: %v", common.ErrorInternal, err)
	}
	refresh, err := s.issuer.Issue(id, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: sign refresh token: %v", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// maxBytes limits the encoded length of a string field. bcrypt rejects
// inputs over 72 bytes, and validator's max counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
