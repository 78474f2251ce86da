package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

const minPasswordLength = 8

// Claims are the JWT claims issued at login.
type Claims struct {
	UserID  int64 `json:"user_id"`
	IsStaff bool  `json:"is_staff"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	// IsStaff is only set by operator tooling, never from a request body.
	IsStaff bool
}

type AccountService struct {
	store  datastore.Store
	auth   config.AuthConfig
	logger *zap.Logger
}

func NewAccountService(store datastore.Store, auth config.AuthConfig, logger *zap.Logger) *AccountService {
	return &AccountService{store: store, auth: auth, logger: logger}
}

// Register creates a user and its customer profile in one transaction.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, apperrors.Invalid("username may not be blank")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperrors.Invalid("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsStaff:      in.IsStaff,
		IsActive:     true,
	}
	err = s.store.WithTx(ctx, func(q datastore.Queries) error {
		if err := q.CreateUser(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.Invalid("a user with that username already exists")
			}
			return err
		}
		return q.CreateCustomer(ctx, &models.Customer{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("no active account found with the given credentials: %w", apperrors.ErrUnauthorized)
		}
		return "", err
	}
	if !user.IsActive {
		return "", fmt.Errorf("no active account found with the given credentials: %w", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("no active account found with the given credentials: %w", apperrors.ErrUnauthorized)
	}
	return s.IssueToken(user)
}

func (s *AccountService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  user.ID,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.auth.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token issued by IssueToken.
func (s *AccountService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
