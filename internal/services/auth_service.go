package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nivaldeir/erp-easy-remote/internal/caching"
	"github.com/Nivaldeir/erp-easy-remote/internal/models"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
)

// AuthService handles registration, login and JWT token management.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	jwks       *keyfunc.JWKS
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates the auth service. jwksURL is optional; when set,
// tokens issued by an external identity provider are also accepted.
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret, jwksURL string) AuthService {
	svc := &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   15 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
	}

	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval: time.Hour,
			RefreshErrorHandler: func(err error) {
				log.Printf("WARN: JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			log.Printf("WARN: JWKS fetch failed, external tokens disabled: %v", err)
		} else {
			svc.jwks = jwks
		}
	}

	return svc
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	key := fmt.Sprintf("erp:refresh:%s", hashToken(refreshToken))
	userIDStr, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return nil, err
	}
	if userIDStr == "" {
		return nil, fmt.Errorf("invalid refresh token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	// Rotate: the presented token is single use.
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		log.Printf("Failed to delete refresh token: %v", err)
	}

	return s.issueTokens(ctx, userID)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); ok {
			return s.jwtSecret, nil
		}
		if s.jwks != nil {
			return s.jwks.Keyfunc(t)
		}
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("token validation failed: %v", err)
	}
	if !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject in token")
	}
	return userID, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	key := fmt.Sprintf("erp:refresh:%s", hashToken(refreshToken))
	return s.cacheSvc.Delete(ctx, key)
}

func (s *authService) issueTokens(ctx context.Context, userID uuid.UUID) (*models.TokenPair, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "erp-easy-remote",
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %v", err)
	}

	refreshToken := generateSecureToken()
	key := fmt.Sprintf("erp:refresh:%s", hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, key, userID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %v", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenTTL.Seconds()),
	}, nil
}

func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
