package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const issuer = "helpdesk"

// Claims carries the user id and role. The role is a hint for clients only;
// requests re-read the user row before authorizing.
type Claims struct {
	UserID    string          `json:"uid"`
	Role      permission.Role `json:"role"`
	TokenType TokenType       `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

func (s *JWTService) Generate(userID string, role permission.Role) (*usecases.TokenPair, error) {
	now := biztime.NowUTC()

	access, err := s.sign(userID, role, TokenTypeAccess, now, time.Duration(s.accessExpMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(userID, role, TokenTypeRefresh, now, time.Duration(s.refreshExpDays)*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &usecases.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) sign(userID string, role permission.Role, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// VerifyAccess rejects refresh tokens presented as bearer tokens.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, errors.New("token is not an access token")
	}
	return claims, nil
}

func (s *JWTService) ParseRefresh(refreshToken string) (string, error) {
	claims, err := s.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", errors.New("token is not a refresh token")
	}
	return claims.UserID, nil
}

func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
