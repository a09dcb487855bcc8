package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ads-manager-server/internal/observability"
	"ads-manager-server/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrExpiredToken       = errors.New("token expired")
	ErrParseJWTToken      = errors.New("failed to parse jwt token")
)

// OperatorStore defines the persistence operations required by AuthProcessor.
type OperatorStore interface {
	GetOperatorByEmail(ctx context.Context, email string) (store.Operator, error)
}

type AuthProcessor struct {
	store     OperatorStore
	jwtSecret string
	logger    *observability.Logger
}

func New(operatorStore OperatorStore, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     operatorStore,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// LoggedInOperator is returned to the UI after a successful login.
type LoggedInOperator struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Login verifies an operator's password and issues a session token. Lookup
// failures and password mismatches collapse into one error so the response
// does not reveal which half was wrong.
func (p AuthProcessor) Login(ctx context.Context, email, password string) (LoggedInOperator, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	operator, err := p.store.GetOperatorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrOperatorNotFound) {
			return LoggedInOperator{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to load operator", err)
		return LoggedInOperator{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.HashedPassword), []byte(password)); err != nil {
		return LoggedInOperator{}, ErrInvalidCredentials
	}

	token, err := p.generateJWTToken(ctx, operator)
	if err != nil {
		return LoggedInOperator{}, err
	}
	return LoggedInOperator{
		Email: operator.Email,
		Name:  operator.Name,
		Token: token,
	}, nil
}

func (p AuthProcessor) generateJWTToken(ctx context.Context, operator store.Operator) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour) // Token valid for 24 hours
	claims := jwt.MapClaims{
		"sub": operator.Email,
		"iss": "ads-manager-server",
		"aud": "ads-manager-server",
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.jwtSecret))
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", err
	}
	return tokenString, nil
}

// ValidateJWTToken parses a session token and returns the operator email it
// was issued for.
func (p AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		p.logger.Error(ctx, "failed to parse token", err)
		return "", ErrParseJWTToken
	}
	if !t.Valid {
		return "", ErrInvalidJWTToken
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return "", ErrInvalidJWTToken
	}
	return subject, nil
}
