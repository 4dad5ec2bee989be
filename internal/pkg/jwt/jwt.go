package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTypeAccess is the "type" claim of tokens accepted by the API.
const TokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid token")

type Service interface {
	GenerateAccessToken(subject string, role wizard.RoleType) (token string, expiresAt int64, err error)
	// RoleFromClaims reads the wizard role hint out of verified claims
	RoleFromClaims(claims map[string]interface{}) (wizard.RoleType, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessExpiration time.Duration
	tokenAuth        *jwtauth.JWTAuth
	now              func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessExpiration time.Duration) Service {
	return &JWTService{
		accessExpiration: accessExpiration,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:              time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(subject string, role wizard.RoleType) (token string, expiresAt int64, err error) {
	if !role.Valid() {
		return "", 0, wizard.ErrInvalidRoleType
	}
	expiresAt = j.now().Add(j.accessExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"role": string(role),
		"type": TokenTypeAccess,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RoleFromClaims(claims map[string]interface{}) (wizard.RoleType, error) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != TokenTypeAccess {
		return "", ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return wizard.ResolveRole(role), nil
}
