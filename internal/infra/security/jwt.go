package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domuser "example.com/cafe-admin/internal/domain/user"
	authuc "example.com/cafe-admin/internal/usecase/auth"
)

var ErrInvalidToken = errors.New("invalid token")

type JWTService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

func NewJWTService(secret, issuer string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

type jwtClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateToken(u *domuser.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Role:  string(u.RoleCode),
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ParseToken(token string) (*authuc.Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	role, err := domuser.ParseRoleCode(claims.Role)
	if err != nil {
		return nil, err
	}

	return &authuc.Claims{
		UserID:   claims.Subject,
		RoleCode: role,
		Email:    claims.Email,
		Name:     claims.Name,
	}, nil
}
