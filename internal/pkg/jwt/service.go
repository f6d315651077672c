package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is what a session token says about its bearer.
type Identity struct {
	UserID      int64
	Username    string
	Email       string
	IsRecruiter bool
}

type Claims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	IsRecruiter bool   `json:"is_recruiter"`
	TokenType   string `json:"token_type"`

	jwtlib.RegisteredClaims
}

func (c Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username, Email: c.Email, IsRecruiter: c.IsRecruiter}
}

type Service interface {
	GenerateAccessToken(id Identity) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ValidateAccessToken(token string) (Claims, error)
	ValidateRefreshToken(token string) (Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

func (s *HMACService) AccessTTL() time.Duration {
	return s.accessExpiresIn
}

func (s *HMACService) RefreshTTL() time.Duration {
	return s.refreshExpiresIn
}

func (s *HMACService) GenerateAccessToken(id Identity) (string, error) {
	if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(Claims{
		UserID:      id.UserID,
		Username:    id.Username,
		Email:       id.Email,
		IsRecruiter: id.IsRecruiter,
		TokenType:   TokenTypeAccess,
	}, s.accessSecret, s.accessExpiresIn)
}

func (s *HMACService) GenerateRefreshToken(userID int64) (string, error) {
	if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	return s.sign(Claims{UserID: userID, TokenType: TokenTypeRefresh}, s.refreshSecret, s.refreshExpiresIn)
}

func (s *HMACService) ValidateAccessToken(token string) (Claims, error) {
	return s.validate(token, s.accessSecret, TokenTypeAccess)
}

func (s *HMACService) ValidateRefreshToken(token string) (Claims, error) {
	return s.validate(token, s.refreshSecret, TokenTypeRefresh)
}

func (s *HMACService) sign(c Claims, secret []byte, expIn time.Duration) (string, error) {
	now := s.now().UTC()
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
		Subject:   strconv.FormatInt(c.UserID, 10),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) validate(token string, secret []byte, tokenType string) (Claims, error) {
	if token == "" || len(secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != tokenType || c.UserID <= 0 {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
