package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nurpe/supply-agreements/internal/model"
)

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

type claims struct {
	UserID         int64  `json:"user_id"`
	OrganizationID int64  `json:"org_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// Parse validates an access token and extracts the caller principal.
func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid token")
	}
	if c.UserID == 0 {
		return model.Principal{}, fmt.Errorf("token has no user_id claim")
	}
	return model.Principal{
		UserID:         c.UserID,
		OrganizationID: c.OrganizationID,
		Role:           c.Role,
	}, nil
}
