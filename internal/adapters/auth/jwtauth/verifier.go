package jwtauth

import (
	"context"
	"errors"
	"strings"

	"vetco-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretRequired = errors.New("jwtauth: secret required")
	ErrTokenEmpty     = errors.New("jwtauth: token is empty")
	ErrInvalidToken   = errors.New("jwtauth: invalid token")
)

// Verifier implementa auth.AuthVerifier validando tokens HS256 emitidos
// por el servicio de identidad. Acá solo verificamos; la emisión vive afuera.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	tok, err := v.parser.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, err
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("jwtauth: sub missing")
	}

	// "kind" distingue user/vet; tokens viejos sin kind se asumen user.
	kind := auth.ActorUser
	if k, _ := mc["kind"].(string); strings.EqualFold(k, string(auth.ActorVet)) {
		kind = auth.ActorVet
	}

	email, _ := mc["email"].(string)

	return auth.Claims{
		ActorID: sub,
		Kind:    kind,
		Email:   strings.TrimSpace(email),
	}, nil
}
