// Package auth mints and parses the short-lived tickets used to
// authenticate websocket connections, where HTTP basic credentials cannot
// ride the browser handshake.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidTicket = errors.New("invalid ticket")

type TicketClaims struct {
	jwt.RegisteredClaims
}

func GenerateTicket(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TicketClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseTicket(secret, raw string) (int64, error) {
	token, err := jwt.ParseWithClaims(raw, &TicketClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidTicket
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidTicket
	}
	claims, ok := token.Claims.(*TicketClaims)
	if !ok {
		return 0, ErrInvalidTicket
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidTicket
	}
	return userID, nil
}
