package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken signs an HS256 session token for userID that expires
// after tokenDuration. role is recorded for display only.
func GenerateSessionToken(issuer string, userID int64, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("session token needs an issuer, a duration and a sign key")
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing session token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseSessionToken accepts only HS256 tokens signed with
// tokenSignKey, issued by tokenIssuer, carrying an expiry that has not passed
// and a numeric subject.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims models.SessionClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("invalid session token: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Claims: claims, SignedString: tokenString, UserID: userID}, nil
}
