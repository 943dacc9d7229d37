package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/cduffaut/microblog/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken est retourné pour un token expiré, falsifié ou inconnu
var ErrInvalidToken = errors.New("token de réinitialisation invalide ou expiré")

// TokenService émet et vérifie les tokens de réinitialisation de mot de passe.
// Les tokens sont signés (HS256) et portent leur propre expiration :
// rien n'est stocké côté serveur.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	userRepo user.Repository
}

// NewTokenService crée un nouveau service de tokens de réinitialisation
func NewTokenService(secret string, ttl time.Duration, userRepo user.Repository) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		userRepo: userRepo,
	}
}

// Issue émet un token signé pour un utilisateur, valable pendant la durée configurée
func (s *TokenService) Issue(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(u.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("erreur lors de la signature du token: %w", err)
	}

	return signed, nil
}

// Resolve vérifie un token et retourne l'utilisateur qu'il désigne.
// Signature invalide, expiration passée ou utilisateur disparu: ErrInvalidToken.
func (s *TokenService) Resolve(tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Le token peut survivre à son utilisateur
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return u, nil
}
