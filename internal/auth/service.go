package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/cduffaut/microblog/internal/user"
	"github.com/cduffaut/microblog/internal/validation"
)

// ErrInvalidCredentials est retourné pour un login avec de mauvais identifiants
var ErrInvalidCredentials = errors.New("nom d'utilisateur ou mot de passe incorrect")

// EmailSender envoie les emails de réinitialisation de mot de passe
type EmailSender interface {
	SendPasswordResetEmail(to, username, resetLink string) error
}

// serv d'authentification
type Service struct {
	userRepo     user.Repository
	tokenService *TokenService
	emailService EmailSender
	baseURL      string
}

// cree un nouveau service d'auth
func NewService(userRepo user.Repository, tokenService *TokenService, emailService EmailSender, baseURL string) *Service {
	return &Service{
		userRepo:     userRepo,
		tokenService: tokenService,
		emailService: emailService,
		baseURL:      baseURL,
	}
}

// data pour l'inscription
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// data pour la connexion
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// data pour la recup de mdp
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// data pour la reinitialisation de mdp
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// inscrit un nouv user
func (s *Service) Register(req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	// valider les champs avant toute requete
	if errs := validation.ValidateRegistration(req.Username, req.Email, req.Password); len(errs) > 0 {
		return nil, errs
	}

	// verif si le user existe deja
	existingUser, err := s.userRepo.GetByUsername(req.Username)
	if err == nil && existingUser != nil {
		return nil, validation.ValidationError{Field: "username", Message: "ce nom d'utilisateur existe déjà"}
	}

	existingUser, err = s.userRepo.GetByEmail(req.Email)
	if err == nil && existingUser != nil {
		return nil, validation.ValidationError{Field: "email", Message: "cet email est déjà utilisé"}
	}

	// hash du mdp
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du hachage du mot de passe: %w", err)
	}

	newUser := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}

	// save user
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, fmt.Errorf("erreur lors de la création de l'utilisateur: %w", err)
	}

	return newUser, nil
}

// connecte un user
func (s *Service) Login(req LoginRequest) (*models.User, error) {
	u, err := s.userRepo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// verif le mdp
	if !CheckPassword(req.Password, u.Password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// envoie un email pour reinit le mdp
func (s *Service) ForgotPassword(req ForgotPasswordRequest) error {
	u, err := s.userRepo.GetByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		// ne pas reveal si mail existe pour des raisons de secu
		return nil
	}

	// emettre un token signe, rien n'est persiste
	resetToken, err := s.tokenService.Issue(u)
	if err != nil {
		return fmt.Errorf("erreur lors de la génération du token: %w", err)
	}

	// send mail de reinit; un echec d'envoi n'annule rien
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, resetToken)
	if err := s.emailService.SendPasswordResetEmail(u.Email, u.Username, resetLink); err != nil {
		log.Printf("Erreur lors de l'envoi de l'email de réinitialisation: %v", err)
	}

	return nil
}

// reinit le mdp d'un user
func (s *Service) ResetPassword(req ResetPasswordRequest) error {
	u, err := s.tokenService.Resolve(req.Token)
	if err != nil {
		return err
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return err
	}

	// hash du nouveau mdp
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("erreur lors du hachage du mot de passe: %w", err)
	}

	// m à j le mdp
	if err := s.userRepo.UpdatePassword(u.ID, hashedPassword); err != nil {
		return fmt.Errorf("erreur lors de la mise à jour du mot de passe: %w", err)
	}

	return nil
}
