package user

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/cduffaut/microblog/internal/security"
	"github.com/cduffaut/microblog/internal/validation"
	"github.com/google/uuid"
)

// AccountService fournit les services liés au compte utilisateur
type AccountService struct {
	userRepo   Repository
	uploadsDir string
}

// NewAccountService crée un nouveau service de compte
func NewAccountService(userRepo Repository, uploadsDir string) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		uploadsDir: uploadsDir,
	}
}

// GetByID récupère un utilisateur par son ID
func (s *AccountService) GetByID(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetByUsername récupère un utilisateur par son nom d'utilisateur
func (s *AccountService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// UpdateAccount met à jour le nom d'utilisateur et l'email d'un compte.
// Les deux champs sont validés et vérifiés indépendamment l'un de l'autre.
func (s *AccountService) UpdateAccount(userID int, username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	// verif que le nom d'utilisateur n'est pas deja pris par un autre user
	usernameExists, err := s.userRepo.CheckUsernameExists(username, userID)
	if err != nil {
		return fmt.Errorf("erreur lors de la vérification du nom d'utilisateur: %w", err)
	}

	if usernameExists {
		return validation.ValidationError{Field: "username", Message: "ce nom d'utilisateur existe déjà"}
	}

	// verif que le mail n'est pas deja utilise par un autre user
	emailExists, err := s.userRepo.CheckEmailExists(email, userID)
	if err != nil {
		return fmt.Errorf("erreur lors de la vérification de l'email: %w", err)
	}

	if emailExists {
		return validation.ValidationError{Field: "email", Message: "cette adresse email est déjà utilisée"}
	}

	if err := s.userRepo.UpdateAccountInfo(userID, username, email); err != nil {
		return fmt.Errorf("erreur lors de la mise à jour du compte: %w", err)
	}

	return nil
}

// UpdateProfilePicture valide, traite et enregistre une nouvelle photo de profil.
// L'ancienne photo est supprimée du disque.
func (s *AccountService) UpdateProfilePicture(userID int, fileHeader *multipart.FileHeader, fileData []byte) (string, error) {
	existingUser, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", fmt.Errorf("erreur lors de la récupération de l'utilisateur: %w", err)
	}

	// Valider et réencoder l'image (orientation EXIF, métadonnées, vignette)
	processedData, err := security.ProcessProfilePicture(fileHeader, fileData)
	if err != nil {
		return "", err
	}

	// Nom de fichier opaque, l'extension d'origine est conservée
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("erreur lors de la création du dossier d'uploads: %w", err)
	}

	path := filepath.Join(s.uploadsDir, filename)
	if err := os.WriteFile(path, processedData, 0644); err != nil {
		return "", fmt.Errorf("erreur lors de l'enregistrement de l'image: %w", err)
	}

	if err := s.userRepo.UpdateProfileImage(userID, filename); err != nil {
		// Ne pas garder un fichier orphelin si la mise à jour echoue
		os.Remove(path)
		return "", fmt.Errorf("erreur lors de la mise à jour de la photo de profil: %w", err)
	}

	// Supprimer l'ancienne photo si elle existe
	if existingUser.ProfileImage != nil && *existingUser.ProfileImage != "" {
		oldPath := filepath.Join(s.uploadsDir, filepath.Base(*existingUser.ProfileImage))
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Impossible de supprimer l'ancienne photo %s: %v\n", oldPath, err)
		}
	}

	return filename, nil
}
