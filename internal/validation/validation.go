// internal/validation/validation.go
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// Règles de validation
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxTitleLength    = 200
	MaxContentLength  = 10000
)

// ValidationError représente une erreur de validation
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors représente une liste d'erreurs de validation
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "aucune erreur de validation"
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidateEmail valide un email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return ValidationError{Field: "email", Message: "l'email est obligatoire"}
	}

	if len(email) > 254 {
		return ValidationError{Field: "email", Message: "l'email est trop long (max 254 caractères)"}
	}

	if containsHTMLTags(email) {
		return ValidationError{Field: "email", Message: "l'email ne peut pas contenir de balises HTML"}
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return ValidationError{Field: "email", Message: "format d'email invalide"}
	}

	return nil
}

// ValidateUsername valide un nom d'utilisateur
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if username == "" {
		return ValidationError{Field: "username", Message: "le nom d'utilisateur est obligatoire"}
	}

	if len(username) < MinUsernameLength {
		return ValidationError{Field: "username", Message: fmt.Sprintf("le nom d'utilisateur doit contenir au moins %d caractères", MinUsernameLength)}
	}

	if len(username) > MaxUsernameLength {
		return ValidationError{Field: "username", Message: fmt.Sprintf("le nom d'utilisateur doit contenir au maximum %d caractères", MaxUsernameLength)}
	}

	// Seuls les caractères alphanumériques et _ sont autorisés
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_]+$`, username)
	if !matched {
		return ValidationError{Field: "username", Message: "le nom d'utilisateur ne peut contenir que des lettres, chiffres et _"}
	}

	return nil
}

// ValidatePassword valide un mot de passe
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "le mot de passe est obligatoire"}
	}

	if len(password) < MinPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("le mot de passe doit contenir au moins %d caractères", MinPasswordLength)}
	}

	if len(password) > MaxPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("le mot de passe doit contenir au maximum %d caractères", MaxPasswordLength)}
	}

	// Vérifier qu'il contient au moins une lettre minuscule, une majuscule, un chiffre
	hasLower := false
	hasUpper := false
	hasDigit := false

	for _, char := range password {
		if unicode.IsLower(char) {
			hasLower = true
		}
		if unicode.IsUpper(char) {
			hasUpper = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}

	if !hasLower {
		return ValidationError{Field: "password", Message: "le mot de passe doit contenir au moins une lettre minuscule"}
	}

	if !hasUpper {
		return ValidationError{Field: "password", Message: "le mot de passe doit contenir au moins une lettre majuscule"}
	}

	if !hasDigit {
		return ValidationError{Field: "password", Message: "le mot de passe doit contenir au moins un chiffre"}
	}

	return nil
}

// ValidatePostTitle valide le titre d'un article
func ValidatePostTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return ValidationError{Field: "title", Message: "le titre est obligatoire"}
	}

	if len(title) > MaxTitleLength {
		return ValidationError{Field: "title", Message: fmt.Sprintf("le titre doit contenir au maximum %d caractères", MaxTitleLength)}
	}

	if containsHTMLTags(title) {
		return ValidationError{Field: "title", Message: "le titre ne peut pas contenir de balises HTML"}
	}

	return nil
}

// ValidatePostContent valide le contenu d'un article
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationError{Field: "content", Message: "le contenu est obligatoire"}
	}

	if len(content) > MaxContentLength {
		return ValidationError{Field: "content", Message: fmt.Sprintf("le contenu doit contenir au maximum %d caractères", MaxContentLength)}
	}

	return nil
}

// SanitizeInput nettoie une chaîne d'entrée
func SanitizeInput(input string) string {
	// Supprimer les espaces en début et fin
	input = strings.TrimSpace(input)

	// Remplacer les caractères de contrôle
	input = regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(input, "")

	// Limiter les espaces multiples
	input = regexp.MustCompile(`\s+`).ReplaceAllString(input, " ")

	return input
}

// containsHTMLTags vérifie si une chaîne contient des balises HTML
func containsHTMLTags(input string) bool {
	htmlTagPattern := `<[^>]*>`
	matched, _ := regexp.MatchString(htmlTagPattern, input)
	return matched
}

// ValidateRegistration valide tous les champs d'inscription
func ValidateRegistration(username, email, password string) ValidationErrors {
	var errors ValidationErrors

	if err := ValidateUsername(username); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidateEmail(email); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidatePassword(password); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	return errors
}

// ValidatePost valide tous les champs d'un article
func ValidatePost(title, content string) ValidationErrors {
	var errors ValidationErrors

	if err := ValidatePostTitle(title); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidatePostContent(content); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	return errors
}
