package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config contient la configuration globale de l'application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
}

// ServerConfig contient la configuration du serveur web
type ServerConfig struct {
	Port string
}

// DatabaseConfig contient la configuration de la base de données
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// SMTPConfig contient la configuration du service d'email
type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// AuthConfig contient la configuration de l'authentification
type AuthConfig struct {
	// Secret signe les tokens de réinitialisation de mot de passe
	Secret string
	// ResetTokenTTL est la durée de validité d'un token de réinitialisation
	ResetTokenTTL time.Duration
}

// UploadsConfig contient la configuration des fichiers uploadés
type UploadsConfig struct {
	Dir string
}

// Load charge la configuration depuis les variables d'environnement
func Load() (*Config, error) {
	// Charger les variables d'environnement depuis .env si présent
	_ = godotenv.Load()

	// Configuration du serveur
	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	// Configuration de la base de données
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "postgres"
	}

	dbPassword := os.Getenv("DB_PASSWORD")

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "microblog"
	}

	// Secret pour les tokens de réinitialisation, obligatoire
	secret := os.Getenv("APP_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("la variable d'environnement APP_SECRET est obligatoire")
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "web/static/uploads"
	}

	config := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			Name:     dbName,
		},
		SMTP: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      os.Getenv("SMTP_PORT"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			FromEmail: os.Getenv("FROM_EMAIL"),
		},
		Auth: AuthConfig{
			Secret:        secret,
			ResetTokenTTL: 30 * time.Minute,
		},
		Uploads: UploadsConfig{
			Dir: uploadsDir,
		},
	}

	return config, nil
}
