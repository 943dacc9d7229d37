package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/cduffaut/microblog/internal/auth"
	"github.com/cduffaut/microblog/internal/config"
	"github.com/cduffaut/microblog/internal/database"
	"github.com/cduffaut/microblog/internal/email"
	"github.com/cduffaut/microblog/internal/middleware"
	"github.com/cduffaut/microblog/internal/post"
	"github.com/cduffaut/microblog/internal/session"
	"github.com/cduffaut/microblog/internal/user"
	"goji.io"
	"goji.io/pat"
)

func main() {
	// charger la config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erreur lors du chargement de la configuration: %v", err)
	}

	// initialiser la DB
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Erreur lors de la connexion à la base de données: %v", err)
	}
	defer db.Close()

	// exec les migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Erreur lors de l'exécution des migrations: %v", err)
	}

	// dossier d'uploads pour les photos de profil
	if err := os.MkdirAll(cfg.Uploads.Dir, 0755); err != nil {
		log.Fatalf("Erreur lors de la création du dossier d'uploads: %v", err)
	}

	// init les repos
	userRepo := user.NewPostgresRepository(db)
	postRepo := post.NewPostgresRepository(db)

	// init les services
	emailService := email.NewService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.FromEmail,
	)

	baseURL := fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	tokenService := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.ResetTokenTTL, userRepo)
	authService := auth.NewService(userRepo, tokenService, emailService, baseURL)
	sessionManager := session.NewManager("microblog_session")
	accountService := user.NewAccountService(userRepo, cfg.Uploads.Dir)
	postService := post.NewService(postRepo)

	// init les handlers
	authHandlers := auth.NewHandlers(authService, sessionManager)
	accountHandlers := user.NewAccountHandlers(accountService)
	postHandlers := post.NewHandlers(postService, accountService)

	// init les middlewares
	authMiddleware := middleware.NewAuthMiddleware(sessionManager)

	// creation multiplexeur goji
	mux := goji.NewMux()
	mux.Use(middleware.CSRFMiddleware)

	// route fichiers statiques
	fileServer := http.FileServer(http.Dir("web/static"))
	mux.Handle(pat.Get("/static/*"), http.StripPrefix("/static/", fileServer))
	// route pour les photos de profil
	uploadsServer := http.FileServer(http.Dir(cfg.Uploads.Dir))
	mux.Handle(pat.Get("/uploads/*"), http.StripPrefix("/uploads/", uploadsServer))

	// page d'auth
	mux.HandleFunc(pat.Get("/register"), authHandlers.RegisterPageHandler)
	mux.HandleFunc(pat.Get("/login"), authHandlers.LoginPageHandler)
	mux.HandleFunc(pat.Get("/forgot-password"), authHandlers.ForgotPasswordPageHandler)
	mux.HandleFunc(pat.Get("/reset-password"), authHandlers.ResetPasswordPageHandler)

	// API d'auth
	mux.HandleFunc(pat.Post("/api/register"), authHandlers.RegisterHandler)
	mux.HandleFunc(pat.Post("/api/login"), authHandlers.LoginHandler)
	mux.HandleFunc(pat.Get("/logout"), authHandlers.LogoutHandler)
	mux.HandleFunc(pat.Post("/api/forgot-password"), authHandlers.ForgotPasswordHandler)
	mux.HandleFunc(pat.Post("/api/reset-password"), authHandlers.ResetPasswordHandler)

	// lecture publique des articles
	mux.HandleFunc(pat.Get("/"), postHandlers.HomePageHandler)
	mux.HandleFunc(pat.Get("/api/posts"), postHandlers.ListPostsHandler)
	mux.HandleFunc(pat.Get("/api/posts/:postID"), postHandlers.GetPostHandler)
	mux.HandleFunc(pat.Get("/api/users/:username/posts"), postHandlers.ListUserPostsHandler)

	// routes protegees
	protectedMux := goji.SubMux()
	protectedMux.Use(authMiddleware.RequireAuth)

	// routes compte
	protectedMux.HandleFunc(pat.Get("/account"), accountHandlers.AccountPageHandler)
	protectedMux.HandleFunc(pat.Get("/api/account"), accountHandlers.GetAccountHandler)
	protectedMux.HandleFunc(pat.Put("/api/account"), accountHandlers.UpdateAccountHandler)
	protectedMux.HandleFunc(pat.Post("/api/account/picture"), accountHandlers.UploadProfilePictureHandler)

	// mutations d'articles
	protectedMux.HandleFunc(pat.Post("/api/posts"), postHandlers.CreatePostHandler)
	protectedMux.HandleFunc(pat.Put("/api/posts/:postID"), postHandlers.UpdatePostHandler)
	protectedMux.HandleFunc(pat.Delete("/api/posts/:postID"), postHandlers.DeletePostHandler)

	// rep vide pour fav icon pour eviter erreur
	mux.HandleFunc(pat.Get("/favicon.ico"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		w.WriteHeader(http.StatusNoContent) // 204 No Content
	})

	// add les routes protegees au mux principal
	mux.Handle(pat.New("/*"), protectedMux)

	// start le serv
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Serveur démarré sur http://localhost%s\n", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, mux))
}
