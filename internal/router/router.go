package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/document"
	"github.com/studyhive/studyhive/internal/flashcard"
	"github.com/studyhive/studyhive/internal/middlewares"
	"github.com/studyhive/studyhive/internal/quiz"
	"github.com/studyhive/studyhive/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	DocumentHandler  *document.Handler
	QuizHandler      *quiz.Handler
	FlashcardHandler *flashcard.Handler
	UploadDir        string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.SecurityHeaders)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	fileServer(r, "/uploads", http.Dir(cfg.UploadDir))

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthRateLimit())

			r.Post("/register", cfg.UserHandler.Register)
			r.Post("/login", cfg.UserHandler.Login)
		})
		r.Post("/logout", auth.NewHandler().Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Get("/profile", cfg.UserHandler.GetProfile)
			r.Put("/profile", cfg.UserHandler.UpdateProfile)
			r.Post("/change-password", cfg.UserHandler.ChangePassword)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/api/documents", document.Routes(cfg.DocumentHandler))
		r.Mount("/api/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/api/flashcards", flashcard.Routes(cfg.FlashcardHandler))
	})

	return r
}

// fileServer serves static uploads under the given prefix.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("fileServer does not permit URL parameters")
	}

	route := path + "/*"
	r.Get(route, func(w http.ResponseWriter, req *http.Request) {
		// Stored filenames carry owner ids; never render a directory index.
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		prefix := filepath.ToSlash(path) + "/"
		fs := http.StripPrefix(prefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
