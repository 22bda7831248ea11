package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/newsfeed-be/internal/api/handlers"
	"github.com/isdelr/newsfeed-be/internal/auth"
	"github.com/isdelr/newsfeed-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenService, userService services.UserServiceProvider, feedService services.FeedServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	newsHandler := handlers.NewNewsHandler(feedService, userService)

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())
			r.Get("/preferences", userHandler.GetPreferences)
			r.Put("/preferences", userHandler.UpdatePreferences)
		})
	})

	r.Route("/news", func(r chi.Router) {
		r.Use(tokens.Middleware())
		r.Get("/", newsHandler.GetFeed)
		// Static routes first so they are not captured by the {id} pattern
		r.Get("/read", newsHandler.ListRead)
		r.Get("/favorites", newsHandler.ListFavorites)
		r.Post("/{id}/read", newsHandler.MarkRead)
		r.Post("/{id}/favorite", newsHandler.MarkFavorite)
	})

	return r
}
