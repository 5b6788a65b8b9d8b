package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kheyfetsdan/wordsaveriii/internal/api"
	apiMiddleware "github.com/kheyfetsdan/wordsaveriii/internal/api/middleware"
	"github.com/kheyfetsdan/wordsaveriii/internal/api/shared"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, app.logger)
	wordHandler := api.NewWordHandler(app.wordService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Post("/registration", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/save-word", wordHandler.SaveWord)
		r.Post("/get-word", wordHandler.GetRandomWord)
		r.Post("/get-words-by-user", wordHandler.ListWords)
		r.Post("/quiz-word", wordHandler.QuizWord)

		r.Get("/word/{id}", wordHandler.GetWord)
		r.Put("/word", wordHandler.UpdateWord)
		r.Delete("/delete-word/{id}", wordHandler.DeleteWord)
		r.Put("/word-stat/{id}", wordHandler.UpdateWordStat)

		r.Get("/words/count", wordHandler.CountWords)
		r.Delete("/words", wordHandler.ClearWords)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.StatusResponse{Status: "ok"})
	})

	return r
}
