package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every operation. Queries are public; mutations rely on
// the resolved principal, which the services deny when absent.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.resolvePrincipal)

		// Article endpoints
		r.Get("/articles", handlers.articleHandler.listArticles())
		r.Get("/articles/search", handlers.articleHandler.searchArticles())
		r.Get("/article/{articleID}", handlers.articleHandler.getArticle())
		r.Get("/article/slug/{slug}", handlers.articleHandler.getArticleBySlug())
		r.Post("/article", handlers.articleHandler.createArticle())
		r.Put("/article/{articleID}", handlers.articleHandler.updateArticle())
		r.Delete("/article/{articleID}", handlers.articleHandler.deleteArticle())

		// Category endpoints
		r.Get("/categories", handlers.categoryHandler.getAllCategories())
		r.Get("/category/{categoryID}", handlers.categoryHandler.getCategory())
		r.Post("/category", handlers.categoryHandler.createCategory())
		r.Put("/category/{categoryID}", handlers.categoryHandler.updateCategory())
		r.Delete("/category/{categoryID}", handlers.categoryHandler.deleteCategory())

		// User endpoints
		r.Post("/register", handlers.userHandler.register())
		r.Post("/login", handlers.userHandler.login())
		r.Get("/user/{userID}", handlers.userHandler.getUser())
		r.Put("/user/{userID}", handlers.userHandler.updateUser())
		r.Delete("/user/{userID}", handlers.userHandler.deleteUser())
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
}
