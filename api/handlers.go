package api

import (
	"github.com/rpupo63/newsroom-backend/services"
)

type routeHandlers struct {
	articleHandler  articleHandler
	categoryHandler categoryHandler
	userHandler     userHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies) *routeHandlers {
	return &routeHandlers{
		articleHandler:  newArticleHandler(deps.Articles),
		categoryHandler: newCategoryHandler(deps.Categories),
		userHandler:     newUserHandler(deps.Users),
	}
}

// Dependencies carries the wired services the API exposes.
type Dependencies struct {
	Articles   *services.ArticleService
	Categories *services.CategoryService
	Users      *services.UserService
	UserStore  services.UserStore
}
