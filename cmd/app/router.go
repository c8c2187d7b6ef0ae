package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(app.recoverPanic, app.logRequest, app.authenticate)

	router.NotFound(app.notFoundErrorResponse)
	router.MethodNotAllowed(app.methodNotAllowedErrorResponse)

	router.Get("/healthcheck", app.healthcheckHandler)

	// user service
	router.Post("/signup", app.signupHandler)
	router.Post("/login", app.loginHandler)

	router.Group(func(r chi.Router) {
		r.Use(app.requireAuthUser)

		// blog service
		r.Get("/blogs", app.getAllBlogsHandler)
		r.Post("/blog", app.createBlogHandler)
		r.Get("/blog/comments/{id}", app.getBlogCommentsHandler)
		r.Get("/blog/{id}", app.getBlogHandler)
		r.Put("/blog/{id}", app.updateBlogHandler)
		r.Delete("/blog/{id}", app.deleteBlogHandler)

		// comment service
		r.Post("/comment", app.createCommentHandler)
		r.Put("/comment/{id}", app.updateCommentHandler)
		r.Delete("/comment/{id}", app.deleteCommentHandler)

		// user service
		r.Get("/user/blogs", app.getUserBlogsHandler)
		r.Get("/user/comments", app.getUserCommentsHandler)
		r.Put("/user", app.updateUserHandler)
		r.Delete("/user", app.deleteUserHandler)
	})

	return router
}
