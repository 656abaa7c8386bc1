package router

import (
	"net/http"
)

// Router registers handlers and middlewares on a multiplexer.
type Router interface {
	http.Handler

	Use(middleware func(next http.Handler) http.Handler)
	Get(pattern string, handlerFunc http.HandlerFunc, middlewares ...func(next http.Handler) http.Handler)
	Handle(pattern string, handler http.Handler, middlewares ...func(next http.Handler) http.Handler)
}
