package app

import (
	"github.com/labstack/echo/v5"

	"findaccommodation/handlers"
	middlewarex "findaccommodation/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handlers.Handlers) {
	g := e.Group("")
	g.Use(middlewarex.WithAuthAny)
	g.GET("/", h.Home)
	g.GET("/featured", h.Featured)
	g.GET("/search", h.SearchSubmit)
	g.GET("/search/:option", h.Search)
	g.GET("/apartments/featured", h.Featured)
	g.GET("/apartments/:id", h.Apartment)
	g.GET("/apartments/:id/details", h.ApartmentDetails)
	g.GET("/locations/cities", h.Cities)
	g.GET("/contact", h.ContactShow)
	g.POST("/contact", h.ContactSend)

	af := e.Group("")
	af.Use(middlewarex.WithAuthForbidden)
	af.GET("/sign-up", h.UserShowSignUp)
	af.POST("/sign-up", h.UserSignUp)
	af.GET("/log-in", h.UserShowLogIn)
	af.POST("/log-in", h.UserLogIn)

	ar := e.Group("")
	ar.Use(middlewarex.WithAuthRequired)
	ar.POST("/log-out", h.UserLogOut)
	ar.POST("/apartments/:id/messages", h.MessageSend)
}
