package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/campus/core"
)

const (
	csrfField     = "_csrf"
	visitorCookie = "campus_visitor"
	visitorCtxKey = "visitor"
)

// csrfMiddleware protects the HTML forms with the token found in the "_csrf" form field.
func csrfMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper:        func(echo.Context) bool { return conf.Server.DisableCSRF },
		TokenLookup:    "form:" + csrfField,
		CookieName:     csrfField,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteStrictMode,
	})
}

// csrfToken returns the token set by csrfMiddleware, empty when CSRF protection is disabled.
func csrfToken(ctx echo.Context) string {
	token, _ := ctx.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

// visitorMiddleware identifies the visitor with a long lived random cookie, setting it when missing.
func visitorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var visitor string
		if c, err := ctx.Cookie(visitorCookie); err == nil {
			if _, err = uuid.Parse(c.Value); err == nil {
				visitor = c.Value
			}
		}
		if visitor == "" {
			visitor = uuid.NewString()
			ctx.SetCookie(&http.Cookie{
				Name:     visitorCookie,
				Value:    visitor,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx.Set(visitorCtxKey, visitor)
		return next(ctx)
	}
}

func contextVisitor(ctx echo.Context) string {
	visitor, _ := ctx.Get(visitorCtxKey).(string)
	return visitor
}
