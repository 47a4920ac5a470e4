package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/helpers"
	"findaccommodation/httpx"
	"findaccommodation/templates"
)

func renderForm(c *echo.Context, status int, page, form, title string, props templates.FormProps) error {
	if httpx.IsHtmx(c) {
		return httpx.Render(c, status, templates.Fragment(page, form, props))
	}
	return httpx.Render(c, status, templates.Page(page, title, props))
}

func (h *Handlers) UserShowSignUp(c *echo.Context) error {
	return httpx.Render(c, http.StatusOK, templates.Page("sign-up", "Sign up", templates.FormProps{}))
}

func (h *Handlers) UserSignUp(c *echo.Context) error {
	var req struct {
		Username        string `form:"Username" validate:"required,max=150"`
		Email           string `form:"Email" validate:"required,email,max=255"`
		Password        string `form:"Password" validate:"required,min=8,max=255,alphanum_mixed"`
		PasswordConfirm string `form:"PasswordConfirm" validate:"required,eqfield=Password"`
	}

	fail := func(status int, err error) error {
		return renderForm(c, status, "sign-up", "sign-up-form", "Sign up", templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	if err := httpx.BindAndValidate(c, &req); err != nil {
		return fail(http.StatusBadRequest, err)
	}

	_, err := h.Accounts.Register(c.Request().Context(), api.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return fail(httpx.StatusFor(err), err)
	}

	return httpx.Redirect(c, "/log-in?registered=1")
}

func (h *Handlers) UserShowLogIn(c *echo.Context) error {
	props := templates.FormProps{
		Values: map[string]string{"Next": safeNext(c.QueryParam("next"))},
	}
	if c.QueryParam("registered") != "" {
		props.Success = httpx.MsgSuccessUserCreated
	}

	return httpx.Render(c, http.StatusOK, templates.Page("log-in", "Log in", props))
}

func (h *Handlers) UserLogIn(c *echo.Context) error {
	var req struct {
		Email    string `form:"Email" validate:"required,email,max=255"`
		Password string `form:"Password" validate:"required,max=255"`
		Next     string `form:"Next"`
	}

	fail := func(status int, err error) error {
		return renderForm(c, status, "log-in", "log-in-form", "Log in", templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	if err := httpx.BindAndValidate(c, &req); err != nil {
		return fail(http.StatusBadRequest, err)
	}

	email := strings.TrimSpace(req.Email)
	sess, err := h.Accounts.Login(c.Request().Context(), api.LoginInput{Email: email, Password: req.Password})
	if err != nil {
		return fail(httpx.StatusFor(err), err)
	}

	sealed, err := helpers.SealToken(h.TokenKey, sess.AccessToken)
	if err == nil {
		err = httpx.SetUserSessionData(c, &httpx.UserSessionData{
			Email:       email,
			AccessToken: sealed,
		})
	}
	if err != nil {
		return fail(http.StatusInternalServerError, err)
	}

	return httpx.Redirect(c, safeNext(req.Next))
}

func (h *Handlers) UserLogOut(c *echo.Context) error {
	_ = httpx.ClearUserSessionData(c)

	return httpx.Redirect(c, "/")
}

// safeNext keeps post log-in redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
