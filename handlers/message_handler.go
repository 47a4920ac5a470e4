package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/helpers"
	"findaccommodation/httpx"
	"findaccommodation/templates"
)

// MessageSend sends a message from the logged-in visitor to a listing's owner.
func (h *Handlers) MessageSend(c *echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req struct {
		Text string `form:"Text" validate:"required,max=2000"`
	}

	render := func(status int, form templates.FormProps) error {
		props := templates.ApartmentProps{ID: id, Message: form, CanMessage: true}
		return httpx.Render(c, status, templates.Fragment("apartment", "message-form", props))
	}

	if err := httpx.BindAndValidate(c, &req); err != nil {
		return render(http.StatusBadRequest, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	user := httpx.UserFromContext(ctx)
	if user == nil {
		return render(http.StatusUnauthorized, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: map[string]string{httpx.ErrorKey: httpx.MsgErrLogInRequired},
		})
	}

	token, err := helpers.OpenToken(h.TokenKey, user.AccessToken)
	if err != nil {
		slog.Warn("message: unreadable session token", "error", err)
		err = api.ErrUnauthorized
	}

	var apartment *api.Apartment
	if err == nil {
		apartment, err = h.Listings.GetApartment(ctx, id)
	}
	if err == nil {
		_, err = h.Accounts.SendMessage(ctx, token, api.MessageInput{
			Receiver: apartment.User.ID,
			Text:     req.Text,
		})
	}

	if errors.Is(err, api.ErrUnauthorized) {
		// The API token expired or can no longer be opened; the visitor has to log in again.
		_ = httpx.ClearUserSessionData(c)
		return render(http.StatusUnauthorized, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: map[string]string{httpx.ErrorKey: httpx.MsgErrLogInRequired},
		})
	}
	if err != nil {
		return render(httpx.StatusFor(err), templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	if !httpx.IsHtmx(c) {
		return httpx.Redirect(c, "/apartments/"+id)
	}
	return render(http.StatusOK, templates.FormProps{Success: httpx.MsgSuccessMessageSent})
}
