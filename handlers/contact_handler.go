package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v5"

	"findaccommodation/httpx"
	"findaccommodation/jobs"
	"findaccommodation/templates"
)

func (h *Handlers) ContactShow(c *echo.Context) error {
	return httpx.Render(c, http.StatusOK, templates.Page("contact", "Contact us", templates.FormProps{}))
}

// ContactSend queues the submission for the mail workers.
func (h *Handlers) ContactSend(c *echo.Context) error {
	var req struct {
		Email   string `form:"Email" validate:"required,email,max=255"`
		Message string `form:"Message" validate:"required,min=16,max=2048"`
	}

	render := func(status int, props templates.FormProps) error {
		return renderForm(c, status, "contact", "contact-form", "Contact us", props)
	}

	err := httpx.BindAndValidate(c, &req)
	if err != nil {
		return render(http.StatusBadRequest, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	if h.Jobs == nil {
		return render(http.StatusServiceUnavailable, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: map[string]string{httpx.ErrorKey: httpx.MsgErrWorkersUnavailable},
		})
	}

	payload, err := json.Marshal(jobs.ContactEmailPayload{Email: req.Email, Message: req.Message})
	if err == nil {
		_, err = h.Jobs.CreateJob(c.Request().Context(), jobs.ContactEmailType, payload)
	}
	if err != nil {
		return render(http.StatusServiceUnavailable, templates.FormProps{
			Values: httpx.FormatValues(c),
			Errors: httpx.FormatErrors(err),
		})
	}

	return render(http.StatusOK, templates.FormProps{Success: httpx.MsgSuccessContactSent})
}
