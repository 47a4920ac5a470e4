package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v5"

	"findaccommodation/api"
	"findaccommodation/errorsx"
)

// ErrorKey holds the form-level message in the maps built by FormatErrors.
const ErrorKey = "_Error"

func Render(c *echo.Context, statusCode int, t templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(statusCode)
	return t.Render(c.Request().Context(), c.Response())
}

func Reswap(c *echo.Context, target string) {
	c.Response().Header().Set("HX-Reswap", target)
}

func Retarget(c *echo.Context, target string) {
	c.Response().Header().Set("HX-Retarget", target)
}

func PushURL(c *echo.Context, url string) {
	c.Response().Header().Set("HX-Push-Url", url)
}

func Redirect(c *echo.Context, url string) error {
	if IsHtmx(c) {
		c.Response().Header().Set("HX-Location", url)
		return c.NoContent(http.StatusOK)
	}

	return c.Redirect(http.StatusSeeOther, url)
}

// StatusFor maps an API error to the status the page should be served with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, api.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, api.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, api.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func FormatValues(c *echo.Context) map[string]string {
	values := make(map[string]string)
	form, err := c.FormValues()
	if err != nil {
		return values
	}

	for k, v := range form {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	return values
}

// FormatErrors turns err into per-field messages keyed by form field name.
// Errors that are not about a single field end up under ErrorKey.
func FormatErrors(err error) map[string]string {
	errs := make(map[string]string)

	var rawErrs validator.ValidationErrors
	if !errors.As(err, &rawErrs) {
		if fields := api.FieldErrors(err); len(fields) > 0 {
			for field, msg := range fields {
				errs[fieldName(field)] = msg
			}
			return errs
		}

		switch {
		case errors.Is(err, api.ErrUnauthorized):
			errs[ErrorKey] = MsgErrBadCredentials
		case errorsx.IsNotFoundError(err):
			errs[ErrorKey] = MsgErrNotFound
		case errorsx.IsUniqueConstraintError(err):
			errs[ErrorKey] = MsgErrDuplicate
		case errors.Is(err, api.ErrUnavailable):
			errs[ErrorKey] = MsgErrUnavailable
		case errors.Is(err, api.ErrBadRequest):
			errs[ErrorKey] = apiMessage(err, MsgErrBadRequest)
		default:
			slog.Error(err.Error())
			errs[ErrorKey] = MsgErrGeneric
		}
		return errs
	}

	for _, err := range rawErrs {
		field := err.Field()

		switch err.Tag() {
		case "required":
			errs[field] = MsgErrRequired
		case "min":
			errs[field] = fmt.Sprintf(MsgErrTooShort, err.Param())
		case "max":
			errs[field] = fmt.Sprintf(MsgErrTooLong, err.Param())
		case "email":
			errs[field] = MsgErrInvalidEmail
		case "eqfield":
			errs[field] = MsgErrMismatch
		case "alphanum_mixed":
			errs[field] = MsgErrAlphanumMixed
		default:
			errs[field] = MsgErrInvalid
		}
	}

	return errs
}

// apiFields maps the API's snake_case payload keys to form field names.
var apiFields = map[string]string{
	"username": "Username",
	"email":    "Email",
	"password": "Password",
	"text":     "Text",
	"receiver": "Text",
}

func fieldName(apiField string) string {
	if name, ok := apiFields[apiField]; ok {
		return name
	}
	return ErrorKey
}

func apiMessage(err error, fallback string) string {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	return fallback
}
