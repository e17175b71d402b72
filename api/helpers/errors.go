package helpers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core"
	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
)

// AppHTTPErrorHandler maps application errors to HTTP responses: validation
// failures to 400, missing records to 404, schedule/capacity/reference
// conflicts to 409 and anything else to 500.
func AppHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message interface{}

	switch err := errors.Cause(err).(type) {
	case *echo.HTTPError:
		if err.Internal != nil {
			if herr, ok := err.Internal.(*echo.HTTPError); ok {
				err = herr
			}
		}
		code = err.Code
		message = err.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string)
		for _, vErr := range err {
			fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
		}
		code = http.StatusBadRequest
		message = fldErrs
	case *core.ValidationError:
		if err.Fields != nil {
			fldErrs := make(map[string]string)
			for _, fErr := range err.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			message = fldErrs
		} else {
			message = err.Error()
		}
		code = http.StatusBadRequest
	default:
		switch {
		case isNotFound(err):
			code = http.StatusNotFound
			message = err.Error()
		case isConflict(err):
			code = http.StatusConflict
			message = err.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)
		}
	}

	if c.Echo().Debug {
		message = err.Error()
	} else if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	// Send response
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead { // Issue #608
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, message)
		}
		if code >= http.StatusInternalServerError {
			c.Echo().Logger.Error(err)
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, student.ErrNotFound) ||
		errors.Is(err, teacher.ErrNotFound) ||
		errors.Is(err, class.ErrNotFound) ||
		errors.Is(err, enrollment.ErrNotFound) ||
		errors.Is(err, enrollment.ErrNotEnrolled)
}

func isConflict(err error) bool {
	return errors.Is(err, class.ErrFixedClassConflict) ||
		errors.Is(err, class.ErrOneOffClassConflict) ||
		errors.Is(err, enrollment.ErrClassFull) ||
		errors.Is(err, enrollment.ErrAlreadyEnrolled) ||
		errors.Is(err, teacher.ErrHasClasses)
}
