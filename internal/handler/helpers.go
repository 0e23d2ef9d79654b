package handler

import (
	"errors"
	"net/http"
	"reflect"

	"backoffice/internal/apierror"
	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal fields validate as their string form so tags like
	// "gt=0" apply to the numeric value, not the struct internals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate binds the JSON body into req and runs struct validation.
// A body that does not parse is a 400; a body that parses but fails the
// validation tags is a 422 with the per-field map. On failure it writes the
// response itself and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Corps de requête invalide"))
		return false
	}
	return validateStruct(c, req)
}

// validateStruct runs the validation tags on req and writes the 422 field
// map on failure.
func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseIDParam reads the ":id" path segment as a UUID. On failure it writes
// the 400 response itself and returns false.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Identifiant invalide"))
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError translates service-layer errors into HTTP responses.
// Unknown errors become an opaque 500; the real cause only goes to the log.
func respondServiceError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, apierror.NewConflict(conflictErr.Msg, conflictErr.Count))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("service error")
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur interne du serveur"))
	}
}
