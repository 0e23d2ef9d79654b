package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/apierror"
	"backoffice/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/categories", func(c *gin.Context) {
		var req dto.CreateCategoryRequest
		if !bindAndValidate(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	return r
}

func TestBindAndValidate_MalformedBodyIs400(t *testing.T) {
	r := bindRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Corps de requête invalide", body.Detail)
}

func TestBindAndValidate_TagFailureIs422WithFieldMap(t *testing.T) {
	r := bindRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Erreur de validation", body.Detail)
	assert.Equal(t, "min", body.Fields["Name"])
}

func TestBindAndValidate_ValidBodyPasses(t *testing.T) {
	r := bindRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Luminaires"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_RejectsNonUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		if _, ok := parseIDParam(c, "id"); !ok {
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
