package handler

import (
	"net/http"
	"strconv"
	"strings"

	"orderapi/internal/middleware"
	"orderapi/internal/usecase"
	"orderapi/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse は400の本文。フィールドごとのエラーを返す。
type ValidationErrorResponse struct {
	Errors []usecase.FieldError `json:"errors"`
}

// ErrorWriter maps usecase errors to HTTP responses.
type ErrorWriter struct {
	log          logger.Logger
	exposeErrors bool
}

func NewErrorWriter(log logger.Logger, exposeErrors bool) *ErrorWriter {
	return &ErrorWriter{log: log, exposeErrors: exposeErrors}
}

// Write は NotFound→404、Validation→400、それ以外→500 に変換する。
func (w *ErrorWriter) Write(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if nf, ok := usecase.AsNotFound(err); ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
	}
	if ve, ok := usecase.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: ve.Errors})
	}

	//500
	w.log.With("request_id", middleware.RequestIDFrom(c)).
		Errorf(err, "%s %s failed", c.Request().Method, c.Request().URL.Path)
	msg := "internal error"
	if w.exposeErrors {
		msg = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// パスの :id を正の整数として読む
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// 作成したリソースのURLを Location に入れて201で返す
func created(c echo.Context, id int64, body interface{}) error {
	base := strings.TrimSuffix(c.Request().URL.Path, "/")
	c.Response().Header().Set(echo.HeaderLocation, base+"/"+strconv.FormatInt(id, 10))
	return c.JSON(http.StatusCreated, body)
}
