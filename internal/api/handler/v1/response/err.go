package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	err error
}

func (e *Err) Error() string {
	return e.Message
}

func (e *Err) Unwrap() error {
	return e.err
}

// RenderErr writes e as JSON and aborts the chain. Server errors are logged
// with their full cause and hidden from the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.Code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.err),
		)
	}

	ctx.AbortWithStatusJSON(e.Code, e)
}

func newErr(code int, message string, err error) *Err {
	return &Err{
		Code:    code,
		Message: message,
		err:     err,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, "wrong email or password", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err.Error(), err)
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	message := fmt.Sprintf("%v with %v %v not found", resource, key, value)
	return newErr(http.StatusNotFound, message, errors.New(message))
}

func ErrNotFoundWith(err error) *Err {
	return newErr(http.StatusNotFound, err.Error(), err)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
}
