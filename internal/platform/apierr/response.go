package apierr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/requestid"
)

type ErrorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Body(code Code, msg string) ErrorDTO {
	var e ErrorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func BodyFrom(err error) ErrorDTO {
	var api *APIError
	if errors.As(err, &api) {
		return Body(api.Code, api.Message)
	}
	return Body(CodeInternal, "internal error")
}

// Respond はエラーを JSON で返す。5xx はログにも残す。
func Respond(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= 500 {
		log.Printf("[ERROR] %s %s request_id=%s: %v", c.Request.Method, c.FullPath(), requestid.Get(c), err)
	}
	c.AbortWithStatusJSON(status, BodyFrom(err))
}

// BadRequest は JSON バインド失敗など handler 側で検出した入力エラーを返す。
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body(CodeInvalidArgument, msg))
}
