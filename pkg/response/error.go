package response

import (
	"EduForum/pkg/log"
	"EduForum/pkg/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BizError 业务错误。Code 为 HTTP 状态码，网络层失败时为 0
type BizError struct {
	Code int
	Msg  string
	Err  error
}

func (e *BizError) Error() string {
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.Err
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Wrap 保留底层错误，对外只暴露 msg
func Wrap(err error, code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// StatusOf 取错误对应的 HTTP 状态码
func StatusOf(err error) int {
	var be *BizError
	if errors.As(err, &be) && be.Code >= 400 {
		return be.Code
	}
	return http.StatusInternalServerError
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("http handler panic", zap.String("path", c.Request.URL.Path), zap.String("trace", utils.PanicTrace(r)))
				Fail(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			Fail(c, StatusOf(err), err.Error())
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Success: false,
		Message: msg,
	})
}
