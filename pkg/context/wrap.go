package context

import (
	"EduForum/internal/transform"
	"EduForum/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 校验错误
			var ve *transform.ValidationError
			if errors.As(err, &ve) {
				response.Fail(c, http.StatusBadRequest, ve.Error())
				return
			}
			// 业务错误，沿用后端状态码
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, response.StatusOf(err), be.Msg)
				return
			}
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
	}
}

func GetUserID(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", errors.New("user_id 不存在")
	}

	uid, ok := v.(string)
	if !ok {
		return "", errors.New("user_id 类型错误")
	}

	return uid, nil
}
