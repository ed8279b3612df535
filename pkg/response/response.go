package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// Response 论坛接口统一返回结构 {success, message, data}
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Message: msg,
	})
}

// Decode 解析后端返回体。success=false 或需要 data 但缺失时返回 BizError，
// 优先使用服务端 message，没有则使用调用方给的 fallback
func Decode(status int, body []byte, wantData bool, fallback string) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, NewError(status, fallback)
	}

	res := gjson.ParseBytes(body)
	if !res.Get("success").Bool() {
		msg := res.Get("message").String()
		if msg == "" {
			msg = fallback
		}
		return gjson.Result{}, NewError(status, msg)
	}

	data := res.Get("data")
	if wantData && (!data.Exists() || data.Type == gjson.Null) {
		msg := res.Get("message").String()
		if msg == "" {
			msg = fallback
		}
		return gjson.Result{}, NewError(status, msg)
	}

	return data, nil
}
