package service

import (
	"EduForum/pkg/response"
	"net/http"
)

var (
	// ErrLoginRequired 未登录时的写操作，不会发出任何请求
	ErrLoginRequired = response.NewError(http.StatusUnauthorized, "Please login to continue")
	ErrViewClosed    = response.NewError(http.StatusGone, "View has been closed")
)
