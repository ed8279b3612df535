package transform

import (
	"strings"
	"unicode/utf8"

	"EduForum/types"
)

const (
	MinTitleLength        = 5
	MinContentLength      = 10
	MaxTags               = 10
	MinReplyContentLength = 5
	MaxReplyContentLength = 5000
)

// Result 校验结果，只在发请求前做快速失败，后端仍可能拒绝
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Err 无错误时返回 nil
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

func ValidateDiscussionData(req types.CreateDiscussionRequest) Result {
	errs := make([]string, 0)

	if utf8.RuneCountInString(strings.TrimSpace(req.Title)) < MinTitleLength {
		errs = append(errs, "Title must be at least 5 characters long")
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Content)) < MinContentLength {
		errs = append(errs, "Content must be at least 10 characters long")
	}
	if strings.TrimSpace(req.Category) == "" {
		errs = append(errs, "Category is required")
	}
	if len(req.Tags) > MaxTags {
		errs = append(errs, "Maximum 10 tags allowed")
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func ValidateReplyData(req types.CreateReplyRequest) Result {
	errs := make([]string, 0)

	if utf8.RuneCountInString(strings.TrimSpace(req.Content)) < MinReplyContentLength {
		errs = append(errs, "Reply content must be at least 5 characters long")
	}
	if utf8.RuneCountInString(req.Content) > MaxReplyContentLength {
		errs = append(errs, "Reply content cannot exceed 5000 characters")
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}
