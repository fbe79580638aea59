package util

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrEmptyQuestion   = errors.New("题目内容不能为空")
	ErrEmptyAnswer     = errors.New("解答内容不能为空")
	ErrSolutionExpired = errors.New("solution expired")
	ErrNotFound        = errors.New("record not found")
	ErrTeacherInactive = errors.New("teacher account disabled")
	ErrUnauthorized    = errors.New("unauthorized")
)

// IsNotFound 判断是否应映射为 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrSolutionExpired)
}
