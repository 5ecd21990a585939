// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务错误的哨兵值。handler 层用 errors.Is 将它们翻译成 HTTP 状态码：
// 校验类 -> 400，凭证类 -> 401，冲突 -> 409，上游失败 -> 500。
var (
	ErrEmptyQuery         = errors.New("empty query")
	ErrUpstream           = errors.New("assistant unavailable")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAvatarDisabled     = errors.New("avatar storage is not configured")
)
