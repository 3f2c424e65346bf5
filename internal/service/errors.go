package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
	BadGateway          = 502
)

// 四类失败必须给用户可区分的提示：
// 账号不存在（检查拼写）、上游故障（稍后重试）、配额用尽（明天再来）、重复绑定（先删除）
var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPlatformInvalid     = errors.New("不支持的平台")
	ErrHandleNotFound      = errors.New("账号不存在，请检查用户名拼写")
	ErrProviderUnavailable = errors.New("数据服务暂时不可用，请稍后重试")
	ErrQuotaExceeded       = errors.New("今日刷新次数已用完，请明天再试")
	ErrAlreadyBound        = errors.New("该平台已绑定账号，请先删除原绑定")
	ErrNotBound            = errors.New("尚未绑定该平台账号")
	ErrPersistenceFailure  = errors.New("数据保存失败，请稍后重试")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrPlatformInvalid:     BadRequest,
	ErrHandleNotFound:      NotFound,
	ErrProviderUnavailable: BadGateway,
	ErrQuotaExceeded:       TooManyRequests,
	ErrAlreadyBound:        BadRequest,
	ErrNotBound:            BadRequest,
	ErrPersistenceFailure:  InternalServerError,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
