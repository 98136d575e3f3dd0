package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUnauthorized         = errors.New("未登录或凭证无效")
	ErrForbidden            = errors.New("无权操作该资源")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserExist            = errors.New("邮箱已注册")
	ErrUsernameExist        = errors.New("用户名已存在")
	ErrUserBanned           = errors.New("账号已被封禁")
	ErrUserBanSelf          = errors.New("不能封禁自己")
	ErrUserBanAdmin         = errors.New("不能封禁管理员")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrPasswordMissing      = errors.New("该账号未设置密码，请使用社交账号登录")
	ErrResetTokenInvalid    = errors.New("重置令牌无效或已过期")
	ErrVerifyTokenInvalid   = errors.New("验证令牌无效")
	ErrPostNotFound         = errors.New("文章不存在")
	ErrSlugInvalid          = errors.New("slug 含有非法字符")
	ErrSlugConflict         = errors.New("slug 已被其他文章占用")
	ErrStatusTransition     = errors.New("非法的状态流转")
	ErrLikesAtZero          = errors.New("点赞数已为零")
	ErrSubscriberNotFound   = errors.New("订阅不存在")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUnauthorized:         Unauthorized,
	ErrForbidden:            Forbidden,
	ErrUserNotFound:         NotFound,
	ErrUserExist:            Conflict,
	ErrUsernameExist:        Conflict,
	ErrUserBanned:           Unauthorized,
	ErrUserBanSelf:          BadRequest,
	ErrUserBanAdmin:         BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrPasswordMissing:      Unauthorized,
	ErrResetTokenInvalid:    Unauthorized,
	ErrVerifyTokenInvalid:   BadRequest,
	ErrPostNotFound:         NotFound,
	ErrSlugInvalid:          BadRequest,
	ErrSlugConflict:         Conflict,
	ErrStatusTransition:     BadRequest,
	ErrLikesAtZero:          BadRequest,
	ErrSubscriberNotFound:   NotFound,
	ErrNotificationNotFound: NotFound,
	ErrFileNotSupported:     BadRequest,
	UnExpectedError:         InternalServerError,
}
