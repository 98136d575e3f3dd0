package service

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mailer"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// resetTokenTTL 密码重置令牌有效期
const resetTokenTTL = time.Hour

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error
	ChangePassword(ctx context.Context, principal Principal, req *dto.ChangePasswordDTO) error
	GetProfile(ctx context.Context, principal Principal) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.UserDTO], error)
	SetBanned(ctx context.Context, principal Principal, userID string, banned bool) error
	GrantAdmin(ctx context.Context, userID string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	mailer   *mailer.Client
	baseURL  string
}

func NewUserService(userRepo repository.UserRepo, mailerClient *mailer.Client, baseURL string) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		mailer:   mailerClient,
		baseURL:  baseURL,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		log.WarnContext(ctx, "register payload rejected", "err", err)
		return nil, ErrParamInvalid
	}

	if req.Username != nil {
		exists, err := s.userRepo.ExistsUsername(ctx, *req.Username, primitive.NilObjectID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExist
		}
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		Username:    req.Username,
		Password:    &hash,
		Roles:       []string{consts.RoleUser},
		VerifyToken: uuid.NewString(),
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		// 邮箱唯一索引兜底
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	// 验证邮件发送失败不回滚注册，用户可以重新触发
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, user.VerifyToken)
	if err = s.mailer.Send(ctx, user.Email, "请验证你的邮箱", verifyURL); err != nil {
		log.WarnContext(ctx, "verification mail failed", "email", user.Email, "err", err)
	}

	return toUserDTO(user), nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsBanned {
		return nil, ErrUserBanned
	}
	if user.Password == nil {
		return nil, ErrPasswordMissing
	}
	if err = security.CheckPasswordHash(req.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Email, user.Roles)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token}, nil
}

// Logout 把 Token 签名写入黑名单，存活时间与 Token 剩余有效期同阶
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlockKey+signature, "1", security.JWTExpirationTime)
}

func (s *userServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrVerifyTokenInvalid
	}

	user, err := s.userRepo.GetByVerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVerifyTokenInvalid
		}
		return err
	}

	return s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"email_verified": true,
		"verify_token":   "",
	})
}

// ForgotPassword 对不存在的邮箱同样返回成功，避免账号枚举
func (s *userServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.InfoContext(ctx, "password reset for unknown email", "email", email)
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err = s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"reset_token":        token,
		"reset_token_expiry": time.Now().Add(resetTokenTTL),
	}); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err = s.mailer.Send(ctx, user.Email, "重置密码", resetURL); err != nil {
		log.WarnContext(ctx, "reset mail failed", "email", user.Email, "err", err)
	}
	return nil
}

func (s *userServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if time.Now().After(user.ResetTokenExpiry) {
		return ErrResetTokenInvalid
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"password":           hash,
		"reset_token":        "",
		"reset_token_expiry": time.Time{},
	})
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, principal Principal, req *dto.ChangePasswordDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	user, err := s.getByHexID(ctx, principal.UserID)
	if err != nil {
		return err
	}
	if user.Password == nil {
		return ErrPasswordMissing
	}
	if err = security.CheckPasswordHash(req.OldPassword, *user.Password); err != nil {
		return ErrPasswordIncorrect
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(ctx, user.ID, bson.M{"password": hash})
}

func (s *userServiceImpl) GetProfile(ctx context.Context, principal Principal) (*dto.UserDTO, error) {
	user, err := s.getByHexID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, page, pageSize int) (*dto.PageDTO[*dto.UserDTO], error) {
	page, pageSize = normalizePage(page, pageSize)

	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		list = append(list, toUserDTO(user))
	}
	return &dto.PageDTO[*dto.UserDTO]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// SetBanned 封禁/解封。不能封禁自己，也不能封禁其他管理员。
func (s *userServiceImpl) SetBanned(ctx context.Context, principal Principal, userID string, banned bool) error {
	if banned && userID == principal.UserID {
		return ErrUserBanSelf
	}

	user, err := s.getByHexID(ctx, userID)
	if err != nil {
		return err
	}
	if banned && hasRole(user.Roles, consts.RoleAdmin) {
		return ErrUserBanAdmin
	}

	return s.userRepo.UpdateFields(ctx, user.ID, bson.M{"is_banned": banned})
}

func (s *userServiceImpl) GrantAdmin(ctx context.Context, userID string) error {
	user, err := s.getByHexID(ctx, userID)
	if err != nil {
		return err
	}
	if hasRole(user.Roles, consts.RoleAdmin) {
		return nil
	}
	return s.userRepo.UpdateFields(ctx, user.ID, bson.M{
		"roles": append(user.Roles, consts.RoleAdmin),
	})
}

func (s *userServiceImpl) getByHexID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func toUserDTO(user *model.User) *dto.UserDTO {
	result := &dto.UserDTO{}
	_ = copier.Copy(result, user)
	result.ID = user.ID.Hex()
	return result
}
