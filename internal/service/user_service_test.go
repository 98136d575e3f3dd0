package service

import (
	"context"
	"testing"
	"time"

	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mailer"
	"Inkwell/internal/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newUserFixture() (*MockUserRepo, UserService) {
	userRepo := new(MockUserRepo)
	mailerClient := mailer.NewClient(config.NewsletterConfig{})
	svc := NewUserService(userRepo, mailerClient, "http://localhost:8080")
	return userRepo, svc
}

func sampleUser(password string) *model.User {
	hash, _ := security.HashPassword(password)
	return &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "alice@example.com",
		Password: &hash,
		Roles:    []string{consts.RoleUser},
	}
}

func TestRegister(t *testing.T) {
	userRepo, svc := newUserFixture()

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "alice@example.com" &&
			u.Password != nil && *u.Password != "s3cret-password" &&
			len(u.Roles) == 1 && u.Roles[0] == consts.RoleUser &&
			u.VerifyToken != ""
	})).Return(nil)

	user, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	userRepo.AssertExpectations(t)
}

func TestRegisterUsernameTaken(t *testing.T) {
	userRepo, svc := newUserFixture()
	name := "alice"
	userRepo.On("ExistsUsername", mock.Anything, "alice", primitive.NilObjectID).Return(true, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "alice@example.com",
		Username: &name,
		Password: "s3cret-password",
	})
	assert.ErrorIs(t, err, ErrUsernameExist)
}

func TestRegisterShortPassword(t *testing.T) {
	_, svc := newUserFixture()
	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestLogin(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	token, err := svc.Login(context.Background(), &dto.LoginDTO{Email: user.Email, Password: "s3cret-password"})
	require.NoError(t, err)

	claims, err := security.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &dto.LoginDTO{Email: user.Email, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestLoginBanned(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	user.IsBanned = true
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &dto.LoginDTO{Email: user.Email, Password: "s3cret-password"})
	assert.ErrorIs(t, err, ErrUserBanned)
}

func TestLoginSocialAccountWithoutPassword(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("ignored")
	user.Password = nil
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &dto.LoginDTO{Email: user.Email, Password: "anything"})
	assert.ErrorIs(t, err, ErrPasswordMissing)
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo, svc := newUserFixture()
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Login(context.Background(), &dto.LoginDTO{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	userRepo, svc := newUserFixture()
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)

	// 不暴露邮箱是否注册
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotPasswordSetsToken(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateFields", mock.Anything, user.ID, mock.MatchedBy(func(fields bson.M) bool {
		token, _ := fields["reset_token"].(string)
		expiry, _ := fields["reset_token_expiry"].(time.Time)
		return token != "" && expiry.After(time.Now())
	})).Return(nil)

	err := svc.ForgotPassword(context.Background(), user.Email)
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	user.ResetToken = "token-1"
	user.ResetTokenExpiry = time.Now().Add(-time.Minute)
	userRepo.On("GetByResetToken", mock.Anything, "token-1").Return(user, nil)

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordDTO{Token: "token-1", Password: "new-password-1"})
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	user.ResetToken = "token-1"
	user.ResetTokenExpiry = time.Now().Add(time.Hour)
	userRepo.On("GetByResetToken", mock.Anything, "token-1").Return(user, nil)
	userRepo.On("UpdateFields", mock.Anything, user.ID, mock.MatchedBy(func(fields bson.M) bool {
		return fields["reset_token"] == "" && fields["password"] != nil
	})).Return(nil)

	err := svc.ResetPassword(context.Background(), &dto.ResetPasswordDTO{Token: "token-1", Password: "new-password-1"})
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestVerifyEmail(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	user.VerifyToken = "verify-1"
	userRepo.On("GetByVerifyToken", mock.Anything, "verify-1").Return(user, nil)
	userRepo.On("UpdateFields", mock.Anything, user.ID, mock.MatchedBy(func(fields bson.M) bool {
		return fields["email_verified"] == true
	})).Return(nil)

	require.NoError(t, svc.VerifyEmail(context.Background(), "verify-1"))

	userRepo.On("GetByVerifyToken", mock.Anything, "bad").Return(nil, mongo.ErrNoDocuments)
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "bad"), ErrVerifyTokenInvalid)
}

func TestSetBannedGuards(t *testing.T) {
	userRepo, svc := newUserFixture()
	adminUser := sampleUser("s3cret-password")
	adminUser.Roles = []string{consts.RoleAdmin}
	actor := Principal{UserID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Roles: []string{consts.RoleAdmin}}

	// 不能封禁自己
	err := svc.SetBanned(context.Background(), actor, actor.UserID, true)
	assert.ErrorIs(t, err, ErrUserBanSelf)

	// 不能封禁管理员
	userRepo.On("GetByID", mock.Anything, adminUser.ID).Return(adminUser, nil)
	err = svc.SetBanned(context.Background(), actor, adminUser.ID.Hex(), true)
	assert.ErrorIs(t, err, ErrUserBanAdmin)
}

func TestSetBanned(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	actor := Principal{UserID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Roles: []string{consts.RoleAdmin}}

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("UpdateFields", mock.Anything, user.ID, bson.M{"is_banned": true}).Return(nil)

	require.NoError(t, svc.SetBanned(context.Background(), actor, user.ID.Hex(), true))
	userRepo.AssertExpectations(t)
}

func TestGrantAdminIdempotent(t *testing.T) {
	userRepo, svc := newUserFixture()
	user := sampleUser("s3cret-password")
	user.Roles = []string{consts.RoleUser, consts.RoleAdmin}
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	require.NoError(t, svc.GrantAdmin(context.Background(), user.ID.Hex()))
	userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}
