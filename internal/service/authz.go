package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
)

// Principal 经外部鉴权层校验过的会话身份
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == consts.RoleAdmin {
			return true
		}
	}
	return false
}

func (p Principal) Anonymous() bool {
	return p.Email == ""
}

// CanMutate 所有写操作共用的授权判定：作者本人或管理员。
// 各操作不得再各自散落 admin 判断。
func CanMutate(p Principal, post *model.Post) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Email != "" && p.Email == post.CreatedBy
}
