package service

import (
	"testing"

	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	post := &model.Post{CreatedBy: "author@example.com"}

	assert.True(t, CanMutate(Principal{Email: "author@example.com", Roles: []string{consts.RoleUser}}, post))
	assert.True(t, CanMutate(Principal{Email: "admin@example.com", Roles: []string{consts.RoleAdmin}}, post))
	assert.False(t, CanMutate(Principal{Email: "other@example.com", Roles: []string{consts.RoleUser}}, post))
	// 匿名身份不允许任何写操作
	assert.False(t, CanMutate(Principal{}, post))
}
