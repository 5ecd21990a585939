// Package repository 提供了数据访问层的实现。
package repository

import (
	"errors"

	"gorm.io/gorm"

	"medi-ai-go/internal/model"
)

// ErrUserNotFound 表示用户不存在，两种实现统一返回它。
var ErrUserNotFound = errors.New("user not found")

// UserRepository 定义了用户数据的操作接口。
// 认证流程只依赖这个接口，不关心背后是 MySQL 还是进程内存。
type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个基于 GORM 的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *gormUserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}
