package repository

import (
	"sync"

	"medi-ai-go/internal/model"
)

// memoryUserRepository 是 UserRepository 的进程内实现：
// 只追加的切片加线性扫描，用户数据随进程退出丢失。
// 未配置 MySQL DSN 时它是默认实现。
type memoryUserRepository struct {
	mu    sync.RWMutex
	users []*model.User
}

// NewMemoryUserRepository 创建一个进程内的 UserRepository 实例。
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{}
}

func (r *memoryUserRepository) FindByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) FindByID(id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *memoryUserRepository) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return ErrUserNotFound
}
