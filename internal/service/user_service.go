package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"medi-ai-go/internal/config"
	"medi-ai-go/internal/model"
	"medi-ai-go/internal/repository"
	"medi-ai-go/pkg/hash"
	"medi-ai-go/pkg/log"
	"medi-ai-go/pkg/storage"
	"medi-ai-go/pkg/token"
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(name, email, password, phone string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	GetProfile(userID string) (*model.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*model.User, error)
	Logout(tokenString string) error
	IsTokenRevoked(tokenString string) bool
	UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (*model.User, error)
}

// ProfileUpdate 描述一次资料更新请求，nil 字段表示不修改。
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Profile *model.Profile
}

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
	redis      *redis.Client // 可为 nil：登出黑名单退化为 no-op
	minioCfg   config.MinIOConfig
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager, redisClient *redis.Client, minioCfg config.MinIOConfig) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		redis:      redisClient,
		minioCfg:   minioCfg,
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register 处理用户注册的业务逻辑，成功时同时签发 token。
func (s *userService) Register(name, email, password, phone string) (*model.User, string, error) {
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, "", ErrWeakPassword
	}

	// 邮箱唯一性检查
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailExists
	} else if err != repository.ErrUserNotFound {
		return nil, "", err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	newUser := &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Phone:    phone,
		Profile: model.Profile{
			Allergies:      []string{},
			MedicalHistory: []string{},
		},
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, "", err
	}

	tokenString, err := s.jwtManager.GenerateToken(newUser.ID, newUser.Email)
	if err != nil {
		return nil, "", err
	}
	return newUser, tokenString, nil
}

// Login 处理用户登录的业务逻辑。
func (s *userService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	tokenString, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, tokenString, nil
}

// GetProfile 根据用户 ID 获取用户详细信息。
func (s *userService) GetProfile(userID string) (*model.User, error) {
	return s.userRepo.FindByID(userID)
}

// UpdateProfile 合并资料更新：只覆盖请求里出现的字段。
func (s *userService) UpdateProfile(userID string, update ProfileUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		user.Name = *update.Name
	}
	if update.Phone != nil && *update.Phone != "" {
		user.Phone = *update.Phone
	}
	if update.Profile != nil {
		p := update.Profile
		if p.Avatar != nil {
			user.Profile.Avatar = p.Avatar
		}
		if p.DateOfBirth != nil {
			user.Profile.DateOfBirth = p.DateOfBirth
		}
		if p.Gender != nil {
			user.Profile.Gender = p.Gender
		}
		if p.BloodGroup != nil {
			user.Profile.BloodGroup = p.BloodGroup
		}
		if p.Allergies != nil {
			user.Profile.Allergies = p.Allergies
		}
		if p.MedicalHistory != nil {
			user.Profile.MedicalHistory = p.MedicalHistory
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout 将 token 加入 Redis 黑名单，剩余有效期作为过期时间。
// 未配置 Redis 时登出只在客户端生效（丢弃 token）。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		return nil
	}
	expiration := time.Until(claims.ExpiresAt.Time)
	if expiration <= 0 {
		return nil
	}
	return s.redis.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// IsTokenRevoked 检查 token 是否在黑名单中。
func (s *userService) IsTokenRevoked(tokenString string) bool {
	if s.redis == nil {
		return false
	}
	exists, err := s.redis.Exists(context.Background(), "blacklist:"+tokenString).Result()
	if err != nil {
		log.Warnf("blacklist lookup failed: %v", err)
		return false
	}
	return exists > 0
}

// UploadAvatar 把头像对象写入 MinIO 并把预签名 URL 存到用户资料。
func (s *userService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (*model.User, error) {
	if storage.MinioClient == nil {
		return nil, ErrAvatarDisabled
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))
	if err := storage.PutObject(ctx, s.minioCfg.BucketName, objectName, r, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	url, err := storage.GetPresignedURL(s.minioCfg.BucketName, objectName, avatarURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate avatar url: %w", err)
	}
	user.Profile.Avatar = &url
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// 预签名头像链接的有效期。
const avatarURLTTL = 7 * 24 * time.Hour
