// Package hash 提供了密码哈希和校验的功能。
package hash

import "golang.org/x/crypto/bcrypt"

// bcryptCost 固定为 12，与历史数据保持一致。
const bcryptCost = 12

// HashPassword 对明文密码进行 bcrypt 哈希。
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash 校验明文密码与哈希是否匹配。
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
