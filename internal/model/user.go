// Package model 包含了应用的数据模型定义。
package model

import "time"

// Profile 存储用户的健康档案信息，所有字段均可缺省。
type Profile struct {
	Avatar         *string  `json:"avatar"`
	DateOfBirth    *string  `json:"dateOfBirth"`
	Gender         *string  `json:"gender"`
	BloodGroup     *string  `json:"bloodGroup"`
	Allergies      []string `json:"allergies"`
	MedicalHistory []string `json:"medicalHistory"`
}

// User 代表一个注册用户。密码字段永远不出现在 JSON 输出中。
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:64" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Profile   Profile   `gorm:"serializer:json" json:"profile"`
}

func (User) TableName() string {
	return "users"
}
