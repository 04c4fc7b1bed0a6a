package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}

// LearnerOwned 学习者归属字段。同一学习者可能以员工身份或平台用户身份写入，
// 存储时只填其中一个，另一个为空串。
type LearnerOwned struct {
	EmployeeID string `gorm:"size:36;not null;default:'';index" json:"employeeId,omitempty"`
	UserID     string `gorm:"size:36;not null;default:'';index" json:"userId,omitempty"`
}
