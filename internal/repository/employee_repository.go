package repository

import (
	"context"
	"errors"
	"hr_learning_backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	DB *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

// FindByUserID 返回 nil, nil 表示该平台账号没有关联员工
func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*model.Employee, error) {
	var employee model.Employee
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
