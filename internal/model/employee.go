package model

// Employee 员工档案，UserID 关联平台账号
type Employee struct {
	UUIDBase
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;index" json:"email"`
	DepartmentID string `gorm:"size:36;index" json:"departmentId"`
	UserID       string `gorm:"size:36;index" json:"userId"`
}

func (Employee) TableName() string {
	return "employees"
}
