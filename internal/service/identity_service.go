package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
)

// Credential 从 JWT 中取出的原始身份
type Credential struct {
	EmployeeID string
	UserID     string
}

func CredentialFromClaims(claims *util.Claims) Credential {
	if claims == nil {
		return Credential{}
	}
	return Credential{EmployeeID: claims.EmployeeID, UserID: claims.UserID}
}

type EmployeeLookup interface {
	FindByUserID(ctx context.Context, userID string) (*model.Employee, error)
}

type IdentityService struct {
	Employees EmployeeLookup
}

func NewIdentityService(employees EmployeeLookup) *IdentityService {
	return &IdentityService{Employees: employees}
}

// Resolve 把凭证解析为学习者身份。只带平台用户 ID 时，
// 会尝试找到关联的员工记录，两个 key 同时生效。
func (s *IdentityService) Resolve(ctx context.Context, cred Credential) (model.LearnerIdentity, error) {
	if cred.EmployeeID != "" {
		return model.LearnerIdentity{EmployeeKey: cred.EmployeeID, UserKey: cred.UserID}, nil
	}
	if cred.UserID == "" {
		return model.LearnerIdentity{}, util.ErrUnauthorized
	}

	identity := model.LearnerIdentity{UserKey: cred.UserID}
	if s.Employees == nil {
		return identity, nil
	}
	emp, err := s.Employees.FindByUserID(ctx, cred.UserID)
	if err != nil {
		return model.LearnerIdentity{}, fmt.Errorf("lookup employee by user id: %w", err)
	}
	if emp != nil {
		identity.EmployeeKey = emp.ID
	}
	return identity, nil
}

// BuildFilter 两个 key 都有时生成 OR 条件
func BuildFilter(identity model.LearnerIdentity) (model.QueryFilter, error) {
	var filter model.QueryFilter
	if identity.EmployeeKey != "" {
		filter.Clauses = append(filter.Clauses, model.FilterClause{Column: model.ColumnEmployeeID, Value: identity.EmployeeKey})
	}
	if identity.UserKey != "" {
		filter.Clauses = append(filter.Clauses, model.FilterClause{Column: model.ColumnUserID, Value: identity.UserKey})
	}
	if len(filter.Clauses) == 0 {
		return model.QueryFilter{}, util.ErrUnauthorized
	}
	return filter, nil
}
