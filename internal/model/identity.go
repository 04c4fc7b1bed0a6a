package model

import (
	"strings"

	"gorm.io/gorm"
)

const (
	ColumnEmployeeID = "employee_id"
	ColumnUserID     = "user_id"
)

// LearnerIdentity is the canonical learner resolved from a request credential.
// Either key may be empty, but not both.
type LearnerIdentity struct {
	EmployeeKey string `json:"employeeKey,omitempty"`
	UserKey     string `json:"userKey,omitempty"`
}

func (i LearnerIdentity) IsEmpty() bool {
	return i.EmployeeKey == "" && i.UserKey == ""
}

// Owner returns the single key new records are stored under; the employee key wins.
func (i LearnerIdentity) Owner() LearnerOwned {
	if i.EmployeeKey != "" {
		return LearnerOwned{EmployeeID: i.EmployeeKey}
	}
	return LearnerOwned{UserID: i.UserKey}
}

// Owns reports whether a stored record belongs to this learner under either key.
func (i LearnerIdentity) Owns(o LearnerOwned) bool {
	if i.EmployeeKey != "" && i.EmployeeKey == o.EmployeeID {
		return true
	}
	return i.UserKey != "" && i.UserKey == o.UserID
}

type FilterClause struct {
	Column string
	Value  string
}

// QueryFilter is an OR of equality predicates over the learner key columns.
type QueryFilter struct {
	Clauses []FilterClause
}

func (f QueryFilter) Matches(o LearnerOwned) bool {
	for _, c := range f.Clauses {
		switch c.Column {
		case ColumnEmployeeID:
			if o.EmployeeID == c.Value {
				return true
			}
		case ColumnUserID:
			if o.UserID == c.Value {
				return true
			}
		}
	}
	return false
}

// Scope renders the filter as a single parenthesised gorm condition.
// An empty filter matches nothing.
func (f QueryFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(f.Clauses) == 0 {
			return db.Where("1 = 0")
		}
		parts := make([]string, 0, len(f.Clauses))
		args := make([]interface{}, 0, len(f.Clauses))
		for _, c := range f.Clauses {
			parts = append(parts, c.Column+" = ?")
			args = append(args, c.Value)
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}
