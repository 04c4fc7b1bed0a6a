package util

import (
	"errors"
	"fmt"
)

var (
	// 无法解析出学习者身份，或资源不属于当前学习者
	ErrUnauthorized = errors.New("unauthorized learner")
	ErrQuizNotOwned = fmt.Errorf("quiz does not belong to learner: %w", ErrUnauthorized)

	// 没有可用于出题/判分的内容，提示信息直接返回给用户
	ErrContentUnavailable = errors.New("no usable course content is available for this quiz")
	ErrNoMaterialsMatched = fmt.Errorf("no materials matched the requested ids: %w", ErrContentUnavailable)
	ErrUnknownMaterial    = fmt.Errorf("material not found in course: %w", ErrContentUnavailable)
	ErrNoAssessment       = fmt.Errorf("course has no assessment questions: %w", ErrContentUnavailable)

	ErrCourseNotFound = errors.New("course not found")
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrInvalidDay     = errors.New("invalid day, expected YYYY-MM-DD")
	ErrInvalidDelta   = errors.New("activity counters must not be negative")
)
