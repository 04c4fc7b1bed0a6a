package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"time"
)

type LiveSessionService struct {
	Attendance AttendanceStore
	Now        func() time.Time
}

func NewLiveSessionService(attendance AttendanceStore) *LiveSessionService {
	return &LiveSessionService{Attendance: attendance, Now: time.Now}
}

// JoinSession 网页端每次加入都记一条签到，不去重
func (s *LiveSessionService) JoinSession(ctx context.Context, identity model.LearnerIdentity, sessionID string) (*model.SessionAttendance, error) {
	if identity.IsEmpty() {
		return nil, util.ErrUnauthorized
	}
	attendance := &model.SessionAttendance{
		LearnerOwned: identity.Owner(),
		SessionID:    sessionID,
		JoinedAt:     s.Now().UTC(),
	}
	if err := s.Attendance.CreateAttendance(ctx, attendance); err != nil {
		return nil, fmt.Errorf("record attendance: %w", err)
	}
	return attendance, nil
}
