package model

import "time"

// SessionAttendance 网页端加入直播课时写入
type SessionAttendance struct {
	UUIDBase
	LearnerOwned
	SessionID string    `gorm:"size:36;not null;index" json:"sessionId"`
	JoinedAt  time.Time `gorm:"index" json:"joinedAt"`
}

func (SessionAttendance) TableName() string {
	return "session_attendances"
}

// MeetingParticipant 会议集成回调写入的参会记录，本服务只读
type MeetingParticipant struct {
	UUIDBase
	LearnerOwned
	MeetingID   string     `gorm:"size:64;not null;index" json:"meetingId"`
	DisplayName string     `gorm:"size:100" json:"displayName"`
	JoinedAt    time.Time  `gorm:"index" json:"joinedAt"`
	LeftAt      *time.Time `json:"leftAt,omitempty"`
}

func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}
