package dto

// SubjectHours aggregates the total logged time for one subject.
type SubjectHours struct {
	SubjectID   uint    `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	TotalHours  float64 `json:"total_hours"`
}

// StudentDashboardResponse aggregates a student's study state.
type StudentDashboardResponse struct {
	RecentLogs     []StudyLogResponse `json:"recent_logs"`
	HoursBySubject []SubjectHours     `json:"hours_by_subject"`
	Progress       []ProgressResponse `json:"progress"`
	Goals          []GoalResponse     `json:"goals"`
	UnreadMessages int64              `json:"unread_messages"`
}

// MentorDashboardResponse aggregates a mentor's view of their students.
type MentorDashboardResponse struct {
	Goals          []GoalResponse     `json:"goals"`
	GoalsMet       int                `json:"goals_met"`
	GoalsOpen      int                `json:"goals_open"`
	RecentFeedback []FeedbackResponse `json:"recent_feedback"`
	UnreadMessages int64              `json:"unread_messages"`
}
