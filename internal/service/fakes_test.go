package service

import (
	"context"
	"errors"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"sync"
	"time"
)

var errStoreDown = errors.New("store down")

type fakeEmployees struct {
	byUserID map[string]*model.Employee
	err      error
	calls    int
}

func (f *fakeEmployees) FindByUserID(ctx context.Context, userID string) (*model.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byUserID[userID], nil
}

type fakeActivityLogs struct {
	mu    sync.Mutex
	rows  []model.LearningActivity
	err   error
	calls int
}

func (f *fakeActivityLogs) ListBetween(ctx context.Context, filter model.QueryFilter, startDay, endDay string) ([]model.LearningActivity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.LearningActivity
	for _, r := range f.rows {
		if filter.Matches(r.Owner()) && r.Day >= startDay && r.Day <= endDay {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeActivityLogs) Increment(ctx context.Context, owner model.LearnerOwned, day string, delta model.ActivityCounters, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i := range f.rows {
		r := &f.rows[i]
		if r.EmployeeID == owner.EmployeeID && r.UserID == owner.UserID && r.Day == day {
			r.ActivityCounters.Add(delta)
			r.ActivityScore += score
			return nil
		}
	}
	f.rows = append(f.rows, model.LearningActivity{
		EmployeeID:       owner.EmployeeID,
		UserID:           owner.UserID,
		Day:              day,
		ActivityCounters: delta,
		ActivityScore:    score,
	})
	return nil
}

type fakePractice struct {
	rows []model.PracticeQuizResult
	err  error
}

func (f *fakePractice) Create(ctx context.Context, r *model.PracticeQuizResult) error {
	if f.err != nil {
		return f.err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, *r)
	return nil
}

func (f *fakePractice) ListBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.PracticeQuizResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.PracticeQuizResult
	for _, r := range f.rows {
		if filter.Matches(r.LearnerOwned) && inWindow(r.CreatedAt, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeQuizzes struct {
	rows      map[string]*model.GeneratedQuiz
	order     []string
	err       error
	markCalls int
}

func newFakeQuizzes(quizzes ...model.GeneratedQuiz) *fakeQuizzes {
	f := &fakeQuizzes{rows: map[string]*model.GeneratedQuiz{}}
	for i := range quizzes {
		q := quizzes[i]
		if q.ID == "" {
			q.ID = model.GenerateUUID()
		}
		f.rows[q.ID] = &q
		f.order = append(f.order, q.ID)
	}
	return f
}

func (f *fakeQuizzes) Create(ctx context.Context, quiz *model.GeneratedQuiz) error {
	if f.err != nil {
		return f.err
	}
	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	cp := *quiz
	f.rows[quiz.ID] = &cp
	f.order = append(f.order, quiz.ID)
	return nil
}

func (f *fakeQuizzes) FindByID(ctx context.Context, id string) (*model.GeneratedQuiz, error) {
	q, ok := f.rows[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuizzes) MarkSubmitted(ctx context.Context, quiz *model.GeneratedQuiz) (bool, error) {
	f.markCalls++
	stored, ok := f.rows[quiz.ID]
	if !ok || stored.Status != model.QuizCreated {
		return false, nil
	}
	stored.Status = model.QuizSubmitted
	stored.Responses = quiz.Responses
	stored.Score = quiz.Score
	stored.CompletionTime = quiz.CompletionTime
	stored.SubmittedAt = quiz.SubmittedAt
	return true, nil
}

func (f *fakeQuizzes) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.GeneratedQuiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.GeneratedQuiz
	for _, id := range f.order {
		if q := f.rows[id]; filter.Matches(q.LearnerOwned) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizzes) ListSubmittedBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.GeneratedQuiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	// 故意不按状态过滤，由数据源自己校验
	var out []model.GeneratedQuiz
	for _, id := range f.order {
		if q := f.rows[id]; filter.Matches(q.LearnerOwned) {
			out = append(out, *q)
		}
	}
	return out, nil
}

type fakeAttempts struct {
	rows []model.QuizAttempt
	err  error
}

func (f *fakeAttempts) Create(ctx context.Context, a *model.QuizAttempt) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAttempts) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.QuizAttempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.QuizAttempt
	for _, a := range f.rows {
		if filter.Matches(a.LearnerOwned) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLiveSessions struct {
	attendance   []model.SessionAttendance
	participants []model.MeetingParticipant
	err          error
}

func (f *fakeLiveSessions) CreateAttendance(ctx context.Context, a *model.SessionAttendance) error {
	if f.err != nil {
		return f.err
	}
	f.attendance = append(f.attendance, *a)
	return nil
}

func (f *fakeLiveSessions) ListAttendanceBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.SessionAttendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.SessionAttendance
	for _, a := range f.attendance {
		if filter.Matches(a.LearnerOwned) && inWindow(a.JoinedAt, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeLiveSessions) ListParticipantsBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.MeetingParticipant, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.MeetingParticipant
	for _, p := range f.participants {
		if filter.Matches(p.LearnerOwned) && inWindow(p.JoinedAt, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeProgress struct {
	rows  []*model.CourseProgress
	err   error
	saves int
}

func (f *fakeProgress) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.CourseProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.CourseProgress
	for _, p := range f.rows {
		if filter.Matches(p.LearnerOwned) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgress) FindByLearnerAndCourse(ctx context.Context, filter model.QueryFilter, courseID string) (*model.CourseProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.rows {
		if p.CourseID == courseID && filter.Matches(p.LearnerOwned) {
			cp := *p
			cp.ViewedMaterials = append([]model.MaterialView(nil), p.ViewedMaterials...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProgress) Save(ctx context.Context, p *model.CourseProgress) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	if p.ID == "" {
		p.ID = model.GenerateUUID()
	}
	cp := *p
	for i, existing := range f.rows {
		if existing.ID == p.ID {
			f.rows[i] = &cp
			return nil
		}
	}
	f.rows = append(f.rows, &cp)
	return nil
}

type fakeCourses struct {
	rows map[string]model.Course
}

func newFakeCourses(courses ...model.Course) *fakeCourses {
	f := &fakeCourses{rows: map[string]model.Course{}}
	for _, c := range courses {
		f.rows[c.ID] = c
	}
	return f
}

func (f *fakeCourses) FindByID(ctx context.Context, id string) (*model.Course, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	return &c, nil
}

func (f *fakeCourses) FindByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	var out []model.Course
	for _, id := range ids {
		if c, ok := f.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTranscripts struct {
	texts map[string]string
	calls []string
}

func (f *fakeTranscripts) FetchTranscript(ctx context.Context, videoID string) (string, bool) {
	f.calls = append(f.calls, videoID)
	t, ok := f.texts[videoID]
	return t, ok
}

type fakeGenerator struct {
	questions []model.QuizQuestion
	err       error
	requests  []GenerationRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerationRequest) ([]model.QuizQuestion, error) {
	f.requests = append(f.requests, req)
	return f.questions, f.err
}

type recordedActivity struct {
	identity model.LearnerIdentity
	day      string
	delta    model.ActivityCounters
}

type fakeRecorder struct {
	calls []recordedActivity
	err   error
}

func (f *fakeRecorder) RecordActivity(ctx context.Context, identity model.LearnerIdentity, day string, delta model.ActivityCounters) error {
	f.calls = append(f.calls, recordedActivity{identity: identity, day: day, delta: delta})
	return f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
