package service

import (
	"context"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"regexp"
	"strings"
)

// TranscriptProvider 获取视频字幕文本，失败时返回 ("", false)，不抛错
type TranscriptProvider interface {
	FetchTranscript(ctx context.Context, videoID string) (string, bool)
}

// MaterialRequest 出题时对资料范围的限定
type MaterialRequest struct {
	LessonTitles []string `json:"lessonTitles"`
	MaterialIDs  []string `json:"materialIds"`
	MaterialID   string   `json:"materialId"`
}

var youtubeIDPattern = regexp.MustCompile(`(?:[?&]v=|youtu\.be/|/embed/|/shorts/|/live/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID 从 YouTube 链接中取 11 位视频 ID
func ExtractVideoID(rawURL string) string {
	m := youtubeIDPattern.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// FlattenMaterials 优先使用扁平列表，否则从课时中展开，缺标题的资料继承课时标题
func FlattenMaterials(course *model.Course) []model.QuizMaterial {
	flat := course.Materials
	if len(flat) == 0 {
		flat = course.Contents
	}
	if len(flat) > 0 {
		out := make([]model.QuizMaterial, len(flat))
		copy(out, flat)
		return out
	}

	var out []model.QuizMaterial
	for _, lesson := range course.Lessons {
		for _, m := range lesson.Materials {
			if m.LessonTitle == "" {
				m.LessonTitle = lesson.Title
			}
			out = append(out, m)
		}
	}
	return out
}

func containsFold(a, b string) bool {
	return strings.Contains(strings.ToLower(a), strings.ToLower(b))
}

// NarrowMaterials 按 materialIds > lessonTitles > 全部 的优先级筛选，并把 focus 资料置前
func NarrowMaterials(all []model.QuizMaterial, req MaterialRequest) ([]model.QuizMaterial, error) {
	var selected []model.QuizMaterial
	switch {
	case len(req.MaterialIDs) > 0:
		wanted := make(map[string]struct{}, len(req.MaterialIDs))
		for _, id := range req.MaterialIDs {
			wanted[id] = struct{}{}
		}
		for _, m := range all {
			if _, ok := wanted[m.ID]; ok {
				selected = append(selected, m)
			}
		}
		if len(selected) == 0 {
			return nil, util.ErrNoMaterialsMatched
		}
	case len(req.LessonTitles) > 0:
		for _, m := range all {
			for _, title := range req.LessonTitles {
				if title == "" {
					continue
				}
				if containsFold(m.LessonTitle, title) || (m.LessonTitle != "" && containsFold(title, m.LessonTitle)) {
					selected = append(selected, m)
					break
				}
			}
		}
	default:
		selected = all
	}

	if req.MaterialID != "" {
		selected = focusMaterial(selected, all, req.MaterialID)
	}
	return selected, nil
}

func focusMaterial(selected, all []model.QuizMaterial, id string) []model.QuizMaterial {
	for i, m := range selected {
		if m.ID == id {
			if i == 0 {
				return selected
			}
			out := make([]model.QuizMaterial, 0, len(selected))
			out = append(out, m)
			out = append(out, selected[:i]...)
			return append(out, selected[i+1:]...)
		}
	}
	for _, m := range all {
		if m.ID == id {
			return append([]model.QuizMaterial{m}, selected...)
		}
	}
	return selected
}

// EnrichTranscripts 为没有文本的视频资料补充字幕，失败时保持原样
func EnrichTranscripts(ctx context.Context, provider TranscriptProvider, materials []model.QuizMaterial) {
	if provider == nil {
		return
	}
	for i := range materials {
		m := &materials[i]
		if !m.Type.IsVideo() || strings.TrimSpace(m.Content) != "" {
			continue
		}
		videoID := ExtractVideoID(m.URL)
		if videoID == "" {
			continue
		}
		if text, ok := provider.FetchTranscript(ctx, videoID); ok {
			m.Content = text
		}
	}
}

// CheckViability 至少要有一份带文本的资料，或一个可识别视频 ID 的视频资料
func CheckViability(materials []model.QuizMaterial) error {
	for _, m := range materials {
		if strings.TrimSpace(m.Content) != "" {
			return nil
		}
		if m.Type.IsVideo() && ExtractVideoID(m.URL) != "" {
			return nil
		}
	}
	return util.ErrContentUnavailable
}

// SelectMaterials 展开、筛选、补充字幕
func SelectMaterials(ctx context.Context, provider TranscriptProvider, course *model.Course, req MaterialRequest) ([]model.QuizMaterial, error) {
	selected, err := NarrowMaterials(FlattenMaterials(course), req)
	if err != nil {
		return nil, err
	}
	EnrichTranscripts(ctx, provider, selected)
	return selected, nil
}
