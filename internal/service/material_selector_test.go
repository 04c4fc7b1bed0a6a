package service

import (
	"context"
	"testing"

	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonCourse() *model.Course {
	return &model.Course{
		UUIDBase: model.UUIDBase{ID: "c1"},
		Title:    "Onboarding",
		Lessons: []model.Lesson{
			{Title: "Company Policies", Materials: []model.QuizMaterial{
				{ID: "m1", Type: model.MaterialPDF, Title: "Handbook", Content: "leave policy"},
				{ID: "m2", Type: model.MaterialURL, Title: "Intranet", LessonTitle: "Custom"},
			}},
			{Title: "Security Basics", Materials: []model.QuizMaterial{
				{ID: "m3", Type: model.MaterialYouTube, Title: "Phishing", URL: "https://youtu.be/abcdefghijk"},
			}},
		},
	}
}

func ids(ms []model.QuizMaterial) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestFlattenMaterials(t *testing.T) {
	flat := FlattenMaterials(lessonCourse())
	require.Len(t, flat, 3)
	assert.Equal(t, "Company Policies", flat[0].LessonTitle)
	assert.Equal(t, "Custom", flat[1].LessonTitle, "explicit lesson titles are kept")
	assert.Equal(t, "Security Basics", flat[2].LessonTitle)

	c := lessonCourse()
	c.Contents = []model.QuizMaterial{{ID: "flat"}}
	assert.Equal(t, []string{"flat"}, ids(FlattenMaterials(c)), "flat list wins over lessons")

	c.Materials = []model.QuizMaterial{{ID: "primary"}}
	assert.Equal(t, []string{"primary"}, ids(FlattenMaterials(c)))
}

func TestNarrowMaterials(t *testing.T) {
	all := FlattenMaterials(lessonCourse())

	selected, err := NarrowMaterials(all, MaterialRequest{MaterialIDs: []string{"m3", "m1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m3"}, ids(selected))

	_, err = NarrowMaterials(all, MaterialRequest{MaterialIDs: []string{"x"}})
	assert.ErrorIs(t, err, util.ErrNoMaterialsMatched)
	assert.ErrorIs(t, err, util.ErrContentUnavailable)

	selected, err = NarrowMaterials(all, MaterialRequest{LessonTitles: []string{"security"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, ids(selected))

	// 反向包含：请求标题比课时标题更长
	selected, err = NarrowMaterials(all, MaterialRequest{LessonTitles: []string{"Week 1: company policies and more"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids(selected))

	selected, err = NarrowMaterials(all, MaterialRequest{})
	require.NoError(t, err)
	assert.Len(t, selected, 3)
}

func TestNarrowMaterials_Focus(t *testing.T) {
	all := FlattenMaterials(lessonCourse())

	selected, err := NarrowMaterials(all, MaterialRequest{MaterialID: "m3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "m1", "m2"}, ids(selected))

	selected, err = NarrowMaterials(all, MaterialRequest{LessonTitles: []string{"Company"}, MaterialID: "m3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "m1"}, ids(selected), "focus outside the selection is prepended")

	selected, err = NarrowMaterials(all, MaterialRequest{MaterialID: "missing"})
	require.NoError(t, err)
	assert.Len(t, selected, 3)
}

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=x&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=10":                     "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ":              "dQw4w9WgXcQ",
		"https://example.com/video.mp4":                         "",
		"":                                                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractVideoID(in), in)
	}
}

func TestSelectMaterials_EnrichesVideos(t *testing.T) {
	transcripts := &fakeTranscripts{texts: map[string]string{"abcdefghijk": "never click unknown links"}}

	selected, err := SelectMaterials(context.Background(), transcripts, lessonCourse(), MaterialRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"abcdefghijk"}, transcripts.calls, "only textless videos are looked up")
	assert.Equal(t, "never click unknown links", selected[2].Content)

	missing := &fakeTranscripts{}
	selected, err = SelectMaterials(context.Background(), missing, lessonCourse(), MaterialRequest{MaterialIDs: []string{"m3"}})
	require.NoError(t, err)
	assert.Equal(t, "", selected[0].Content)
	assert.NoError(t, CheckViability(selected), "video with an id is viable without a transcript")
}

func TestCheckViability(t *testing.T) {
	assert.ErrorIs(t, CheckViability(nil), util.ErrContentUnavailable)
	assert.ErrorIs(t, CheckViability([]model.QuizMaterial{
		{Type: model.MaterialURL, URL: "https://example.com"},
		{Type: model.MaterialVideo, URL: "https://cdn.example.com/a.mp4"},
	}), util.ErrContentUnavailable)
	assert.NoError(t, CheckViability([]model.QuizMaterial{{Type: model.MaterialPDF, Content: "text"}}))
	assert.NoError(t, CheckViability([]model.QuizMaterial{{Type: "youtube", URL: "https://youtu.be/abcdefghijk"}}))
}
