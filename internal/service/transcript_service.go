package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/pkg/logger"
	"hr_learning_backend/pkg/monitoring"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	transcriptKeyPrefix = "transcript:"
	// 取不到字幕时的占位值，短期缓存避免反复请求
	transcriptMissing = "\x00missing"
	missingTTL        = 10 * time.Minute
)

type transcriptPayload struct {
	Text     string `json:"text"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
}

// TranscriptService 通过 HTTP 字幕服务取字幕，并用 redis 缓存
type TranscriptService struct {
	BaseURL string
	Client  *http.Client
	Cache   *redis.Client
	TTL     time.Duration
}

func NewTranscriptService(cfg config.TranscriptConfig, cache *redis.Client) *TranscriptService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranscriptService{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Cache:   cache,
		TTL:     ttl,
	}
}

func (s *TranscriptService) FetchTranscript(ctx context.Context, videoID string) (string, bool) {
	if videoID == "" || s.BaseURL == "" {
		return "", false
	}

	key := transcriptKeyPrefix + videoID
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, key).Result()
		switch {
		case err == nil && cached == transcriptMissing:
			monitoring.TranscriptFetchCounter.WithLabelValues("cached_miss").Inc()
			return "", false
		case err == nil:
			monitoring.TranscriptFetchCounter.WithLabelValues("cached").Inc()
			return cached, true
		case err != redis.Nil:
			logger.Log.Warn("Transcript cache read failed", zap.String("video_id", videoID), zap.Error(err))
		}
	}

	text, err := s.fetch(ctx, videoID)
	if err != nil {
		monitoring.TranscriptFetchCounter.WithLabelValues("failed").Inc()
		logger.Log.Warn("Transcript fetch failed", zap.String("video_id", videoID), zap.Error(err))
		s.store(ctx, key, transcriptMissing, missingTTL)
		return "", false
	}
	monitoring.TranscriptFetchCounter.WithLabelValues("fetched").Inc()
	s.store(ctx, key, text, s.TTL)
	return text, true
}

func (s *TranscriptService) store(ctx context.Context, key, value string, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log.Warn("Transcript cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *TranscriptService) fetch(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s/transcripts/%s", s.BaseURL, url.PathEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcript provider returned %d: %s", resp.StatusCode, string(body))
	}

	var payload transcriptPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" && len(payload.Segments) > 0 {
		parts := make([]string, 0, len(payload.Segments))
		for _, seg := range payload.Segments {
			if t := strings.TrimSpace(seg.Text); t != "" {
				parts = append(parts, t)
			}
		}
		text = strings.Join(parts, " ")
	}
	if text == "" {
		return "", fmt.Errorf("empty transcript")
	}
	return text, nil
}
