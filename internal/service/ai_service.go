package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	cfg "github.com/maheshrc27/contentpilot/configs"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/transfer"
	"github.com/maheshrc27/contentpilot/pkg/utils"
)

const generativeAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// Model retried when the configured text model errors, before degrading
// to mock output.
const fallbackTextModel = "gemini-2.5-flash"

const suggestionCount = 3

// Advisory caption limits per platform. Used both in prompts and to
// truncate mock output.
var platformCharLimits = map[string]int{
	"twitter":   280,
	"instagram": 2200,
	"tiktok":    2200,
	"linkedin":  3000,
	"facebook":  5000,
}

// Themes used when no provider is configured or the provider fails.
var fallbackThemes = [models.CampaignTotalPosts]string{
	"Introduce your brand story",
	"Highlight a flagship product",
	"Share a customer success story",
	"Behind the scenes look",
	"Industry tip or insight",
	"Answer a common customer question",
	"Showcase a product feature",
	"Share your team culture",
	"Post a how-to or tutorial",
	"Celebrate a milestone",
	"Run a limited time offer",
	"Share user generated content",
	"Post an inspirational quote",
	"Invite followers to engage",
}

// AIService generates captions, images, and video clips for posts. Image
// and video generation degrade to placeholder URLs instead of failing so
// the campaign pipeline always produces a complete batch.
type AIService interface {
	GenerateText(ctx context.Context, req *transfer.GenerationRequest) (string, error)
	GenerateImage(ctx context.Context, req *transfer.ImageRequest) (string, error)
	GenerateVideo(ctx context.Context, req *transfer.VideoRequest) (string, error)
	GenerateCampaignThemes(ctx context.Context, req *transfer.GenerationRequest) ([]string, error)
	GenerateSuggestions(ctx context.Context, prompt string) ([]string, error)
	GenerateImagePrompt(ctx context.Context, theme string, req *transfer.GenerationRequest) (string, error)
}

type aiService struct {
	config  cfg.Config
	storage StorageService
	client  *http.Client
}

func NewAIService(cfg cfg.Config, storage StorageService) AIService {
	return &aiService{
		config:  cfg,
		storage: storage,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (s *aiService) GenerateText(ctx context.Context, req *transfer.GenerationRequest) (string, error) {
	if req == nil || req.BusinessName == "" {
		err := errors.New("business name is required")
		slog.Info(err.Error())
		return "", err
	}

	prompt := buildTextPrompt(req)

	if s.config.AI.APIKey == "" {
		return mockText(req), nil
	}

	genCfg := &transfer.GeminiGenerationConfig{Temperature: 0.8}
	text, err := s.generateContent(ctx, s.config.AI.TextModel, prompt, genCfg)
	if err != nil && s.config.AI.TextModel != fallbackTextModel {
		slog.Info(err.Error())
		text, err = s.generateContent(ctx, fallbackTextModel, prompt, genCfg)
	}
	if err != nil {
		slog.Info(err.Error())
		return mockText(req), nil
	}
	return strings.TrimSpace(text), nil
}

func (s *aiService) GenerateImage(ctx context.Context, req *transfer.ImageRequest) (string, error) {
	if req == nil || req.Prompt == "" {
		err := errors.New("image prompt is required")
		slog.Info(err.Error())
		return "", err
	}

	if s.config.AI.APIKey == "" {
		return placeholderImageURL(req.Prompt), nil
	}

	raw, err := s.generateImageBytes(ctx, req)
	if err != nil {
		slog.Info(err.Error())
		return placeholderImageURL(req.Prompt), nil
	}

	normalized, err := utils.NormalizeImage(raw)
	if err != nil {
		slog.Info(err.Error())
		return placeholderImageURL(req.Prompt), nil
	}

	fileType, err := filetype.Match(normalized)
	if err != nil {
		slog.Info(err.Error())
		return placeholderImageURL(req.Prompt), nil
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return placeholderImageURL(req.Prompt), nil
	}

	publicURL, err := s.storage.Upload(ctx, id+"."+fileType.Extension, normalized, fileType.MIME.Value)
	if err != nil {
		slog.Info(err.Error())
		return placeholderImageURL(req.Prompt), nil
	}
	return publicURL, nil
}

func (s *aiService) GenerateVideo(ctx context.Context, req *transfer.VideoRequest) (string, error) {
	if req == nil || req.Prompt == "" {
		err := errors.New("video prompt is required")
		slog.Info(err.Error())
		return "", err
	}

	if s.config.AI.APIKey == "" {
		return placeholderVideoURL(req.Prompt), nil
	}

	raw, err := s.generateVideoBytes(ctx, req)
	if err != nil {
		slog.Info(err.Error())
		return placeholderVideoURL(req.Prompt), nil
	}

	encoded, err := utils.TranscodeVideo(ctx, s.config.FFmpegPath, raw)
	if err != nil {
		slog.Info(err.Error())
		return placeholderVideoURL(req.Prompt), nil
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return placeholderVideoURL(req.Prompt), nil
	}

	publicURL, err := s.storage.Upload(ctx, id+".mp4", encoded, "video/mp4")
	if err != nil {
		slog.Info(err.Error())
		return placeholderVideoURL(req.Prompt), nil
	}
	return publicURL, nil
}

func (s *aiService) GenerateCampaignThemes(ctx context.Context, req *transfer.GenerationRequest) ([]string, error) {
	if req == nil || req.BusinessName == "" {
		err := errors.New("business name is required")
		slog.Info(err.Error())
		return nil, err
	}

	if s.config.AI.APIKey == "" {
		return fallbackThemes[:], nil
	}

	prompt := buildThemesPrompt(req)

	text, err := s.generateContent(ctx, s.config.AI.ProModel, prompt, &transfer.GeminiGenerationConfig{Temperature: 0.9})
	if err != nil {
		slog.Info(err.Error())
		text, err = s.generateContent(ctx, s.config.AI.TextModel, prompt, &transfer.GeminiGenerationConfig{Temperature: 0.9})
	}
	if err != nil {
		slog.Info(err.Error())
		return fallbackThemes[:], nil
	}

	themes := parseThemes(text)
	if len(themes) < models.CampaignTotalPosts {
		themes = append(themes, fallbackThemes[len(themes):]...)
	}
	return themes[:models.CampaignTotalPosts], nil
}

func (s *aiService) GenerateSuggestions(ctx context.Context, prompt string) ([]string, error) {
	if strings.TrimSpace(prompt) == "" {
		err := errors.New("prompt is required")
		slog.Info(err.Error())
		return nil, err
	}

	if s.config.AI.APIKey == "" {
		return mockSuggestions(prompt), nil
	}

	text, err := s.generateContent(ctx, s.config.AI.TextModel, buildSuggestionsPrompt(prompt),
		&transfer.GeminiGenerationConfig{Temperature: 0.9})
	if err != nil {
		slog.Info(err.Error())
		return mockSuggestions(prompt), nil
	}

	suggestions := parseLines(text, suggestionCount)
	if len(suggestions) == 0 {
		return mockSuggestions(prompt), nil
	}
	return suggestions, nil
}

func (s *aiService) GenerateImagePrompt(ctx context.Context, theme string, req *transfer.GenerationRequest) (string, error) {
	if req == nil || req.BusinessName == "" {
		err := errors.New("business name is required")
		slog.Info(err.Error())
		return "", err
	}

	if s.config.AI.APIKey == "" {
		return mockImagePrompt(theme, req), nil
	}

	prompt := fmt.Sprintf(
		"Write a single concise image generation prompt for a social media post. Theme: %s. Business: %s. Product: %s. Target audience: %s. Describe the scene, subject, and mood in one sentence. Respond with the prompt only.",
		theme, req.BusinessName, req.ProductName, req.TargetAudience)

	text, err := s.generateContent(ctx, s.config.AI.TextModel, prompt, &transfer.GeminiGenerationConfig{Temperature: 0.7})
	if err != nil {
		slog.Info(err.Error())
		return mockImagePrompt(theme, req), nil
	}
	return strings.TrimSpace(text), nil
}

// generateContent calls the generateContent endpoint and returns the first
// candidate's text.
func (s *aiService) generateContent(ctx context.Context, model, prompt string, genCfg *transfer.GeminiGenerationConfig) (string, error) {
	reqBody := transfer.GeminiRequest{
		Contents: []transfer.GeminiContent{
			{Role: "user", Parts: []transfer.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: genCfg,
	}

	var resp transfer.GeminiResponse
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", generativeAPIBase, model, s.config.AI.APIKey)
	if err := s.post(ctx, endpoint, reqBody, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("provider error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("provider returned no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (s *aiService) generateImageBytes(ctx context.Context, req *transfer.ImageRequest) ([]byte, error) {
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	reqBody := transfer.ImagenRequest{
		Instances: []transfer.ImagenInstance{{Prompt: buildImagePrompt(req)}},
		Parameters: transfer.ImagenParameters{
			SampleCount:    1,
			AspectRatio:    aspectRatio,
			NegativePrompt: "text, watermark, logo, blurry, low quality",
		},
	}

	var resp transfer.ImagenResponse
	endpoint := fmt.Sprintf("%s/models/%s:predict?key=%s", generativeAPIBase, s.config.AI.ImageModel, s.config.AI.APIKey)
	if err := s.post(ctx, endpoint, reqBody, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("provider error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Predictions) == 0 {
		return nil, errors.New("provider returned no predictions")
	}
	return base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
}

func (s *aiService) generateVideoBytes(ctx context.Context, req *transfer.VideoRequest) ([]byte, error) {
	reqBody := transfer.ImagenRequest{
		Instances: []transfer.ImagenInstance{{Prompt: buildVideoPrompt(req)}},
		Parameters: transfer.ImagenParameters{SampleCount: 1},
	}

	var op transfer.VeoOperation
	endpoint := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", generativeAPIBase, s.config.AI.VideoModel, s.config.AI.APIKey)
	if err := s.post(ctx, endpoint, reqBody, &op); err != nil {
		return nil, err
	}
	if op.Error != nil {
		return nil, fmt.Errorf("provider error %d: %s", op.Error.Code, op.Error.Message)
	}

	// Poll the operation until the clip is ready.
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		if err := s.get(ctx, fmt.Sprintf("%s/%s?key=%s", generativeAPIBase, op.Name, s.config.AI.APIKey), &op); err != nil {
			return nil, err
		}
		if op.Error != nil {
			return nil, fmt.Errorf("provider error %d: %s", op.Error.Code, op.Error.Message)
		}
	}

	samples := op.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 {
		return nil, errors.New("provider returned no video samples")
	}
	return s.download(ctx, samples[0].Video.URI)
}

func (s *aiService) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *aiService) get(ctx context.Context, endpoint string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *aiService) download(ctx context.Context, fileURI string) ([]byte, error) {
	sep := "?"
	if strings.Contains(fileURI, "?") {
		sep = "&"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURI+sep+"key="+s.config.AI.APIKey, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func buildTextPrompt(req *transfer.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a social media post for %s.", req.BusinessName)
	if req.ProductName != "" {
		fmt.Fprintf(&b, " Product: %s.", req.ProductName)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(&b, " Target audience: %s.", req.TargetAudience)
	}
	if req.BrandTone != "" {
		fmt.Fprintf(&b, " Brand tone: %s.", req.BrandTone)
	}
	if len(req.KeyMessages) > 0 {
		fmt.Fprintf(&b, " Key messages: %s.", strings.Join(req.KeyMessages, "; "))
	}
	if req.CallToAction != "" {
		fmt.Fprintf(&b, " Call to action: %s.", req.CallToAction)
	}
	if req.IsAdvertisement != nil && *req.IsAdvertisement {
		b.WriteString(" This is a paid advertisement, write promotional copy.")
	}
	if req.AdditionalContext != "" {
		fmt.Fprintf(&b, " Additional context: %s.", req.AdditionalContext)
	}
	if limit, ok := platformCharLimits[strings.ToLower(req.Platform)]; ok {
		fmt.Fprintf(&b, " The post is for %s, keep it under %d characters.", req.Platform, limit)
	}
	b.WriteString(" Include relevant hashtags. Respond with the post text only.")
	return b.String()
}

func buildThemesPrompt(req *transfer.GenerationRequest) string {
	return fmt.Sprintf(
		"Plan a %d-post social media campaign for %s (product: %s, audience: %s, tone: %s). List exactly %d distinct post themes, one per line, without numbering or commentary.",
		models.CampaignTotalPosts, req.BusinessName, req.ProductName, req.TargetAudience, req.BrandTone, models.CampaignTotalPosts)
}

func buildImagePrompt(req *transfer.ImageRequest) string {
	var b strings.Builder
	b.WriteString(req.Prompt)
	if req.VisualStyle != "" {
		fmt.Fprintf(&b, ", %s style", req.VisualStyle)
	}
	if req.ColorScheme != "" {
		fmt.Fprintf(&b, ", %s color palette", req.ColorScheme)
	}
	if req.BusinessContext != "" {
		fmt.Fprintf(&b, ", for %s", req.BusinessContext)
	}
	b.WriteString(", high quality, professional social media photography")
	return b.String()
}

func buildVideoPrompt(req *transfer.VideoRequest) string {
	var b strings.Builder
	b.WriteString(req.Prompt)
	if req.VisualStyle != "" {
		fmt.Fprintf(&b, ", %s style", req.VisualStyle)
	}
	if req.IncludeText != "" {
		fmt.Fprintf(&b, ", with on-screen text: %s", req.IncludeText)
	}
	if req.DurationSeconds > 0 {
		fmt.Fprintf(&b, ", around %d seconds long", req.DurationSeconds)
	}
	return b.String()
}

func buildSuggestionsPrompt(prompt string) string {
	return fmt.Sprintf(
		"Suggest %d ready-to-post social media captions for the following request: %s. Include relevant hashtags. List one caption per line, without numbering or commentary.",
		suggestionCount, prompt)
}

func parseThemes(text string) []string {
	return parseLines(text, models.CampaignTotalPosts)
}

func parseLines(text string, max int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.-*) ")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}
	return lines
}

func mockText(req *transfer.GenerationRequest) string {
	cta := req.CallToAction
	if cta == "" {
		cta = "Learn more today!"
	}
	text := fmt.Sprintf("Discover what %s has to offer! %s #%s",
		req.BusinessName, cta, strings.ReplaceAll(strings.ToLower(req.BusinessName), " ", ""))
	if limit, ok := platformCharLimits[strings.ToLower(req.Platform)]; ok {
		// Platform limits count characters, and slicing bytes could
		// split a rune in a non-ASCII business name.
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return text
}

func mockSuggestions(prompt string) []string {
	return []string{
		fmt.Sprintf("Something new is brewing! %s. Stay tuned and tell us what you think in the comments.", prompt),
		fmt.Sprintf("Behind the scenes: %s. Follow along for the full story!", prompt),
		fmt.Sprintf("%s. Tag a friend who needs to see this!", prompt),
	}
}

func mockImagePrompt(theme string, req *transfer.GenerationRequest) string {
	return fmt.Sprintf("Professional social media photo for %s: %s, clean composition, natural lighting",
		req.BusinessName, theme)
}

func placeholderImageURL(prompt string) string {
	label := prompt
	if len(label) > 30 {
		label = label[:30]
	}
	return "https://via.placeholder.com/1080x1080/9333ea/ffffff?text=" + url.QueryEscape(label)
}

func placeholderVideoURL(prompt string) string {
	return "placeholder://video?description=" + url.QueryEscape(prompt)
}
