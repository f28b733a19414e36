package transfer

type PostCreation struct {
	Content      string   `json:"content"`
	Platforms    []string `json:"platforms"`
	ImageURL     string   `json:"image_url"`
	VideoURL     string   `json:"video_url"`
	ScheduledFor string   `json:"scheduled_for"`
	AIGenerated  bool     `json:"ai_generated"`
}

type PostRejection struct {
	PostID int64  `json:"post_id"`
	Reason string `json:"reason"`
}

// GenerationRequest carries the brand parameters every gateway prompt is
// built from.
type GenerationRequest struct {
	BusinessName      string   `json:"business_name"`
	ProductName       string   `json:"product_name"`
	TargetAudience    string   `json:"target_audience"`
	BrandTone         string   `json:"brand_tone"`
	KeyMessages       []string `json:"key_messages"`
	CallToAction      string   `json:"call_to_action"`
	Platform          string   `json:"platform"`
	IsAdvertisement   *bool    `json:"is_advertisement"`
	AdditionalContext string   `json:"additional_context"`
}

type ImageRequest struct {
	Prompt          string `json:"prompt"`
	VisualStyle     string `json:"visual_style"`
	ColorScheme     string `json:"color_scheme"`
	AspectRatio     string `json:"aspect_ratio"`
	BusinessContext string `json:"business_context"`
}

type VideoRequest struct {
	Prompt          string `json:"prompt"`
	DurationSeconds int    `json:"duration_seconds"`
	VisualStyle     string `json:"visual_style"`
	IncludeText     string `json:"include_text"`
	BusinessContext string `json:"business_context"`
}

// AIGeneration is the request body of POST /api/ai/generate.
type AIGeneration struct {
	GenerationRequest
	GenerateImage bool   `json:"generate_image"`
	VisualStyle   string `json:"visual_style"`
	ColorScheme   string `json:"color_scheme"`
}

type SuggestionRequest struct {
	Prompt string `json:"prompt"`
}
