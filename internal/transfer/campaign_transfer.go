package transfer

import "time"

type CampaignCreation struct {
	Name           string   `json:"name"`
	BusinessName   string   `json:"business_name"`
	ProductName    string   `json:"product_name"`
	TargetAudience string   `json:"target_audience"`
	BrandTone      string   `json:"brand_tone"`
	KeyMessages    []string `json:"key_messages"`
	CallToAction   string   `json:"call_to_action"`
	Platform       string   `json:"platform"`
	VisualStyle    string   `json:"visual_style"`
	ColorScheme    string   `json:"color_scheme"`
	StartDate      string   `json:"start_date"`
}

// CampaignPost is one generated slot of a campaign before it is persisted.
type CampaignPost struct {
	Content      string
	ImagePrompt  string
	ImageURL     string
	ScheduledFor time.Time
	DayNumber    int
	PostNumber   int
}
