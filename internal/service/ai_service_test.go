package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/maheshrc27/contentpilot/configs"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

// unconfiguredGateway has no API key, so every call takes the
// deterministic fallback path.
func unconfiguredGateway() AIService {
	return NewAIService(cfg.Config{}, nil)
}

func TestGenerateTextMock(t *testing.T) {
	s := unconfiguredGateway()

	text, err := s.GenerateText(context.Background(), &transfer.GenerationRequest{
		BusinessName: "Sunrise Bakery",
		CallToAction: "Visit us today!",
		Platform:     "instagram",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Sunrise Bakery")
	assert.Contains(t, text, "Visit us today!")
}

func TestGenerateTextMockTruncatesToPlatformLimit(t *testing.T) {
	s := unconfiguredGateway()

	text, err := s.GenerateText(context.Background(), &transfer.GenerationRequest{
		BusinessName: strings.Repeat("Very Long Business Name ", 20),
		Platform:     "twitter",
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 280)
}

func TestGenerateTextMockKeepsValidUTF8(t *testing.T) {
	s := unconfiguredGateway()

	text, err := s.GenerateText(context.Background(), &transfer.GenerationRequest{
		BusinessName: strings.Repeat("Café Ménilmontant ", 20),
		Platform:     "twitter",
	})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(text))
	assert.LessOrEqual(t, utf8.RuneCountInString(text), 280)
}

func TestGenerateTextRequiresBusinessName(t *testing.T) {
	s := unconfiguredGateway()

	_, err := s.GenerateText(context.Background(), &transfer.GenerationRequest{})
	assert.Error(t, err)

	_, err = s.GenerateText(context.Background(), nil)
	assert.Error(t, err)
}

func TestGenerateImagePlaceholder(t *testing.T) {
	s := unconfiguredGateway()

	url, err := s.GenerateImage(context.Background(), &transfer.ImageRequest{
		Prompt: "a latte with heart shaped foam art",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://via.placeholder.com/1080x1080/9333ea/ffffff?text="))
}

func TestGenerateImageRequiresPrompt(t *testing.T) {
	s := unconfiguredGateway()

	_, err := s.GenerateImage(context.Background(), &transfer.ImageRequest{})
	assert.Error(t, err)
}

func TestGenerateVideoPlaceholder(t *testing.T) {
	s := unconfiguredGateway()

	url, err := s.GenerateVideo(context.Background(), &transfer.VideoRequest{
		Prompt: "barista pouring espresso in slow motion",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "placeholder://video?description="))
}

func TestGenerateCampaignThemesFallback(t *testing.T) {
	s := unconfiguredGateway()

	themes, err := s.GenerateCampaignThemes(context.Background(), &transfer.GenerationRequest{
		BusinessName: "Sunrise Bakery",
	})
	require.NoError(t, err)
	require.Len(t, themes, models.CampaignTotalPosts)

	seen := make(map[string]struct{})
	for _, theme := range themes {
		assert.NotEmpty(t, theme)
		seen[theme] = struct{}{}
	}
	assert.Len(t, seen, models.CampaignTotalPosts)
}

func TestGenerateSuggestionsMock(t *testing.T) {
	s := unconfiguredGateway()

	suggestions, err := s.GenerateSuggestions(context.Background(), "weekend pastry special")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	for _, suggestion := range suggestions {
		assert.Contains(t, suggestion, "weekend pastry special")
	}
}

func TestGenerateSuggestionsRequiresPrompt(t *testing.T) {
	s := unconfiguredGateway()

	_, err := s.GenerateSuggestions(context.Background(), "")
	assert.Error(t, err)

	_, err = s.GenerateSuggestions(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGenerateImagePromptMock(t *testing.T) {
	s := unconfiguredGateway()

	prompt, err := s.GenerateImagePrompt(context.Background(), "Behind the scenes look", &transfer.GenerationRequest{
		BusinessName: "Sunrise Bakery",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Sunrise Bakery")
	assert.Contains(t, prompt, "Behind the scenes look")
}

func TestParseThemes(t *testing.T) {
	text := "1. First theme\n2) Second theme\n- Third theme\n\n* Fourth theme\n"
	themes := parseThemes(text)
	require.Len(t, themes, 4)
	assert.Equal(t, "First theme", themes[0])
	assert.Equal(t, "Second theme", themes[1])
	assert.Equal(t, "Third theme", themes[2])
	assert.Equal(t, "Fourth theme", themes[3])
}
