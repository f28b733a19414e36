package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type AI struct {
	APIKey     string
	TextModel  string
	ProModel   string
	ImageModel string
	VideoModel string
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	R2                 R2
	AI                 AI
	SecretKey          string
	CookieName         string
	AdminEmail         string
	AdminPasswordHash  string
	FFmpegPath         string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", "127.0.0.1:6379"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", "contentpilot-media"),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		AI: AI{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			TextModel:  getEnv("AI_TEXT_MODEL", "gemini-2.5-flash"),
			ProModel:   getEnv("AI_PRO_MODEL", "gemini-2.5-pro"),
			ImageModel: getEnv("AI_IMAGE_MODEL", "imagen-4.0-generate-001"),
			VideoModel: getEnv("AI_VIDEO_MODEL", "veo-3.0-fast-generate-001"),
		},
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "contentpilot_session"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
