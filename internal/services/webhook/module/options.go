package module

import (
	"time"

	"replyguard/internal/platform/config"
)

// Options holds configuration settings for the webhook receiver
type Options struct {
	// ConsumerSecret signs crc responses, falls back to the oauth client secret
	ConsumerSecret  string
	VerifySignature bool
	ProcessTimeout  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	xc := cfg.Prefix("X_")
	wh := cfg.Prefix("WEBHOOK_")
	secret := xc.MayString("API_SECRET", "")
	if secret == "" {
		secret = xc.MayString("CLIENT_SECRET", "")
	}
	return Options{
		ConsumerSecret:  secret,
		VerifySignature: wh.MayBool("VERIFY_SIGNATURE", false),
		ProcessTimeout:  wh.MayDuration("PROCESS_TIMEOUT", 2*time.Minute),
	}
}
