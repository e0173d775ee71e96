package discord

import "errors"

var (
	errWebhookRequired = errors.New("discord: webhook URL is required")
)
