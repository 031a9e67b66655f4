package provider

import (
	"net/http"

	"github.com/rs/zerolog"

	"assistant_server/core/port/out"
)

// Config parameterizes the provider set.
type Config struct {
	GoogleCredentialsFile string
	GoogleTokenFile       string
	TimeZone              string
}

// NewProviders builds the provider registry keyed by the names callers use.
func NewProviders(cfg Config, client *http.Client, log zerolog.Logger) map[string]out.CalendarProviderPort {
	return map[string]out.CalendarProviderPort{
		"google":  NewGoogleCalendarAdapter(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, cfg.TimeZone, log),
		"outlook": NewOutlookCalendarAdapter(client, cfg.TimeZone, log),
	}
}
