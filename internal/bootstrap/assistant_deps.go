package bootstrap

import (
	"context"
	"os"
	"time"

	"assistant_server/adapter/out/oracle"
	"assistant_server/adapter/out/provider"
	"assistant_server/config"
	"assistant_server/core/port/out"
	"assistant_server/core/service/event"
	"assistant_server/core/service/meeting"
	"assistant_server/core/service/schedule"
	"assistant_server/core/service/suggestion"
	"assistant_server/pkg/cache"
	"assistant_server/pkg/httputil"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/resilience"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Dependencies holds every wired component of the service.
type Dependencies struct {
	Config *config.Config
	Redis  *redis.Client

	Oracle    out.OraclePort
	Providers map[string]out.CalendarProviderPort

	SuggestionService *suggestion.Service
	MeetingService    *meeting.Service
	EventService      *event.Service
}

// NewDependencies wires adapters and services. Redis is optional: a missing
// or unreachable instance disables caching and shared rate limiting but
// never blocks startup.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Invalid REDIS_URL, continuing without Redis")
		} else {
			redisClient = redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Redis unreachable, continuing without it")
				redisClient.Close()
				redisClient = nil
			}
			cancel()
		}
	}

	oraclePort, err := oracle.NewOracle(oracle.Config{
		Mode:    cfg.OracleMode,
		Model:   cfg.OracleModel,
		BaseURL: cfg.OracleBaseURL,
		APIKey:  cfg.OracleAPIKey,
	}, zlog)
	if err != nil {
		return nil, nil, err
	}

	httpClient := httputil.NewClient(httputil.DefaultClientConfig())
	providers := provider.NewProviders(provider.Config{
		GoogleCredentialsFile: cfg.GoogleCredentialsFile,
		GoogleTokenFile:       cfg.GoogleTokenFile,
		TimeZone:              cfg.DefaultTimezone,
	}, httpClient, zlog)

	assembler, err := schedule.NewAssembler(cfg.TimezoneOffset, cfg.MeetingDuration)
	if err != nil {
		return nil, nil, err
	}
	resolver := &schedule.DateResolver{Policy: schedule.ParseWeekdayPolicy(cfg.WeekdayPolicy)}

	oracleBreaker := resilience.New("oracle")
	calendarBreaker := resilience.New("calendar-provider")

	var suggestions *cache.SuggestionCache
	if redisClient != nil {
		suggestions = cache.NewSuggestionCache(redisClient, cfg.SuggestionCacheTTL)
	}

	deps := &Dependencies{
		Config:            cfg,
		Redis:             redisClient,
		Oracle:            oraclePort,
		Providers:         providers,
		SuggestionService: suggestion.NewService(oraclePort, suggestions, oracleBreaker, cfg.OracleTimeout),
		MeetingService:    meeting.NewService(oraclePort, resolver, assembler, oracleBreaker, cfg.OracleTimeout),
		EventService:      event.NewService(providers, calendarBreaker),
	}

	cleanup := func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}
	return deps, cleanup, nil
}
