package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
)

// DefaultSources are the Texas Monthly top-50 barbecue lists, newest first.
const DefaultSources = "2021=https://www.texasmonthly.com/interactive/top-50-bbq-2021/," +
	"2017=https://www.texasmonthly.com/bbq/the-list-the-top-50-barbecue-joints-in-texas/," +
	"2013=https://www.texasmonthly.com/list/the-top-50-barbecue-joints/"

// DefaultSourceProfiles marks the lists that use class-annotated entry markup.
// Years not listed use the generic profile.
const DefaultSourceProfiles = "2021=structural"

// Config holds all run settings, populated from environment variables.
type Config struct {
	Sources      []domain.Source
	FetchTimeout time.Duration
	RequestDelay time.Duration
	UserAgent    string

	OutputPath      string
	ChartPath       string
	MetricsTextfile string
	CityTablePath   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Optional Kafka sink; disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
}

// KafkaEnabled reports whether records are also published to Kafka.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	requestDelay, err := parseDuration("REQUEST_DELAY", "2s", true)
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s", false)
	if err != nil {
		return nil, err
	}

	sources, err := ParseSources(
		sharedcfg.EnvOrDefault("SOURCES", DefaultSources),
		sharedcfg.EnvOrDefault("SOURCE_PROFILES", DefaultSourceProfiles),
	)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		Sources:      sources,
		FetchTimeout: fetchTimeout,
		RequestDelay: requestDelay,
		UserAgent:    os.Getenv("USER_AGENT"),

		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "texas_monthly_bbq_restaurants.csv"),
		ChartPath:       envOrDefaultAllowEmpty("CHART_PATH", "texas_bbq_by_city.png"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		CityTablePath:   os.Getenv("CITY_TABLE_PATH"),

		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "bbq-restaurants"),
	}

	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// ParseSources builds the source list from "year=url,..." and assigns each
// year its profile from "year=profile,...". Order follows the source list.
// Profiles for years without a source are ignored.
func ParseSources(sourcesSpec, profilesSpec string) ([]domain.Source, error) {
	profiles := make(map[string]domain.Profile)
	for _, pair := range splitList(profilesSpec) {
		year, name, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid SOURCE_PROFILES entry %q: want year=profile", pair)
		}
		p, ok := domain.ParseProfile(name)
		if !ok {
			return nil, fmt.Errorf("invalid SOURCE_PROFILES entry %q: unknown profile %q", pair, name)
		}
		profiles[strings.TrimSpace(year)] = p
	}

	var sources []domain.Source
	seen := make(map[string]bool)
	for _, pair := range splitList(sourcesSpec) {
		year, url, ok := strings.Cut(pair, "=")
		year, url = strings.TrimSpace(year), strings.TrimSpace(url)
		if !ok || year == "" || url == "" {
			return nil, fmt.Errorf("invalid SOURCES entry %q: want year=url", pair)
		}
		if seen[year] {
			return nil, fmt.Errorf("invalid SOURCES: year %s listed twice", year)
		}
		seen[year] = true
		sources = append(sources, domain.Source{Year: year, URL: url, Profile: profiles[year]})
	}
	if len(sources) == 0 {
		return nil, errors.New("SOURCES is required")
	}
	return sources, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(name, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

// envOrDefaultAllowEmpty returns the variable when it is set, even to "",
// so operators can disable an output by clearing it.
func envOrDefaultAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
