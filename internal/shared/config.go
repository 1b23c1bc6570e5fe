package shared

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HotelsXMLURL    string
	HotelsErrorsURL string
	HotelsXSDURL    string

	FetchTimeout  time.Duration
	FetchRPS      int
	FetchMaxBytes int64

	RedisAddr   string // empty disables the document cache
	RedisPass   string
	RedisDB     int
	DocCacheTTL time.Duration

	PushgatewayURL string // empty disables metrics push
	MetricsJob     string
}

var defaults = map[string]any{
	"APP_ENV":               "prod",
	"LOG_LEVEL":             "warn",
	"HOTELS_XML_URL":        "https://raw.githubusercontent.com/pbattu18/cse445-a4/master/Hotels.xml",
	"HOTELS_ERRORS_XML_URL": "https://raw.githubusercontent.com/pbattu18/cse445-a4/master/HotelsErrors.xml",
	"HOTELS_XSD_URL":        "https://raw.githubusercontent.com/pbattu18/cse445-a4/master/Hotels.xsd",
	"FETCH_TIMEOUT":         "30s",
	"FETCH_RPS":             5,
	"FETCH_MAX_BYTES":       8 << 20,
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"DOC_CACHE_TTL":         "15m",
	"PUSHGATEWAY_URL":       "",
	"METRICS_JOB":           "hotels_xml",
}

// Load reads the configuration from the environment.
func Load() Config {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	c := Config{
		AppEnv:          v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		HotelsXMLURL:    v.GetString("HOTELS_XML_URL"),
		HotelsErrorsURL: v.GetString("HOTELS_ERRORS_XML_URL"),
		HotelsXSDURL:    v.GetString("HOTELS_XSD_URL"),
		FetchTimeout:    positiveDur(v, "FETCH_TIMEOUT"),
		FetchRPS:        positiveInt(v, "FETCH_RPS"),
		FetchMaxBytes:   int64(positiveInt(v, "FETCH_MAX_BYTES")),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPass:       v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		DocCacheTTL:     positiveDur(v, "DOC_CACHE_TTL"),
		PushgatewayURL:  v.GetString("PUSHGATEWAY_URL"),
		MetricsJob:      v.GetString("METRICS_JOB"),
	}
	return c
}

// positiveInt falls back to the default when the env value is unparsable or <= 0.
func positiveInt(v *viper.Viper, k string) int {
	if n := v.GetInt(k); n > 0 {
		return n
	}
	log.Warn().Str("key", k).Str("value", v.GetString(k)).Msg("invalid value, using default")
	return defaults[k].(int)
}

func positiveDur(v *viper.Viper, k string) time.Duration {
	if d := v.GetDuration(k); d > 0 {
		return d
	}
	log.Warn().Str("key", k).Str("value", v.GetString(k)).Msg("invalid duration, using default")
	d, _ := time.ParseDuration(defaults[k].(string))
	return d
}
