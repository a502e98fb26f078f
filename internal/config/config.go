package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"catalog-crud/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	AppPort                string
	AppName                string
	StoreDriver            string
	MongoURI               string
	MongoDBName            string
	StaticDir              string
	CORSAllowedOrigins     []string
	TraceStdout            bool
	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

// SafeConfig is what gets logged; the Mongo URI may carry credentials.
type SafeConfig struct {
	AppPort                string `json:"app_port"`
	AppName                string `json:"app_name"`
	StoreDriver            string `json:"store_driver"`
	MongoDBName            string `json:"mongo_db_name"`
	StaticDir              string `json:"static_dir"`
	CORSAllowedOrigins     string `json:"cors_allowed_origins"`
	TraceStdout            bool   `json:"trace_stdout"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
}

func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppPort:                c.AppPort,
		AppName:                c.AppName,
		StoreDriver:            c.StoreDriver,
		MongoDBName:            c.MongoDBName,
		StaticDir:              c.StaticDir,
		CORSAllowedOrigins:     strings.Join(c.CORSAllowedOrigins, ","),
		TraceStdout:            c.TraceStdout,
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
	}
}

// toSnake turns AppPort into app_port.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StructAttrs flattens s into attrs keyed by prefix and json tag, e.g.
// StructAttrs("data", cfg) gives data.app_port, data.app_name and so on.
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.Indirect(reflect.ValueOf(s))
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := range t.NumField() {
		attrs = append(attrs, slog.Any(prefix+"."+jsonKey(t.Field(i)), v.Field(i).Interface()))
	}
	return attrs
}

func jsonKey(f reflect.StructField) string {
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" {
		return name
	}
	return toSnake(f.Name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads .env (optional) and the process environment.
func Load() (*Config, error) {
	log := logger.Instance()
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	traceStdout, _ := strconv.ParseBool(os.Getenv("TRACE_STDOUT"))

	cfg := &Config{
		AppPort:                envOr("APP_PORT", "3000"),
		AppName:                envOr("APP_NAME", "catalog-crud"),
		StoreDriver:            strings.ToLower(envOr("STORE_DRIVER", StoreMongo)),
		MongoURI:               os.Getenv("MONGO_URI"),
		MongoDBName:            envOr("MONGO_DB_NAME", "catalog"),
		StaticDir:              os.Getenv("STATIC_DIR"),
		CORSAllowedOrigins:     splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		TraceStdout:            traceStdout,
		RemoteLogHttpURI:       os.Getenv("REMOTE_LOG_HTTP_URI"),
		RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
		RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
	}

	if cfg.RemoteLogHttpURI == "" {
		log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
	}
	if cfg.RemoteTraceRpcURI == "" {
		log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
	}
	if cfg.RemoteProfilingHttpURI == "" {
		log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if c.MongoDBName == "" {
			missing = append(missing, "MONGO_DB_NAME")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

var (
	configInstance *Config
	configOnce     sync.Once
)

func Instance() *Config {
	configOnce.Do(func() {
		log := logger.Instance()
		cfg, err := Load()
		if err != nil {
			log.Error("Invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		configInstance = cfg

		attrs := StructAttrs("data", configInstance.ToSafeConfig())
		anyAttrs := make([]any, len(attrs))
		for i, a := range attrs {
			anyAttrs[i] = a
		}
		log.Info("Configuration loaded successfully", anyAttrs...)
	})

	return configInstance
}
