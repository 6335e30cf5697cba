// Package config resolves server settings from flags with environment
// fallbacks.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	LogLevel       log.Level
	Strict         bool
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load parses args (without the program name). Environment variables supply
// the defaults, flags override them.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("CHESS_ALLOWED_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	strict := fs.Bool("strict", getenvBool("CHESS_STRICT", false), "reject moves that leave the mover's king in check")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, ok := levels[strings.ToLower(*level)]
	if !ok {
		return Config{}, fmt.Errorf("invalid log level %q", *level)
	}
	return Config{
		Addr:           *addr,
		AllowedOrigins: splitCSV(*origins),
		LogLevel:       lvl,
		Strict:         *strict,
	}, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
