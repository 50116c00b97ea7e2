package config

import (
	"log"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AuthBaseURL  string
	StoreBaseURL string

	// DevProxy switches the store base to DevMount, served by the local
	// proxy in cmd/storefront and resolved against StoreOrigin.
	DevProxy         bool
	DevMount         string
	StoreOrigin      string
	DevProxyUpstream string
	DevProxyRewrite  string

	// AppOrigin is the browser app allowed by CORS.
	AppOrigin string

	StorefrontAddr string

	MetricsEnabled     bool
	OTLPEndpoint       string
	OTLPInsecure       bool
	OTELServiceName    string
	OTELServiceVersion string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	if v == "" {
		return def
	}
	return v == "true" || v == "1" || v == "yes"
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		AuthBaseURL:        getenv("XANO_AUTH_BASE", "https://x8ki-letl-twmt.n7.xano.io/api:auth"),
		StoreBaseURL:       getenv("XANO_STORE_BASE", "https://x8ki-letl-twmt.n7.xano.io/api:cctv-gNX"),
		DevProxy:           getenvBool("STORE_DEV_PROXY", false),
		DevMount:           getenv("STORE_DEV_MOUNT", "/api"),
		AppOrigin:          getenv("APP_ORIGIN", "http://localhost:5173"),
		DevProxyUpstream:   getenv("DEV_PROXY_UPSTREAM", "https://x8ki-letl-twmt.n7.xano.io"),
		DevProxyRewrite:    getenv("DEV_PROXY_REWRITE", "/api:cctv-gNX"),
		StorefrontAddr:     getenv("STOREFRONT_ADDR", ":8080"),
		MetricsEnabled:     getenvBool("METRICS_ENABLED", false),
		OTLPEndpoint:       getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		OTLPInsecure:       getenvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELServiceName:    getenv("OTEL_SERVICE_NAME", "beyblade-storefront"),
		OTELServiceVersion: getenv("OTEL_SERVICE_VERSION", "1.0.0"),
	}
	cfg.StoreOrigin = getenv("STORE_ORIGIN", OriginOf(cfg.StorefrontAddr))
	log.Printf("[config] XANO_AUTH_BASE=%s", cfg.AuthBaseURL)
	log.Printf("[config] STORE_BASE=%s (dev proxy=%t)", cfg.StoreBase(), cfg.DevProxy)
	log.Printf("[config] STOREFRONT_ADDR=%s STORE_ORIGIN=%s", cfg.StorefrontAddr, cfg.StoreOrigin)
	return cfg
}

// StoreBase is the base handed to the request builder: the dev mount when
// the local proxy is on, the absolute store URL otherwise.
func (c Config) StoreBase() string {
	if c.DevProxy {
		return c.DevMount
	}
	return c.StoreBaseURL
}

// OriginOf turns a listen address into the origin a local client dials:
// ":8080" and "0.0.0.0:8080" become "http://localhost:8080".
func OriginOf(addr string) string {
	if strings.Contains(addr, "://") {
		return strings.TrimRight(addr, "/")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
