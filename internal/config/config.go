package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio. Se carga una sola vez
// al inicio (YAML opcional + overrides por entorno); cambiarla requiere
// reiniciar el proceso.
type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// AuthSecret habilita la validación de bearer tokens HS256 en el
		// endpoint RPC. Vacío = auth deshabilitada.
		AuthSecret string `yaml:"auth_secret"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Session struct {
		Driver string        `yaml:"driver"` // memory | redis
		TTL    time.Duration `yaml:"ttl"`
		Redis  struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"session"`

	// Una entrada por plataforma remota.
	Falcon    Platform `yaml:"falcon"`
	SIEM      SIEM     `yaml:"siem"`
	Forensics Platform `yaml:"forensics"`
}

// Platform es la conexión a una plataforma remota. El refresh de tokens
// es responsabilidad de la plataforma/proxy, no de este servicio.
type Platform struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// SIEM agrega a la conexión el timing del poller de search jobs.
type SIEM struct {
	Platform     `yaml:",inline"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Load lee el YAML (si path no está vacío), aplica overrides de entorno y
// defaults. Nunca re-lee en runtime.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8480"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Session.Driver == "" {
		c.Session.Driver = "memory"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 30 * time.Minute
	}
	if c.SIEM.PollInterval <= 0 {
		c.SIEM.PollInterval = 5 * time.Second
	}
	if c.SIEM.Timeout <= 0 {
		c.SIEM.Timeout = 300 * time.Second
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("SERVER_AUTH_SECRET"); ok {
		c.Server.AuthSecret = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := getEnvStr("SESSION_DRIVER"); ok {
		c.Session.Driver = v
	}
	if v, ok := getEnvDur("SESSION_TTL"); ok {
		c.Session.TTL = v
	}
	if v, ok := getEnvStr("SESSION_REDIS_ADDR"); ok {
		c.Session.Redis.Addr = v
	}
	if v, ok := getEnvStr("SESSION_REDIS_PASSWORD"); ok {
		c.Session.Redis.Password = v
	}
	if v, ok := getEnvInt("SESSION_REDIS_DB"); ok {
		c.Session.Redis.DB = v
	}
	if v, ok := getEnvStr("SESSION_REDIS_PREFIX"); ok {
		c.Session.Redis.Prefix = v
	}

	if v, ok := getEnvStr("FALCON_BASE_URL"); ok {
		c.Falcon.BaseURL = v
	}
	if v, ok := getEnvStr("FALCON_TOKEN"); ok {
		c.Falcon.Token = v
	}

	if v, ok := getEnvStr("SIEM_BASE_URL"); ok {
		c.SIEM.BaseURL = v
	}
	if v, ok := getEnvStr("SIEM_TOKEN"); ok {
		c.SIEM.Token = v
	}
	if v, ok := getEnvDur("SIEM_POLL_INTERVAL"); ok {
		c.SIEM.PollInterval = v
	}
	if v, ok := getEnvDur("SIEM_SEARCH_TIMEOUT"); ok {
		c.SIEM.Timeout = v
	}

	if v, ok := getEnvStr("FORENSICS_BASE_URL"); ok {
		c.Forensics.BaseURL = v
	}
	if v, ok := getEnvStr("FORENSICS_TOKEN"); ok {
		c.Forensics.Token = v
	}
}
