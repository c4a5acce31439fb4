package config

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPort               = "3007"
	DefaultWhatsAppServiceURL = "http://localhost:3006"
	DefaultOllamaHost         = "http://localhost:11434"
	DefaultOllamaModel        = "llama2"
	DefaultIntervalMs         = 60 * 60 * 1000
	DefaultLeadTimeoutMs      = 30 * 1000
	DefaultHTTPTimeoutMs      = 15 * 1000
	DefaultLockTTLMs          = 2 * 60 * 1000
	DefaultCORSOrigin         = "http://localhost:5173"

	RulesSourceStatic   = "static"
	RulesSourceDatabase = "database"
)

// FollowUpConfig é lido de FOLLOWUP_INTERVAL_MS, FOLLOWUP_CONCURRENCY etc.
type FollowUpConfig struct {
	IntervalMs    int    `envconfig:"INTERVAL_MS"`
	LeadTimeoutMs int    `envconfig:"LEAD_TIMEOUT_MS"`
	HTTPTimeoutMs int    `envconfig:"HTTP_TIMEOUT_MS"`
	Concurrency   int    `envconfig:"CONCURRENCY"`
	RulesSource   string `envconfig:"RULES_SOURCE"`
	LockTTLMs     int    `envconfig:"LOCK_TTL_MS"`
}

type Configuration struct {
	Port               string `envconfig:"PORT"`
	DatabaseURL        string `envconfig:"DATABASE_URL"`
	RedisAddr          string `envconfig:"REDIS_ADDR"`
	RabbitMQURL        string `envconfig:"RABBITMQ_URL"`
	WhatsAppServiceURL string `envconfig:"WHATSAPP_SERVICE_URL"`
	OllamaHost         string `envconfig:"OLLAMA_HOST"`
	OllamaModel        string `envconfig:"OLLAMA_MODEL"`
	CORSOrigin         string `envconfig:"CORS_ORIGIN"`
	LogLevel           string `envconfig:"LOG_LEVEL"`
	LogFormat          string `envconfig:"LOG_FORMAT"`

	FollowUp FollowUpConfig `envconfig:"FOLLOWUP"`
}

// Load lê as variáveis de ambiente (sem prefixo) e aplica os defaults.
func Load() (*Configuration, error) {
	var cnf Configuration
	if err := envconfig.Process("", &cnf); err != nil {
		return nil, err
	}
	if err := cnf.validateAndAddDefaults(); err != nil {
		return nil, err
	}
	return &cnf, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	cnf.DatabaseURL = strings.TrimSpace(cnf.DatabaseURL)
	if cnf.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	cnf.Port = strings.TrimSpace(cnf.Port)
	if cnf.Port == "" {
		cnf.Port = DefaultPort
	}
	if cnf.WhatsAppServiceURL == "" {
		cnf.WhatsAppServiceURL = DefaultWhatsAppServiceURL
	}
	if cnf.OllamaHost == "" {
		cnf.OllamaHost = DefaultOllamaHost
	}
	if cnf.OllamaModel == "" {
		cnf.OllamaModel = DefaultOllamaModel
	}
	if cnf.CORSOrigin == "" {
		cnf.CORSOrigin = DefaultCORSOrigin
	}

	f := &cnf.FollowUp
	if f.IntervalMs <= 0 {
		f.IntervalMs = DefaultIntervalMs
	}
	if f.LeadTimeoutMs <= 0 {
		f.LeadTimeoutMs = DefaultLeadTimeoutMs
	}
	if f.HTTPTimeoutMs <= 0 {
		f.HTTPTimeoutMs = DefaultHTTPTimeoutMs
	}
	if f.Concurrency <= 0 {
		f.Concurrency = 1
	}
	if f.LockTTLMs <= 0 {
		f.LockTTLMs = DefaultLockTTLMs
	}

	f.RulesSource = strings.ToLower(strings.TrimSpace(f.RulesSource))
	switch f.RulesSource {
	case "":
		f.RulesSource = RulesSourceStatic
	case RulesSourceStatic, RulesSourceDatabase:
	default:
		return errors.New("FOLLOWUP_RULES_SOURCE must be static or database")
	}

	return nil
}

func (f FollowUpConfig) Interval() time.Duration {
	return time.Duration(f.IntervalMs) * time.Millisecond
}

func (f FollowUpConfig) LeadTimeout() time.Duration {
	return time.Duration(f.LeadTimeoutMs) * time.Millisecond
}

func (f FollowUpConfig) HTTPTimeout() time.Duration {
	return time.Duration(f.HTTPTimeoutMs) * time.Millisecond
}

func (f FollowUpConfig) LockTTL() time.Duration {
	return time.Duration(f.LockTTLMs) * time.Millisecond
}

// NewLogger monta o logger do processo a partir de LOG_LEVEL/LOG_FORMAT.
func (cnf *Configuration) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cnf.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cnf.LogFormat, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
