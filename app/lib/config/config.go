package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golangci/submission-evaluator/app/lib/fetchers"
	"github.com/golangci/submission-evaluator/app/lib/mailer"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is stripped from environment variables: EVAL_EMAIL_HOST sets email_host.
const EnvPrefix = "EVAL_"

const DefaultSubjectMarker = "Project Submission"

type Config struct {
	EmailHost string `koanf:"email_host"`
	SMTPHost  string `koanf:"smtp_host"`
	EmailUser string `koanf:"email_user"`
	EmailPass string `koanf:"email_pass"`

	Mailbox       string `koanf:"mailbox"`
	SubjectMarker string `koanf:"subject_marker"`
	ReportsDir    string `koanf:"reports_dir"`
	WorkspaceDir  string `koanf:"workspace_dir"`
	CloneBackend  string `koanf:"clone_backend"`

	MailTransport  string `koanf:"mail_transport"`
	SendGridAPIKey string `koanf:"sendgrid_api_key"`

	PollInterval time.Duration `koanf:"poll_interval"`
	LogLevel     string        `koanf:"log_level"`
	MetricsAddr  string        `koanf:"metrics_addr"`

	StateAPIURL string `koanf:"state_api_url"`
	GithubToken string `koanf:"github_token"`

	MinioEndpoint  string `koanf:"minio_endpoint"`
	MinioAccessKey string `koanf:"minio_access_key"`
	MinioSecretKey string `koanf:"minio_secret_key"`
	MinioBucket    string `koanf:"minio_bucket"`
	MinioUseSSL    bool   `koanf:"minio_use_ssl"`

	MixpanelToken   string `koanf:"mixpanel_token"`
	AmplitudeAPIKey string `koanf:"amplitude_api_key"`
}

func Default() *Config {
	return &Config{
		Mailbox:       "INBOX",
		SubjectMarker: DefaultSubjectMarker,
		ReportsDir:    filepath.Join("docs", "hackathon"),
		WorkspaceDir:  filepath.Join(os.TempDir(), "submission-evaluator", "repo"),
		CloneBackend:  fetchers.BackendGit,
		MailTransport: mailer.TransportSMTP,
		PollInterval:  time.Minute,
		LogLevel:      "info",
		MinioBucket:   "reports",
	}
}

// Load reads .env (if any), then the optional YAML file at path, then EVAL_*
// environment variables; later sources win. The result isn't validated.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "can't load .env")
		}
	}

	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "can't read config file %s", path)
		}
		if err = k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "can't parse config file %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "can't load environment")
	}

	cfg := Default()
	if err = k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal config")
	}

	return cfg, nil
}

// Validate reports every missing or invalid setting in one error.
func (c Config) Validate() error {
	var missing []string
	required := []struct {
		key, value string
	}{
		{"email_host", c.EmailHost},
		{"smtp_host", c.SMTPHost},
		{"email_user", c.EmailUser},
		{"email_pass", c.EmailPass},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if c.MailTransport == mailer.TransportSendGrid && c.SendGridAPIKey == "" {
		missing = append(missing, "sendgrid_api_key")
	}

	var problems []string
	if len(missing) != 0 {
		problems = append(problems, "missing settings: "+strings.Join(missing, ", "))
	}
	if c.MailTransport != mailer.TransportSMTP && c.MailTransport != mailer.TransportSendGrid {
		problems = append(problems, "unknown mail_transport "+c.MailTransport)
	}
	if err := c.ValidateAnalysis(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) != 0 {
		return errors.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}

	return nil
}

// ValidateAnalysis checks only what evaluating a repository without mail needs.
func (c Config) ValidateAnalysis() error {
	if _, err := fetchers.New(c.CloneBackend); err != nil {
		return err
	}
	if c.WorkspaceDir == "" {
		return errors.New("empty workspace_dir")
	}
	return nil
}
