package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host              string            `yaml:"host"`
		SshPort           int               `yaml:"sshPort"`
		HttpPort          int               `yaml:"httpPort"`
		WithJournald      bool              `yaml:"withJournald"`
		WithPprof         bool              `yaml:"withPprof"`
		WithDemoArchive   bool              `yaml:"withDemoArchive"`
		ArchiveBaseURL    string            `yaml:"archiveBaseUrl"`
		ArchiveToken      string            `yaml:"archiveToken"`
		RequestTimeoutSec int               `yaml:"requestTimeoutSec"`
		Timezone          string            `yaml:"timezone"`
		AuthorizedKeys    []string          `yaml:"authorizedKeys"`
		WebAccounts       map[string]string `yaml:"webAccounts"`
		RateLimit         float64           `yaml:"rateLimit"`
		RateBurst         int               `yaml:"rateBurst"`
	} `yaml:"conf"`
}

// ReadConf loads the embedded defaults, then config.yaml (working directory
// first, then the user config dir), then LETTERDESK_* environment variables.
func ReadConf() (*AppConfig, error) {
	c := &AppConfig{}
	if err := yaml.Unmarshal(embeddedConfig, c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}

	path := ResolveFilePath("config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
		return nil
	}
	flag := func(key string, dst *bool) error {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
		return nil
	}

	str("LETTERDESK_HOST", &c.Conf.Host)
	str("LETTERDESK_ARCHIVE_URL", &c.Conf.ArchiveBaseURL)
	str("LETTERDESK_ARCHIVE_TOKEN", &c.Conf.ArchiveToken)
	str("LETTERDESK_TIMEZONE", &c.Conf.Timezone)
	if v, ok := lookup("LETTERDESK_AUTHORIZED_KEYS"); ok {
		c.Conf.AuthorizedKeys = strings.Split(v, "\n")
	}
	if v, ok := lookup("LETTERDESK_WEB_ACCOUNTS"); ok {
		accounts, err := parseAccounts(v)
		if err != nil {
			return fmt.Errorf("invalid LETTERDESK_WEB_ACCOUNTS: %w", err)
		}
		c.Conf.WebAccounts = accounts
	}
	for key, dst := range map[string]*int{
		"LETTERDESK_SSHPORT":         &c.Conf.SshPort,
		"LETTERDESK_HTTPPORT":        &c.Conf.HttpPort,
		"LETTERDESK_REQUEST_TIMEOUT": &c.Conf.RequestTimeoutSec,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*bool{
		"LETTERDESK_WITH_JOURNALD":     &c.Conf.WithJournald,
		"LETTERDESK_WITH_PPROF":        &c.Conf.WithPprof,
		"LETTERDESK_WITH_DEMO_ARCHIVE": &c.Conf.WithDemoArchive,
	} {
		if err := flag(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// parseAccounts reads "user:password" pairs separated by commas.
func parseAccounts(v string) (map[string]string, error) {
	accounts := map[string]string{}
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, pass, ok := strings.Cut(pair, ":")
		if !ok || user == "" || pass == "" {
			return nil, fmt.Errorf("expected user:password, got %q", pair)
		}
		accounts[user] = pass
	}
	return accounts, nil
}

// Location returns the zone letter timestamps are displayed in.
func (c *AppConfig) Location() *time.Location {
	tz := strings.TrimSpace(c.Conf.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to local time: %v", tz, err)
		return time.Local
	}
	return loc
}

func (c *AppConfig) RequestTimeout() time.Duration {
	if c.Conf.RequestTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Conf.RequestTimeoutSec) * time.Second
}
