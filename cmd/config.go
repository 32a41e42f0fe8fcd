package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "GQLINSPECT"
	defaultTimeout = 30 * time.Second
)

// config is the resolved set of persistent settings. Flags win over
// GQLINSPECT_* environment variables, which win over the config file.
type config struct {
	endpoint      string
	introspection string
	header        http.Header
	timeout       time.Duration
	retries       int
	format        string
	verbose       bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func loadConfig(v *viper.Viper, flags *pflag.FlagSet) (config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	header, err := parseHeaders(headerValues(v, flags))
	if err != nil {
		return config{}, err
	}

	timeout := v.GetDuration("timeout")
	if timeout < 0 {
		return config{}, fmt.Errorf("--timeout must not be negative, got %s", timeout)
	}
	retries := v.GetInt("retries")
	if retries < 0 {
		return config{}, fmt.Errorf("--retries must not be negative, got %d", retries)
	}

	return config{
		endpoint:      v.GetString("endpoint"),
		introspection: v.GetString("introspection"),
		header:        header,
		timeout:       timeout,
		retries:       retries,
		format:        v.GetString("format"),
		verbose:       v.GetBool("verbose"),
	}, nil
}

// headerValues reads headers without letting viper split them on commas or
// whitespace, since header values commonly contain both.
func headerValues(v *viper.Viper, flags *pflag.FlagSet) []string {
	if flags.Changed("header") {
		values, _ := flags.GetStringArray("header")
		return values
	}

	switch raw := v.Get("header").(type) {
	case string:
		return strings.Split(raw, "\n")
	case []string:
		return raw
	case []any:
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			values = append(values, fmt.Sprint(item))
		}
		return values
	case map[string]any:
		values := make([]string, 0, len(raw))
		for key, item := range raw {
			values = append(values, key+": "+fmt.Sprint(item))
		}
		return values
	}
	return nil
}

func parseHeaders(values []string) (http.Header, error) {
	header := http.Header{}
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		key, val, ok := strings.Cut(value, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Key: Value'", value)
		}
		header.Add(strings.TrimSpace(key), strings.TrimSpace(val))
	}
	return header, nil
}
