package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TFMV/dirwalk/internal/logging"
	dirwalk "github.com/TFMV/dirwalk/internal/walk"
)

// Config is the validated configuration handed to the walk engine.
type Config struct {
	Root   string
	Filter dirwalk.FilterConfig
	Sort   bool
	Locale string // Collation locale name; empty means byte order
	Log    logging.Options

	// Watch keeps running after the listing and reports created entries.
	Watch        bool
	WatchTimeout time.Duration
}

// newViper returns a viper instance reading DIRWALK_* variables and, if
// present, a config file.
func newViper(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("dirwalk")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{
		"links", "dirs", "files", "sort", "locale",
		"verbose", "silent", "log-format", "log-file",
		"log-max-size", "log-max-backups", "log-max-age", "log-compress",
		"watch", "watch-timeout",
	} {
		v.BindPFlag(name, flags.Lookup(name))
	}
	return v
}

// readConfigFile loads cfgFile, or $HOME/.dirwalk.yaml when cfgFile is
// empty. A missing default file is not an error.
func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".dirwalk")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// resolveConfig builds a Config from flags, environment and config file.
func resolveConfig(v *viper.Viper, args []string, env dirwalk.LocaleEnv) (Config, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		return Config{}, errors.New("start path must not be empty")
	}

	format, err := logging.ParseFormat(v.GetString("log-format"))
	if err != nil {
		return Config{}, err
	}

	if v.GetBool("watch") && v.GetBool("sort") {
		return Config{}, errors.New("--sort cannot be used with --watch")
	}

	locale := v.GetString("locale")
	if locale == "" {
		locale = env.Name()
	}

	return Config{
		Root:   root,
		Filter: dirwalk.NewFilterConfig(v.GetBool("links"), v.GetBool("dirs"), v.GetBool("files")),
		Sort:   v.GetBool("sort"),
		Locale: locale,
		Log: logging.Options{
			Level:  logging.LevelFromFlags(v.GetBool("verbose"), v.GetBool("silent")),
			Format: format,
			File:   v.GetString("log-file"),
			Rotation: logging.Rotation{
				MaxSize:    v.GetInt("log-max-size"),
				MaxBackups: v.GetInt("log-max-backups"),
				MaxAge:     v.GetInt("log-max-age"),
				Compress:   v.GetBool("log-compress"),
			},
		},
		Watch:        v.GetBool("watch"),
		WatchTimeout: v.GetDuration("watch-timeout"),
	}, nil
}
