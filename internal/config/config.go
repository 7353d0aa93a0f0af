package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes environment overrides, e.g. MYCV_OUTPUTDIR.
const EnvPrefix = "MYCV"

type Config struct {
	SiteTitle string        `mapstructure:"siteTitle"`
	OutputDir string        `mapstructure:"outputDir"`
	BaseURL   string        `mapstructure:"baseURL"`
	Port      int           `mapstructure:"port"`
	Gallery   GalleryConfig `mapstructure:"gallery"`
	Projects  ProjectConfig `mapstructure:"projects"`
}

type GalleryConfig struct {
	// Manifest is an optional YAML file replacing the built-in image list.
	Manifest string `mapstructure:"manifest"`
	Prefix   string `mapstructure:"prefix"`
}

type ProjectConfig struct {
	// Recent are the slugs featured on the home page.
	Recent []string `mapstructure:"recent"`
	// Normalize are the slugs whose gallery files get 3-digit names.
	Normalize []string `mapstructure:"normalize"`
	// Relink lists exact link rewrites applied to RelinkFiles.
	Relink      []LinkRewrite `mapstructure:"relink"`
	RelinkFiles []string      `mapstructure:"relinkFiles"`
	Archive     string        `mapstructure:"archive"`
	Inbox       string        `mapstructure:"inbox"`
}

type LinkRewrite struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("siteTitle", "Gino Wong")
	v.SetDefault("port", 1313)
	v.SetDefault("gallery.manifest", "")
	v.SetDefault("gallery.prefix", "images/")
	v.SetDefault("projects.recent", []string{})
	v.SetDefault("projects.normalize", []string{})
	v.SetDefault("projects.relinkFiles", []string{"index.html", "work.html"})
	v.SetDefault("projects.archive", "images.zip")
	v.SetDefault("projects.inbox", "inbox/images_raw")
}

// Load reads cfgFile (or ./config.yaml when empty) over the defaults and
// applies MYCV_* environment overrides. A missing default config file is
// not an error; a missing explicit one is. The returned string is the file
// used, "" when none.
func Load(cfgFile string) (Config, string, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, used, nil
}

// LoadParams reads path as a raw map for templates' .Params. An empty path
// yields an empty map.
func LoadParams(path string) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	if path == "" {
		return params, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}
	return params, nil
}
