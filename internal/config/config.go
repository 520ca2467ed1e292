package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"yt-harvester/internal/output"
	"yt-harvester/internal/runstore"
	"yt-harvester/internal/ytdlp"
)

const (
	DefaultPath = "config.yaml"
	EnvPath     = "YT_HARVESTER_CONFIG"
	EnvWorkers  = "YT_HARVESTER_WORKERS"
	EnvYTDLP    = "YT_HARVESTER_YTDLP_PATH"
)

type Config struct {
	Comments   Comments   `yaml:"comments"`
	Output     Output     `yaml:"output"`
	Processing Processing `yaml:"processing"`
	Run        Run        `yaml:"run"`
	Extraction Extraction `yaml:"extraction"`
}

type Comments struct {
	TopN        int    `yaml:"top_n"`
	MaxDownload int    `yaml:"max_download"`
	Sort        string `yaml:"sort"`
}

type Output struct {
	Format      string `yaml:"format"`
	Dir         string `yaml:"dir"`
	CombinedCSV string `yaml:"combined_csv"`
}

type Processing struct {
	Sentiment    bool `yaml:"sentiment"`
	Keywords     bool `yaml:"keywords"`
	KeywordCount int  `yaml:"keyword_count"`
}

type Run struct {
	Workers int `yaml:"workers"`
}

type Extraction struct {
	YTDLPPath           string        `yaml:"ytdlp_path"`
	Timeout             time.Duration `yaml:"timeout"`
	RatePerSecond       float64       `yaml:"rate_per_second"`
	ProxyMode           string        `yaml:"proxy_mode"`
	Proxies             []string      `yaml:"proxies"`
	TranscriptLanguages []string      `yaml:"transcript_languages"`
}

func Default() Config {
	return Config{
		Comments: Comments{
			TopN:        80,
			MaxDownload: 20000,
			Sort:        ytdlp.DefaultCommentSort,
		},
		Output: Output{
			Format:      output.FormatTXT,
			CombinedCSV: "comments.csv",
		},
		Processing: Processing{
			Sentiment:    true,
			Keywords:     true,
			KeywordCount: 10,
		},
		Run: Run{Workers: 4},
		Extraction: Extraction{
			YTDLPPath:           ytdlp.DefaultBinary,
			Timeout:             10 * time.Minute,
			ProxyMode:           ytdlp.ProxyModeOff,
			Proxies:             []string{},
			TranscriptLanguages: slices.Clone(ytdlp.OfficialLanguages),
		},
	}
}

// ResolvePath picks the config file: the explicit path, then $YT_HARVESTER_CONFIG,
// then ./config.yaml.
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path over the defaults. A missing file is not an error. Keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overlays environment overrides. Unparseable values are reported
// and leave the current value in place.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs []error
	if raw := strings.TrimSpace(getenv(EnvWorkers)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWorkers, err))
		} else {
			c.Run.Workers = n
		}
	}
	if raw := strings.TrimSpace(getenv(EnvYTDLP)); raw != "" {
		c.Extraction.YTDLPPath = raw
	}
	return errors.Join(errs...)
}

func (c *Config) normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if strings.TrimSpace(c.Output.CombinedCSV) == "" {
		c.Output.CombinedCSV = "comments.csv"
	}
	if mode, ok := ytdlp.NormalizeProxyMode(c.Extraction.ProxyMode); ok {
		c.Extraction.ProxyMode = mode
	}
	c.Extraction.Proxies = ytdlp.NormalizeProxyList(c.Extraction.Proxies)
	if len(c.Extraction.TranscriptLanguages) == 0 {
		c.Extraction.TranscriptLanguages = slices.Clone(ytdlp.OfficialLanguages)
	}
	if strings.TrimSpace(c.Comments.Sort) == "" {
		c.Comments.Sort = ytdlp.DefaultCommentSort
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Comments.TopN < 0 {
		errs = append(errs, errors.New("comments.top_n must be >= 0"))
	}
	if c.Comments.MaxDownload < 0 {
		errs = append(errs, errors.New("comments.max_download must be >= 0"))
	}
	if c.Processing.KeywordCount < 0 {
		errs = append(errs, errors.New("processing.keyword_count must be >= 0"))
	}
	if c.Run.Workers < 1 {
		errs = append(errs, errors.New("run.workers must be >= 1"))
	}
	if c.Extraction.Timeout < 0 {
		errs = append(errs, errors.New("extraction.timeout must be >= 0"))
	}
	if c.Extraction.RatePerSecond < 0 {
		errs = append(errs, errors.New("extraction.rate_per_second must be >= 0"))
	}
	if !output.ValidFormat(c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format %q is not one of txt, json, csv", c.Output.Format))
	}
	mode, ok := ytdlp.NormalizeProxyMode(c.Extraction.ProxyMode)
	if !ok {
		errs = append(errs, fmt.Errorf("extraction.proxy_mode %q is not one of off, per_worker", c.Extraction.ProxyMode))
	}
	if mode == ytdlp.ProxyModePerWorker && len(c.Extraction.Proxies) < c.Run.Workers {
		errs = append(errs, fmt.Errorf("proxy mode %q requires at least %d proxies for %d workers", ytdlp.ProxyModePerWorker, c.Run.Workers, c.Run.Workers))
	}
	return errors.Join(errs...)
}

// WriteDefault writes the default configuration to path unless a file is
// already there. It reports whether a file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config %s: %w", path, err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("marshal default config: %w", err)
	}
	if err := runstore.WriteBytes(path, data); err != nil {
		return false, err
	}
	return true, nil
}
