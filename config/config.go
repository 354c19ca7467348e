package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Verbose bool `json:"verbose,omitempty"`
	Quiet   bool `json:"quiet,omitempty"`

	Repos         []string `json:"repos,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	TitlePatterns []string `json:"title_patterns,omitempty"`

	// Cap is the longest duration attributed to a single commit.
	Cap         Duration `json:"cap,omitempty"`
	FirstCommit string   `json:"first_commit,omitempty"`
	MinDuration Duration `json:"min_duration,omitempty"`

	Output         string   `json:"output,omitempty"`
	Format         string   `json:"format,omitempty"`
	Columns        []string `json:"columns,omitempty"`
	DurationFormat string   `json:"duration_format,omitempty"`
	DateFormat     string   `json:"date_format,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`

	Backend     string `json:"backend,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`

	Term TerminalIO         `json:"-"`
	Log  logrus.FieldLogger `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	if cfg.Log == nil {
		cfg.Log = NewLogger(cfg.Term, cfg.Verbose)
	}
	return cfg
}

// NewLogger returns the diagnostics logger, writing to the terminal's stderr.
func NewLogger(term TerminalIO, verbose bool) *logrus.Logger {
	out := term.Stderr
	if out == nil {
		out = os.Stderr
	}
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	return &logrus.Logger{
		Out: out,
		Formatter: &logrus.TextFormatter{
			DisableTimestamp: true,
		},
		Hooks: logrus.LevelHooks{},
		Level: level,
	}
}

// SetVerbose toggles debug logging, if the logger supports levels.
func (c *Config) SetVerbose(verbose bool) {
	c.Verbose = verbose
	if l, ok := c.Log.(*logrus.Logger); ok {
		if verbose {
			l.SetLevel(logrus.DebugLevel)
		} else {
			l.SetLevel(logrus.InfoLevel)
		}
	}
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	c.logger().Errorf(msg, args...)
}

func (c Config) Warnf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	c.logger().Warnf(msg, args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.logger().Debugf(msg, args...)
}

func (c Config) logger() logrus.FieldLogger {
	if c.Log == nil {
		return NewLogger(c.Term, c.Verbose)
	}
	return c.Log
}

// Location returns the time zone report dates are rendered in. A nil
// location means each commit's own offset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) Validate() error {
	if len(c.Authors) == 0 {
		return errors.New("config: at least one author is required")
	}
	for _, author := range c.Authors {
		if strings.TrimSpace(author) == "" {
			return errors.New("config: author can't be blank")
		}
	}
	if c.Output == "" {
		return errors.New("config: output path is required")
	}
	if len(c.Repos) == 0 {
		return errors.New("config: at least one repository is required")
	}
	if c.Cap <= 0 {
		return fmt.Errorf("config: cap must be positive, got %s", c.Cap)
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("config: min duration can't be negative, got %s", c.MinDuration)
	}
	if !oneOf(c.FirstCommit, FirstCommitModes) {
		return fmt.Errorf("config: unknown first commit mode %q (expected one of %s)", c.FirstCommit, strings.Join(FirstCommitModes, ", "))
	}
	if c.Format != "" && !oneOf(c.Format, Formats) {
		return fmt.Errorf("config: unknown format %q (expected one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if len(c.Columns) == 0 {
		return errors.New("config: at least one column is required")
	}
	for _, col := range c.Columns {
		if !oneOf(col, Columns) {
			return fmt.Errorf("config: unknown column %q (expected one of %s)", col, strings.Join(Columns, ", "))
		}
	}
	if !oneOf(c.DurationFormat, DurationFormats) {
		return fmt.Errorf("config: unknown duration format %q (expected one of %s)", c.DurationFormat, strings.Join(DurationFormats, ", "))
	}
	if c.DateFormat == "" {
		return errors.New("config: date format can't be empty")
	}
	if !oneOf(c.Backend, Backends) {
		return fmt.Errorf("config: unknown backend %q (expected one of %s)", c.Backend, strings.Join(Backends, ", "))
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for _, pat := range c.TitlePatterns {
		if _, err := regexp.Compile(pat); err != nil {
			return fmt.Errorf("config: invalid title pattern %q: %w", pat, err)
		}
	}
	return nil
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
