package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/spf13/pflag"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/report"
	"github.com/jeffrom/logit/runner"
	"github.com/jeffrom/logit/vcs"
	"github.com/jeffrom/logit/vcs/gitcli"
	"github.com/jeffrom/logit/vcs/gogit"
)

var (
	// overridden by go build -X
	Version string
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return runWithTerminalIO(rawArgs, nil)
}

func runWithTerminalIO(rawArgs []string, termio *config.TerminalIO) error {
	cfg := config.NewWithTerminalIO(nil, termio)

	var help bool
	var version bool
	var cfgFile string
	var printConfig bool
	var readStats bool
	var readAllStats bool
	flags := pflag.NewFlagSet("logit", pflag.ContinueOnError)
	flags.SetOutput(cfg.Term.Stderr)
	flags.SetNormalizeFunc(normalizeFlags)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringArrayVarP(&cfg.Authors, "author", "a", nil, "only keep commits by `name` or email (repeatable)")
	flags.StringArrayVarP(&cfg.TitlePatterns, "title-exp", "t", nil, "regular `expression` extracting titles from commit messages (repeatable, first group wins)")
	flags.Var(&cfg.Cap, "cap", "longest `duration` attributed to a single commit")
	flags.StringVar(&cfg.FirstCommit, "first", cfg.FirstCommit, "earliest commit `mode`: exclude, zero or cap")
	flags.Var(&cfg.MinDuration, "min-duration", "drop entries shorter than `duration`")
	flags.StringVarP(&cfg.Output, "output", "o", "", "output `file` (- for stdout)")
	flags.StringVarP(&cfg.Format, "format", "f", "", "output `format`: csv or xlsx (default from the output extension)")
	flags.StringArrayVar(&cfg.Columns, "column", cfg.Columns, "report `column`s: "+strings.Join(config.Columns, ", "))
	flags.StringVar(&cfg.DurationFormat, "duration-format", cfg.DurationFormat, "duration `format`: "+strings.Join(config.DurationFormats, ", "))
	flags.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "go time `layout` for dates")
	flags.StringVar(&cfg.Timezone, "timezone", "", "render dates in `zone` instead of each commit's offset")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "log reader `name`: "+strings.Join(config.Backends, ", "))
	flags.IntVarP(&cfg.Concurrency, "jobs", "j", cfg.Concurrency, "read `n` repositories at a time")
	flags.BoolVarP(&readStats, "stats", "S", false, "print a summary (with top tens) after writing the report")
	flags.BoolVarP(&readAllStats, "stats-all", "A", false, "print a full summary after writing the report")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}

	if err := mergeConfigFile(&cfg, flags, cfgFile); err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Repos = args
	}
	cfg.SetVerbose(cfg.Verbose)

	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", strings.TrimSuffix(string(b), "\n"))
		return nil
	}
	if cfg.Verbose {
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		cfg.Debugf("config: %s", string(b))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// done setting up config

	formatter, err := report.NewFormatter(cfg)
	if err != nil {
		return err
	}
	repos, err := runner.Discover(cfg.Repos)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		cfg.Warnf("no repositories matched %s", strings.Join(cfg.Repos, " "))
	}
	out, err := report.Open(cfg, cfg.Output, cfg.Format)
	if err != nil {
		return err
	}
	defer out.Close()

	rnr, err := runner.New(cfg, newOpener(cfg))
	if err != nil {
		return err
	}
	ctx := context.Background()

	res, err := rnr.Run(ctx, repos)
	if err != nil {
		return err
	}
	if err := out.Write(formatter, res.Entries); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if res.Skipped != nil && !cfg.Quiet {
		if err := res.Skipped.WriteFailure(cfg.Term.Stderr); err != nil {
			cfg.Errorf("failed to write skipped repositories: %v", err)
		}
	}
	if len(res.Entries) == 0 {
		cfg.Warnf("no commits found for %s", strings.Join(cfg.Authors, ", "))
	}

	if readStats || readAllStats {
		// keep the summary out of a report written to stdout
		w := cfg.Term.Stdout
		if cfg.Output == report.Stdout {
			w = cfg.Term.Stderr
		}
		if err := rnr.Stats(res).TextSummary(w, readAllStats); err != nil {
			return err
		}
	} else if cfg.Output != report.Stdout && cfg.Term.StdoutIsTerminal() {
		cfg.Printf("wrote %d entries to %s", len(res.Entries), cfg.Output)
	}
	return nil
}

// newOpener returns the opener for the configured backend.
func newOpener(cfg config.Config) runner.Opener {
	if cfg.Backend == config.BackendGit {
		return func(ctx context.Context, path string) (vcs.Interface, func(), error) {
			git := gitcli.New(cfg, path)
			return git, git.Cleanup, nil
		}
	}
	return func(ctx context.Context, path string) (vcs.Interface, func(), error) {
		repo, err := gogit.Open(ctx, cfg, path)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}
}

// mergeConfigFile applies logit.yaml beneath any flags set on the command
// line.
func mergeConfigFile(cfg *config.Config, flags *pflag.FlagSet, cfgFile string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fileCfg, err := config.ReadFile(cfgFile, wd)
	if err != nil {
		return err
	}
	if fileCfg == nil {
		return nil
	}
	cfg.Debugf("read config file")

	// flags win over the file, so reset them after the merge.
	flagged := *cfg
	if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
		return err
	}
	var restoreErr error
	flags.Visit(func(fl *pflag.Flag) {
		if err := restoreFlag(cfg, &flagged, fl.Name); err != nil && restoreErr == nil {
			restoreErr = err
		}
	})
	return restoreErr
}

func restoreFlag(cfg, flagged *config.Config, name string) error {
	switch name {
	case "author":
		cfg.Authors = flagged.Authors
	case "title-exp":
		cfg.TitlePatterns = flagged.TitlePatterns
	case "cap":
		cfg.Cap = flagged.Cap
	case "first":
		cfg.FirstCommit = flagged.FirstCommit
	case "min-duration":
		cfg.MinDuration = flagged.MinDuration
	case "output":
		cfg.Output = flagged.Output
	case "format":
		cfg.Format = flagged.Format
	case "column":
		cfg.Columns = flagged.Columns
	case "duration-format":
		cfg.DurationFormat = flagged.DurationFormat
	case "date-format":
		cfg.DateFormat = flagged.DateFormat
	case "timezone":
		cfg.Timezone = flagged.Timezone
	case "backend":
		cfg.Backend = flagged.Backend
	case "jobs":
		cfg.Concurrency = flagged.Concurrency
	case "verbose":
		cfg.Verbose = flagged.Verbose
	case "quiet":
		cfg.Quiet = flagged.Quiet
	case "help", "version", "config", "print-config", "stats", "stats-all":
	default:
		return errors.New("logit: unhandled flag " + name)
	}
	return nil
}

// normalizeFlags keeps the original flag names working.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "start-up-time":
		name = "cap"
	case "title":
		name = "title-exp"
	}
	return pflag.NormalizedName(name)
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [flags] REPO...

Estimates a time sheet from commit history. Each commit by the author is
assumed to have taken the time since their previous commit, in any of the
repositories, up to --cap.

FLAGS
%s

EXAMPLES

# time spent last quarter, as CSV
$ logit --author jeff@example.com -o timesheet.csv ~/src/api ~/src/web

# every repository under ~/src, with ticket numbers as titles
$ logit -a jeff -t '(PROJ-[0-9]+)' -o timesheet.xlsx '~/src/*'

# a 2 hour cap and the first commit of the stream counted as a full cap
$ logit -a jeff --cap 2h --first cap -o - .
`, "logit", flags.FlagUsages())
}
