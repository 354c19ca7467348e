package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// FileName is the config file searched for from the working directory up.
const FileName = "logit.yaml"

// ReadFile reads the config file at p. If p is empty, logit.yaml is looked up
// from dir towards the filesystem root. It returns nil if nothing was found.
func ReadFile(p string, dir string) (*Config, error) {
	if p != "" {
		return parseFile(p)
	}

	for {
		candPath := filepath.Join(dir, FileName)
		cfg, err := parseFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				parent := filepath.Dir(filepath.Clean(dir))
				if parent == dir {
					break
				}
				dir = parent
				continue
			}
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}

func parseFile(p string) (*Config, error) {
	b, err := ioutil.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", p, err)
	}
	return cfg, nil
}
