package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var profileLog = logger.New("cli:profile")

// DefaultProfileFile is the project-level configuration file searched for in
// the working directory when --profile is not given.
const DefaultProfileFile = ".ignition-lint.yml"

// Profile holds the optional project-level configuration. Every field has a
// flag counterpart; explicitly set flags win over the profile.
type Profile struct {
	Mode            string   `yaml:"mode"`
	Severity        string   `yaml:"severity"`
	IgnoreFile      string   `yaml:"ignore-file"`
	IgnoredCodes    []string `yaml:"ignored-codes"`
	ComponentNaming string   `yaml:"component-naming"`
	ParameterNaming string   `yaml:"parameter-naming"`
	NamingRegex     string   `yaml:"naming-regex"`
	AllowAcronyms   bool     `yaml:"allow-acronyms"`
	Workers         int      `yaml:"workers"`
}

// LoadProfile reads and parses a profile file. When path is empty the default
// file is tried and a missing file is not an error; an explicit path must
// exist.
func LoadProfile(path string) (*Profile, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultProfileFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			profileLog.Printf("No profile file at %s, using defaults", path)
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	profileLog.Printf("Loaded profile from %s", path)
	return &profile, nil
}
