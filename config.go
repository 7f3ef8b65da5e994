package gocriteria

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a Repository. It can be embedded into a
// service configuration file:
//
//	pagination:
//	  default_per_page: 20
//	  max_per_page: 200
//	  between_mode: per_criterion
//	  count_subquery: false
//	  qualify_mode: alias_dot
type Config struct {
	// DefaultPerPage page size of freshly created pagers.
	DefaultPerPage int `yaml:"default_per_page" json:"defaultPerPage"`
	// MaxPerPage upper bound for any page size set on created pagers.
	MaxPerPage int `yaml:"max_per_page" json:"maxPerPage"`
	// BetweenMode source of between bounds for parallel keys/operators/values input.
	BetweenMode BetweenMode `yaml:"between_mode" json:"betweenMode"`
	// CountSubquery see WithCountSubquery. Keep it off unless counts are wrong.
	CountSubquery bool `yaml:"count_subquery" json:"countSubquery"`
	// QualifyMode selects how filter and sort names are checked for an existing alias.
	QualifyMode QualifyMode `yaml:"qualify_mode" json:"qualifyMode"`
}

func DefaultConfig() Config {
	return Config{
		DefaultPerPage: DefaultPerPage,
		MaxPerPage:     MaxPerPage,
		BetweenMode:    BetweenLeadingValues,
		CountSubquery:  false,
		QualifyMode:    QualifyAliasDot,
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxPerPage <= 0 {
		return fmt.Errorf("%w: max_per_page must be positive, got %d", ErrInvalidConfig, c.MaxPerPage)
	}

	if c.DefaultPerPage != NoLimit && (c.DefaultPerPage <= 0 || c.DefaultPerPage > c.MaxPerPage) {
		return fmt.Errorf(
			"%w: default_per_page must be within [1, %d] or %d, got %d",
			ErrInvalidConfig, c.MaxPerPage, NoLimit, c.DefaultPerPage,
		)
	}

	if !c.BetweenMode.Valid() {
		return fmt.Errorf("%w: unknown between_mode '%s'", ErrInvalidConfig, c.BetweenMode)
	}

	if !c.QualifyMode.Valid() {
		return fmt.Errorf("%w: unknown qualify_mode '%s'", ErrInvalidConfig, c.QualifyMode)
	}

	return nil
}
