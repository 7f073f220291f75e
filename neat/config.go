package neat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for the NEAT algorithm.
type Config struct {
	Neat         NeatConfig         `yaml:"neat" toml:"neat"`
	Genome       GenomeConfig       `yaml:"genome" toml:"genome"`
	Reproduction ReproductionConfig `yaml:"reproduction" toml:"reproduction"`
	SpeciesSet   SpeciesSetConfig   `yaml:"species_set" toml:"species_set"`
	Stagnation   StagnationConfig   `yaml:"stagnation" toml:"stagnation"`
}

// NeatConfig holds run-level parameters.
type NeatConfig struct {
	PopSize int    `ini:"pop_size" yaml:"pop_size" toml:"pop_size"`
	Seed    uint64 `ini:"seed" yaml:"seed" toml:"seed"`
}

// GenomeConfig holds the mutation parameters. Operator probabilities (the *Prob
// fields and WeightMutateRate) may exceed 1: the integer part is applied
// unconditionally and the fraction as one extra Bernoulli trial.
type GenomeConfig struct {
	WeightMinValue float64 `ini:"weight_min_value" yaml:"weight_min_value" toml:"weight_min_value"`
	WeightMaxValue float64 `ini:"weight_max_value" yaml:"weight_max_value" toml:"weight_max_value"`

	WeightMutateRate  float64 `ini:"weight_mutate_rate" yaml:"weight_mutate_rate" toml:"weight_mutate_rate"`
	WeightPerturbRate float64 `ini:"weight_perturb_rate" yaml:"weight_perturb_rate" toml:"weight_perturb_rate"`
	WeightMutatePower float64 `ini:"weight_mutate_power" yaml:"weight_mutate_power" toml:"weight_mutate_power"`
	WeightReplaceRate float64 `ini:"weight_replace_rate" yaml:"weight_replace_rate" toml:"weight_replace_rate"`

	ConnAddProb float64 `ini:"conn_add_prob" yaml:"conn_add_prob" toml:"conn_add_prob"`
	BiasAddProb float64 `ini:"bias_add_prob" yaml:"bias_add_prob" toml:"bias_add_prob"`
	NodeAddProb float64 `ini:"node_add_prob" yaml:"node_add_prob" toml:"node_add_prob"`

	ToggleProb  float64 `ini:"toggle_prob" yaml:"toggle_prob" toml:"toggle_prob"`
	EnableRate  float64 `ini:"enable_rate" yaml:"enable_rate" toml:"enable_rate"`
	DisableRate float64 `ini:"disable_rate" yaml:"disable_rate" toml:"disable_rate"`
}

// WeightBound is the sampling interval for fresh weights.
func (gc *GenomeConfig) WeightBound() Bound {
	return NewBound(gc.WeightMinValue, gc.WeightMaxValue)
}

// ReproductionConfig holds parameters related to breeding and offspring allocation.
type ReproductionConfig struct {
	CrossoverRate        float64 `ini:"crossover_rate" yaml:"crossover_rate" toml:"crossover_rate"`
	CrossoverDisableRate float64 `ini:"crossover_disable_rate" yaml:"crossover_disable_rate" toml:"crossover_disable_rate"`
	TournamentRatio      float64 `ini:"tournament_ratio" yaml:"tournament_ratio" toml:"tournament_ratio"`
	ExtinctionThreshold  float64 `ini:"extinction_threshold" yaml:"extinction_threshold" toml:"extinction_threshold"`
}

// SpeciesSetConfig holds parameters related to speciation.
type SpeciesSetConfig struct {
	CompatibilityThreshold           float64 `ini:"compatibility_threshold" yaml:"compatibility_threshold" toml:"compatibility_threshold"`
	CompatibilityDisjointCoefficient float64 `ini:"compatibility_disjoint_coefficient" yaml:"compatibility_disjoint_coefficient" toml:"compatibility_disjoint_coefficient"`
	CompatibilityExcessCoefficient   float64 `ini:"compatibility_excess_coefficient" yaml:"compatibility_excess_coefficient" toml:"compatibility_excess_coefficient"`
	CompatibilityWeightCoefficient   float64 `ini:"compatibility_weight_coefficient" yaml:"compatibility_weight_coefficient" toml:"compatibility_weight_coefficient"`
	// Genomes with at most this many links are compared without size normalization.
	CompatibilityLeniency int `ini:"compatibility_leniency" yaml:"compatibility_leniency" toml:"compatibility_leniency"`
}

// StagnationConfig holds parameters related to species stagnation.
type StagnationConfig struct {
	MaxStagnation int `ini:"max_stagnation" yaml:"max_stagnation" toml:"max_stagnation"`
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{
			PopSize: 50,
			Seed:    1,
		},
		Genome: GenomeConfig{
			WeightMinValue:    -2.0,
			WeightMaxValue:    2.0,
			WeightMutateRate:  0.30,
			WeightPerturbRate: 0.10,
			WeightMutatePower: 1.0,
			WeightReplaceRate: 0.10,
			ConnAddProb:       0.05,
			BiasAddProb:       0.002,
			NodeAddProb:       0.01,
			ToggleProb:        0.005,
			EnableRate:        0.10,
			DisableRate:       0.05,
		},
		Reproduction: ReproductionConfig{
			CrossoverRate:        0.80,
			CrossoverDisableRate: 1.00,
			TournamentRatio:      0.10,
			ExtinctionThreshold:  0.05,
		},
		SpeciesSet: SpeciesSetConfig{
			CompatibilityThreshold:           4.0,
			CompatibilityDisjointCoefficient: 1.0,
			CompatibilityExcessCoefficient:   1.0,
			CompatibilityWeightCoefficient:   0.4,
			CompatibilityLeniency:            20,
		},
		Stagnation: StagnationConfig{
			MaxStagnation: 100,
		},
	}
}

// LoadConfig loads configuration parameters from a file, overlaying them onto
// DefaultConfig. The format follows the extension: .yaml/.yml, .toml, anything
// else is read as INI.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config '%s': %w", filePath, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(filePath, config); err != nil {
			return nil, fmt.Errorf("failed to parse toml config '%s': %w", filePath, err)
		}
	default:
		if err := loadIni(filePath, config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadIni(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         false,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	sections := []struct {
		name   string
		target interface{}
	}{
		{"NEAT", &config.Neat},
		{"DefaultGenome", &config.Genome},
		{"DefaultReproduction", &config.Reproduction},
		{"DefaultSpeciesSet", &config.SpeciesSet},
		{"DefaultStagnation", &config.Stagnation},
	}
	for _, s := range sections {
		if !cfg.HasSection(s.name) {
			continue
		}
		if err := cfg.Section(s.name).MapTo(s.target); err != nil {
			return fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}
	return nil
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if c.Neat.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}

	g := &c.Genome
	if g.WeightMaxValue < g.WeightMinValue {
		return fmt.Errorf("config error: weight_max_value cannot be less than weight_min_value")
	}
	if g.WeightMutatePower < 0 {
		return fmt.Errorf("config error: weight_mutate_power cannot be negative")
	}
	for name, p := range map[string]float64{
		"weight_mutate_rate": g.WeightMutateRate,
		"conn_add_prob":      g.ConnAddProb,
		"bias_add_prob":      g.BiasAddProb,
		"node_add_prob":      g.NodeAddProb,
		"toggle_prob":        g.ToggleProb,
	} {
		if p < 0 {
			return fmt.Errorf("config error: %s cannot be negative", name)
		}
	}
	for name, p := range map[string]float64{
		"weight_perturb_rate":    g.WeightPerturbRate,
		"weight_replace_rate":    g.WeightReplaceRate,
		"enable_rate":            g.EnableRate,
		"disable_rate":           g.DisableRate,
		"crossover_rate":         c.Reproduction.CrossoverRate,
		"crossover_disable_rate": c.Reproduction.CrossoverDisableRate,
		"extinction_threshold":   c.Reproduction.ExtinctionThreshold,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("config error: %s must be between 0 and 1", name)
		}
	}
	if c.Reproduction.TournamentRatio <= 0 || c.Reproduction.TournamentRatio > 1 {
		return fmt.Errorf("config error: tournament_ratio must be in (0, 1]")
	}

	s := &c.SpeciesSet
	if s.CompatibilityThreshold < 0 {
		return fmt.Errorf("config error: compatibility_threshold cannot be negative")
	}
	if s.CompatibilityDisjointCoefficient < 0 || s.CompatibilityExcessCoefficient < 0 || s.CompatibilityWeightCoefficient < 0 {
		return fmt.Errorf("config error: compatibility coefficients cannot be negative")
	}
	if s.CompatibilityLeniency < 0 {
		return fmt.Errorf("config error: compatibility_leniency cannot be negative")
	}
	if c.Stagnation.MaxStagnation <= 0 {
		return fmt.Errorf("config error: max_stagnation must be positive")
	}
	return nil
}
