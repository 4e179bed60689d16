package registry

import (
	"counsel/internal/domain"
	dErrors "counsel/pkg/domain-errors"

	"gopkg.in/yaml.v3"
)

// Record is a versioned knowledge document for one domain. Records are
// validated on installation and hot-swappable through AddKnowledge; built-in
// rules read them at application time to enrich their candidates.
type Record struct {
	Version  int      `yaml:"version" json:"version"`
	Domain   string   `yaml:"domain" json:"domain"`
	Themes   []string `yaml:"themes" json:"themes"`
	Benefits []string `yaml:"benefits" json:"benefits"`
	Metrics  []string `yaml:"metrics" json:"metrics"`
}

// Validate enforces the record schema: a positive version, a domain, and at
// least one theme.
func (r Record) Validate() error {
	if r.Version < 1 {
		return dErrors.New(dErrors.CodeInvalidInput, "knowledge version must be >= 1")
	}
	if r.Domain == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "knowledge domain cannot be empty")
	}
	if len(r.Themes) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "knowledge record needs at least one theme")
	}
	return nil
}

// knowledgeFile is the YAML shape accepted by ParseKnowledge.
type knowledgeFile struct {
	Records []Record `yaml:"records"`
}

// ParseKnowledge decodes and validates a YAML knowledge document. Used at
// startup to load operator-supplied knowledge files.
func ParseKnowledge(data []byte) ([]Record, error) {
	var file knowledgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "knowledge file is not valid YAML")
	}
	for i, rec := range file.Records {
		if err := rec.Validate(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid knowledge record")
		}
		file.Records[i] = rec
	}
	return file.Records, nil
}

// LoadKnowledge installs a batch of parsed records. Installation stops at the
// first failure.
func (r *Registry) LoadKnowledge(records []Record) error {
	for _, rec := range records {
		if err := r.AddKnowledge(rec.Domain, rec); err != nil {
			return err
		}
	}
	return nil
}

// defaultKnowledge seeds the registry so built-in rules have material even
// when no knowledge file is configured.
func defaultKnowledge() map[string]Record {
	records := []Record{
		{
			Version:  1,
			Domain:   domain.DomainBusiness,
			Themes:   []string{"positioning", "partnerships", "operating model"},
			Benefits: []string{"clearer market focus", "compounding resource allocation"},
			Metrics:  []string{"revenue per segment", "win rate"},
		},
		{
			Version:  1,
			Domain:   domain.DomainTechnology,
			Themes:   []string{"modernization", "automation", "reliability"},
			Benefits: []string{"lower change-failure rate", "shorter lead time"},
			Metrics:  []string{"deployment frequency", "mean time to recovery"},
		},
		{
			Version:  1,
			Domain:   domain.DomainMarketing,
			Themes:   []string{"segmentation", "channel mix", "retention"},
			Benefits: []string{"higher conversion", "lower acquisition cost"},
			Metrics:  []string{"cost per conversion", "retention rate"},
		},
		{
			Version:  1,
			Domain:   domain.DomainFinance,
			Themes:   []string{"cash flow", "investment staging", "cost control"},
			Benefits: []string{"earlier risk signals", "funded optionality"},
			Metrics:  []string{"cash runway", "budget variance"},
		},
	}

	out := make(map[string]Record, len(records))
	for _, rec := range records {
		out[rec.Domain] = rec
	}
	return out
}
