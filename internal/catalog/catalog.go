// Package catalog holds the test configurations and FAQ content shipped with
// the service.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/proffreport/profreport-backend/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data
var content embed.FS

// ErrTestNotFound is returned for unknown test types.
var ErrTestNotFound = errors.New("test not found")

// listingOrder is the order tests are presented in.
var listingOrder = []model.TestType{model.TestTypeSchool, model.TestTypeGraduate, model.TestTypeAdult}

// Catalog is the read-only set of tests and FAQ items.
type Catalog struct {
	tests map[model.TestType]*model.TestConfig
	faq   []model.FAQItem
}

// Load reads the embedded catalog.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(content, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads tests/*.yaml and faq.yaml from fsys and validates every test.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "tests/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	c := &Catalog{tests: make(map[model.TestType]*model.TestConfig, len(files))}
	for _, name := range files {
		var cfg model.TestConfig
		if err := decodeFile(fsys, name, &cfg); err != nil {
			return nil, err
		}
		if err := Validate(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		if _, dup := c.tests[cfg.TestType]; dup {
			return nil, fmt.Errorf("%s: duplicate test type %q", path.Base(name), cfg.TestType)
		}
		c.tests[cfg.TestType] = &cfg
	}

	if err := decodeFile(fsys, "faq.yaml", &c.faq); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return c, nil
}

func decodeFile(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate checks the invariants the wizard relies on: known enums, at least
// one question, globally unique question IDs and usable options.
func Validate(cfg *model.TestConfig) error {
	if !cfg.TestType.Valid() {
		return fmt.Errorf("unknown test type %q", cfg.TestType)
	}
	if !cfg.Tariff.Valid() {
		return fmt.Errorf("unknown tariff %q", cfg.Tariff)
	}
	if cfg.Price < 0 {
		return fmt.Errorf("negative price %d", cfg.Price)
	}
	if cfg.TotalQuestions() == 0 {
		return errors.New("test has no questions")
	}

	seen := make(map[string]bool)
	for _, q := range cfg.Questions() {
		if q.ID == "" {
			return errors.New("question without id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		if !q.Type.Valid() {
			return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: no options", q.ID)
		}
		values := make(map[model.OptionValue]bool, len(q.Options))
		for _, opt := range q.Options {
			if opt.Value == "" {
				return fmt.Errorf("question %s: empty option value", q.ID)
			}
			if values[opt.Value] {
				return fmt.Errorf("question %s: duplicate option value %q", q.ID, opt.Value)
			}
			values[opt.Value] = true
		}
	}
	return nil
}

// Tests lists the available tests in presentation order.
func (c *Catalog) Tests() []model.TestSummary {
	out := make([]model.TestSummary, 0, len(c.tests))
	for _, t := range listingOrder {
		if cfg, ok := c.tests[t]; ok {
			out = append(out, cfg.Summary())
		}
	}
	return out
}

// Test returns the configuration of a test type.
func (c *Catalog) Test(t model.TestType) (*model.TestConfig, error) {
	cfg, ok := c.tests[t]
	if !ok {
		return nil, ErrTestNotFound
	}
	return cfg, nil
}

// FAQ returns the FAQ accordion items.
func (c *Catalog) FAQ() []model.FAQItem {
	if c.faq == nil {
		return []model.FAQItem{}
	}
	return c.faq
}

// New builds a catalog from in-memory configurations. Used by tests and tools.
func New(faq []model.FAQItem, tests ...*model.TestConfig) (*Catalog, error) {
	c := &Catalog{tests: make(map[model.TestType]*model.TestConfig, len(tests)), faq: faq}
	for _, cfg := range tests {
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.TestType, err)
		}
		c.tests[cfg.TestType] = cfg
	}
	return c, nil
}
