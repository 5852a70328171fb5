package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture describes one seed run.
type Fixture struct {
	Database    string              `yaml:"database"`
	Collections []CollectionFixture `yaml:"collections"`
	Products    []map[string]any    `yaml:"products"`
	Users       []UserFixture       `yaml:"users"`
}

type CollectionFixture struct {
	Name      string         `yaml:"name"`
	Validator *Validator     `yaml:"validator"`
	Modify    *ModifyFixture `yaml:"modify"`
}

// ModifyFixture replaces a collection validator after creation.
type ModifyFixture struct {
	Validator        *Validator       `yaml:"validator"`
	ValidationLevel  ValidationLevel  `yaml:"validationLevel"`
	ValidationAction ValidationAction `yaml:"validationAction"`
}

type UserFixture struct {
	DB    string `yaml:"db"`
	User  string `yaml:"user"`
	Pwd   string `yaml:"pwd"`
	Roles []Role `yaml:"roles"`
}

// DefaultFixture returns the built-in Product-db fixture.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(b)
}

func ParseFixture(b []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Database == "" {
		return nil, fmt.Errorf("parse fixture: database is required")
	}
	for i, u := range f.Users {
		if u.DB == "" {
			f.Users[i].DB = f.Database
		}
	}
	if f.Collections == nil && len(f.Products) > 0 {
		f.Collections = []CollectionFixture{{Name: "products"}}
	}
	return &f, nil
}
