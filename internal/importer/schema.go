package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the top-level structure of a catalog import file. JSON
// files are accepted as well since they parse as YAML.
type CatalogFile struct {
	Courses  []CourseImport   `yaml:"courses" json:"courses"`
	Progress []ProgressImport `yaml:"progress,omitempty" json:"progress,omitempty"`
}

type CourseImport struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Level       string         `yaml:"level,omitempty" json:"level,omitempty"`
	Category    string         `yaml:"category,omitempty" json:"category,omitempty"`
	Modules     []ModuleImport `yaml:"modules" json:"modules"`
}

type ModuleImport struct {
	ID        string         `yaml:"id" json:"id"`
	Title     string         `yaml:"title" json:"title"`
	Order     *int           `yaml:"order,omitempty" json:"order,omitempty"`
	Published *bool          `yaml:"published,omitempty" json:"published,omitempty"`
	Lessons   []LessonImport `yaml:"lessons" json:"lessons"`
}

type LessonImport struct {
	ID           string `yaml:"id" json:"id"`
	Title        string `yaml:"title" json:"title"`
	Order        *int   `yaml:"order,omitempty" json:"order,omitempty"`
	EstimatedMin *int   `yaml:"estimated_minutes,omitempty" json:"estimated_minutes,omitempty"`
	Published    *bool  `yaml:"published,omitempty" json:"published,omitempty"`
}

// ProgressImport seeds a learner's progress on one lesson.
type ProgressImport struct {
	OwnerID  string  `yaml:"owner_id" json:"owner_id"`
	LessonID string  `yaml:"lesson_id" json:"lesson_id"`
	Percent  float64 `yaml:"progress_pct" json:"progress_pct"`
}

// LoadCatalogFile reads and parses a catalog file.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML or JSON. Unknown fields are rejected.
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &file, nil
}
