package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/scoring"
)

// Mission is the user-authored description of one transfer search.
type Mission struct {
	ID             string         `yaml:"id"`
	Goal           string         `yaml:"goal"`
	Profile        Profile        `yaml:"my_profile"`
	CurrentStudies CurrentStudies `yaml:"current_studies"`
	Targets        Targets        `yaml:"targets"`

	// Defaults overrides the built-in pipeline settings for every target.
	// Per-target overrides are applied on top.
	Defaults model.Settings `yaml:"defaults,omitempty"`

	// dir is the directory of the mission file. Relative curriculum
	// paths are resolved against it.
	dir string
}

// Profile describes the student.
type Profile struct {
	Name        string          `yaml:"name,omitempty"`
	Country     string          `yaml:"country"`
	Currency    string          `yaml:"currency"`
	Preferences scoring.Weights `yaml:"preferences"`
}

// CurrentStudies lists the courses already taken.
type CurrentStudies struct {
	Degree            string   `yaml:"degree"`
	CurrentUniversity string   `yaml:"current_university,omitempty"`
	CurriculumFile    string   `yaml:"curriculum_file,omitempty"`
	Courses           []Course `yaml:"courses,omitempty"`
}

// Course is one course of the current degree.
type Course struct {
	Name    string  `yaml:"name"`
	Credits float64 `yaml:"credits,omitempty"`
}

// Targets holds the institutions to evaluate.
type Targets struct {
	Universities []model.Institution `yaml:"universities"`
}

// curriculum is the layout of the optional curriculum file.
type curriculum struct {
	Courses []Course `yaml:"courses"`
}

// LoadMission reads and validates a mission file.
// If the file does not exist, it returns ErrMissionNotFound.
func LoadMission(path string) (*Mission, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided mission path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissionNotFound, path)
		}
		return nil, fmt.Errorf("failed to read mission: %w", err)
	}

	m, err := ParseMission(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseMission decodes mission YAML without validating it.
func ParseMission(data []byte) (*Mission, error) {
	var m Mission
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mission: %w", err)
	}
	if m.Profile.Preferences.IsZero() {
		m.Profile.Preferences = scoring.DefaultWeights()
	}
	return &m, nil
}

// Validate checks the mission and returns the first problem found.
func (m *Mission) Validate() error {
	if err := m.Profile.Preferences.Validate(); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	courses, err := m.Courses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return ErrNoCourses
	}
	if len(m.Targets.Universities) == 0 {
		return ErrNoTargets
	}
	for i, u := range m.Targets.Universities {
		if strings.TrimSpace(u.Name) == "" {
			return fmt.Errorf("%w (entry %d)", ErrUnnamedTarget, i+1)
		}
		if _, err := ResolveSettings(m.Defaults, u.Settings); err != nil {
			return fmt.Errorf("invalid overrides for %s: %w", u.Name, err)
		}
	}
	return nil
}

// Courses returns the normalized names of the current courses.
// The curriculum file wins over inline courses; blank names are dropped.
func (m *Mission) Courses() ([]model.CourseName, error) {
	list := m.CurrentStudies.Courses
	if file := m.CurrentStudies.CurriculumFile; file != "" {
		if !filepath.IsAbs(file) {
			file = filepath.Join(m.dir, file)
		}
		data, err := os.ReadFile(file) //nolint:gosec // Path comes from the user's mission
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("curriculum file not found: %s", file)
			}
			return nil, fmt.Errorf("failed to read curriculum: %w", err)
		}
		var cur curriculum
		if err := yaml.Unmarshal(data, &cur); err != nil {
			return nil, fmt.Errorf("failed to parse curriculum: %w", err)
		}
		list = cur.Courses
	}

	names := make([]model.CourseName, 0, len(list))
	for _, c := range list {
		if n := model.NewCourseName(c.Name); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// Institutions returns the targets, truncated to limit when limit is positive.
func (m *Mission) Institutions(limit int) []model.Institution {
	insts := m.Targets.Universities
	if limit > 0 && limit < len(insts) {
		insts = insts[:limit]
	}
	return insts
}
