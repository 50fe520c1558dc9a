package repositories

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

var _ ports.Directory = (*JSONDirectory)(nil)

// JSONDirectory is an in-memory implementation of the Directory port loaded
// once from two JSON files. It is read-only after loading and safe for
// concurrent use.
type JSONDirectory struct {
	technicians []domain.Technician
	projects    []domain.Project
	homeByName  map[string]string
	siteByName  map[string]string
}

// LoadJSONDirectory reads the technician and project tables.
func LoadJSONDirectory(techniciansPath, projectsPath string) (*JSONDirectory, error) {
	var rawTechs []domain.Technician
	if err := readJSON(techniciansPath, &rawTechs); err != nil {
		return nil, fmt.Errorf("load technicians: %w", err)
	}

	var rawProjects []domain.Project
	if err := readJSON(projectsPath, &rawProjects); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	return NewJSONDirectory(rawTechs, rawProjects)
}

// NewJSONDirectory validates and indexes already decoded tables.
func NewJSONDirectory(technicians []domain.Technician, projects []domain.Project) (*JSONDirectory, error) {
	d := &JSONDirectory{
		technicians: make([]domain.Technician, 0, len(technicians)),
		projects:    make([]domain.Project, 0, len(projects)),
		homeByName:  make(map[string]string, len(technicians)),
		siteByName:  make(map[string]string, len(projects)),
	}

	for i, t := range technicians {
		name := strings.TrimSpace(t.Name)
		home := strings.TrimSpace(t.HomeAddress)
		if name == "" {
			return nil, fmt.Errorf("load technicians: item at index %d: name cannot be empty", i+1)
		}
		if home == "" {
			return nil, fmt.Errorf("load technicians: %q: home_address cannot be empty", name)
		}
		if _, dup := d.homeByName[name]; dup {
			return nil, fmt.Errorf("load technicians: duplicate name %q", name)
		}

		d.homeByName[name] = home
		d.technicians = append(d.technicians, domain.Technician{Name: name, HomeAddress: home})
	}

	for i, p := range projects {
		name := strings.TrimSpace(p.Name)
		addr := strings.TrimSpace(p.Address)
		if name == "" {
			return nil, fmt.Errorf("load projects: item at index %d: name cannot be empty", i+1)
		}
		if addr == "" {
			return nil, fmt.Errorf("load projects: %q: address cannot be empty", name)
		}
		if _, dup := d.siteByName[name]; dup {
			return nil, fmt.Errorf("load projects: duplicate name %q", name)
		}

		d.siteByName[name] = addr
		d.projects = append(d.projects, domain.Project{Name: name, Address: addr})
	}

	return d, nil
}

func readJSON(path string, v any) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	if err := json.Unmarshal(bytes, v); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}

	return nil
}

func (d *JSONDirectory) TechnicianAddress(name string) (string, bool) {
	addr, ok := d.homeByName[strings.TrimSpace(name)]
	return addr, ok
}

func (d *JSONDirectory) ProjectAddress(name string) (string, bool) {
	addr, ok := d.siteByName[strings.TrimSpace(name)]
	return addr, ok
}

// Technicians returns a copy in file order.
func (d *JSONDirectory) Technicians() []domain.Technician {
	return append([]domain.Technician(nil), d.technicians...)
}

// Projects returns a copy in file order.
func (d *JSONDirectory) Projects() []domain.Project {
	return append([]domain.Project(nil), d.projects...)
}
