package ruleset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadBuffs reads all .yaml files in dir and parses each as a Buff.
// Unknown fields are rejected.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed buffs (may be empty slice) or a non-nil error.
func LoadBuffs(dir string) ([]*Buff, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	buffs := make([]*Buff, 0, len(files))
	for _, path := range files {
		var b Buff
		if err := decodeStrict(path, &b); err != nil {
			return nil, fmt.Errorf("parsing buff file %s: %w", path, err)
		}
		buffs = append(buffs, &b)
	}
	return buffs, nil
}

// LoadJobs reads all .yaml files in dir and parses each as a JobDef.
// Unknown fields are rejected.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed job definitions (may be empty slice) or a non-nil error.
func LoadJobs(dir string) ([]*JobDef, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	jobs := make([]*JobDef, 0, len(files))
	for _, path := range files {
		var j JobDef
		if err := decodeStrict(path, &j); err != nil {
			return nil, fmt.Errorf("parsing job file %s: %w", path, err)
		}
		jobs = append(jobs, &j)
	}
	return jobs, nil
}

func decodeStrict(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
