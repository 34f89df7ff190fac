package persons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arnavshah/wichtel-api-go/pkg/models"
)

// ErrMissingPersons is returned when the input document has no "persons" list.
var ErrMissingPersons = errors.New(`input has no "persons" list`)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Read loads the person list from a JSON or YAML file
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	var doc models.Persons
	if isYAML(path) {
		err = yaml.NewDecoder(f).Decode(&doc)
	} else {
		err = json.NewDecoder(f).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if doc.Persons == nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrMissingPersons)
	}
	return doc.Persons, nil
}

// Encode renders an assignment as indented JSON, or YAML when asYAML is set
func Encode(m models.Assignment, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(m)
	}
	return json.MarshalIndent(m, "", "  ")
}

// Write stores the assignment in path, choosing the format from the file extension
func Write(path string, m models.Assignment) error {
	data, err := Encode(m, isYAML(path))
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// Print writes the assignment as labelled JSON
func Print(w io.Writer, m models.Assignment) error {
	data, err := Encode(m, false)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "Result: %s\n", data)
	return err
}
