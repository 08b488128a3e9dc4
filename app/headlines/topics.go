package headlines

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The upstream API partitions headlines by these topics server-side.
var defaultTopics = []string{
	"world",
	"nation",
	"business",
	"technology",
	"entertainment",
	"sports",
	"science",
	"health",
}

// Topics is the set of category values accepted as a feed filter.
type Topics struct {
	names []string
	set   map[string]bool
}

func newTopics(names []string) Topics {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return Topics{names: names, set: set}
}

func DefaultTopics() Topics {
	return newTopics(defaultTopics)
}

type topicsFile struct {
	Topics []string `yaml:"topics"`
}

// LoadTopics reads a topic registry from a YAML file. An empty path keeps
// the built-in list.
func LoadTopics(path string) (Topics, error) {
	if path == "" {
		return DefaultTopics(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Topics{}, fmt.Errorf("failed to read topics file: %w", err)
	}

	var parsed topicsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Topics{}, fmt.Errorf("failed to parse topics file: %w", err)
	}

	if len(parsed.Topics) == 0 {
		return Topics{}, fmt.Errorf("topics file %s defines no topics", path)
	}

	return newTopics(parsed.Topics), nil
}

// Valid reports whether name is an accepted category filter. The empty
// string means "no category filter" and is always valid.
func (t Topics) Valid(name string) bool {
	if name == "" {
		return true
	}
	return t.set[name]
}

func (t Topics) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
