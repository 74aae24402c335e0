package business

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed reference/service_priorities.yaml
var servicePrioritiesYaml []byte

type ServicePriority struct {
	Code          string `yaml:"code"`
	Name          string `yaml:"name"`
	LocalizedName string `yaml:"localized_name"`
	Priority      int    `yaml:"priority"`
}

// ServiceTable — таблица приоритетов и локализованных имён сервисов,
// ключ — каноническое имя английского названия.
type ServiceTable struct {
	byKey map[string]ServicePriority
}

func NewServiceTable() (*ServiceTable, error) {
	var priorities []ServicePriority
	if err := yaml.Unmarshal(servicePrioritiesYaml, &priorities); err != nil {
		return nil, fmt.Errorf("failed to parse service priorities reference: %w", err)
	}

	byKey := make(map[string]ServicePriority, 2*len(priorities))
	for _, p := range priorities {
		byKey[CanonicalKey(p.Name)] = p
	}
	// короткие провайдерские коды тоже ведут к записи; имя не перекрывают
	for _, p := range priorities {
		key := CanonicalKey(p.Code)
		if _, exists := byKey[key]; !exists {
			byKey[key] = p
		}
	}
	return &ServiceTable{byKey: byKey}, nil
}

func (t *ServiceTable) Lookup(key string) (ServicePriority, bool) {
	p, ok := t.byKey[key]
	return p, ok
}

func (t *ServiceTable) Size() int {
	return len(t.byKey)
}
