package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Filters are the job search parameters attached to search and alert events.
type Filters struct {
	Q          string `yaml:"q" json:"q"`
	Categories []int  `yaml:"categories" json:"categories"`
	Locations  []int  `yaml:"locations" json:"locations"`
	WorkTypes  []int  `yaml:"workTypes" json:"workTypes"`
	Sectors    []int  `yaml:"sectors" json:"sectors"`
}

// FiltersFromMap normalizes a decoded key-value map into Filters. Unknown
// keys are ignored; list values may hold integers or numeric strings.
func FiltersFromMap(values map[string]any) (Filters, error) {
	filters := Filters{}
	if values == nil {
		return filters, nil
	}
	if raw, ok := values["q"]; ok && raw != nil {
		q, ok := raw.(string)
		if !ok {
			return Filters{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("filter q must be a string, got %T", raw))
		}
		filters.Q = q
	}
	lists := []struct {
		key  string
		dest *[]int
	}{
		{"categories", &filters.Categories},
		{"locations", &filters.Locations},
		{"workTypes", &filters.WorkTypes},
		{"sectors", &filters.Sectors},
	}
	for _, list := range lists {
		ids, err := intList(list.key, values[list.key])
		if err != nil {
			return Filters{}, err
		}
		*list.dest = ids
	}
	return filters, nil
}

func intList(key string, raw any) ([]int, error) {
	var items []any
	switch values := raw.(type) {
	case nil:
		return nil, nil
	case []int:
		return values, nil
	case []any:
		items = values
	case []string:
		for _, value := range values {
			items = append(items, value)
		}
	default:
		return nil, invalidFilter(key, raw)
	}
	ids := make([]int, 0, len(items))
	for _, item := range items {
		switch value := item.(type) {
		case int:
			ids = append(ids, value)
		case int64:
			ids = append(ids, int(value))
		case float64:
			if value != float64(int(value)) {
				return nil, invalidFilter(key, item)
			}
			ids = append(ids, int(value))
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, invalidFilter(key, item)
			}
			ids = append(ids, parsed)
		default:
			return nil, invalidFilter(key, item)
		}
	}
	return ids, nil
}

func invalidFilter(key string, value any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("filter %s has invalid value %v", key, value))
}
