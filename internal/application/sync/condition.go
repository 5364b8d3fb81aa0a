package sync

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
)

// evaluateFilter evaluates a filter expression against one directory
// record. An empty expression matches everything. Supports "true" and
// "false" literals.
func evaluateFilter(expr string, record map[string]interface{}) (bool, error) {
	cond := strings.TrimSpace(expr)
	if cond == "" {
		return true, nil
	}
	switch strings.ToLower(cond) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	parsed, err := govaluate.NewEvaluableExpression(cond)
	if err != nil {
		return false, err
	}
	result, err := parsed.Evaluate(flattenRecord(record))
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.New("filter did not evaluate to boolean")
	}
	return b, nil
}

func flattenRecord(record map[string]interface{}) map[string]interface{} {
	params := make(map[string]interface{}, len(record))
	for k, v := range record {
		params[k] = v
	}
	flatten("", record, params)
	return params
}

func flatten(prefix string, m map[string]interface{}, out map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vv := v.(type) {
		case map[string]interface{}:
			flatten(key, vv, out)
		default:
			out[key] = vv
		}
	}
}
