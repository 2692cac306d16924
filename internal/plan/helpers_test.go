package plan_test

import "encoding/json"

func jsonIndent(value any) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}
