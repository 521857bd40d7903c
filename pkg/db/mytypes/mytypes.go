package mytypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores a value in a json/jsonb column
type JSON[T any] struct {
	V T
}

func (h *JSON[T]) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &h.V)
	case string:
		return json.Unmarshal([]byte(v), &h.V)
	default:
		return fmt.Errorf("value is not []byte")
	}
}

func (h JSON[T]) Value() (driver.Value, error) {
	return json.Marshal(h.V)
}
