package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepareURLForDB(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "postgresql://u:p@db:5432/pitwall", "postgresql://u:p@db:5432/pitwall?sslmode=disable"},
		{"params", "postgresql://u:p@db/pitwall?x=1", "postgresql://u:p@db/pitwall?x=1&sslmode=disable"},
		{"keep", "postgresql://db/pitwall?sslmode=require", "postgresql://db/pitwall?sslmode=require"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prepareURLForDB(tt.url))
		})
	}
}
