package mytypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type doc struct {
	Name string `json:"name"`
	Num  int    `json:"num"`
}

func TestJSON(t *testing.T) {
	v, err := JSON[doc]{V: doc{Name: "a", Num: 1}}.Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"a","num":1}`), v)

	var got JSON[doc]
	assert.NoError(t, got.Scan(v))
	assert.Equal(t, doc{Name: "a", Num: 1}, got.V)

	assert.NoError(t, got.Scan(`{"name":"b","num":2}`))
	assert.Equal(t, doc{Name: "b", Num: 2}, got.V)

	assert.Error(t, got.Scan(42))
}
