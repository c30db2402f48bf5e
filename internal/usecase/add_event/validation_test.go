package add_event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Micrófonos", capitalize("micrófonos"))
	assert.Equal(t, "Micrófonos", capitalize("MICRÓFONOS"))
	assert.Equal(t, "Árbol", capitalize("árbol"))
	assert.Equal(t, "", capitalize(""))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, sortedKeys(map[string]bool{}))
}
