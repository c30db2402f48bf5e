package rulefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

const dataDir = "../../../data"

func TestLoadCatalog_SampleFile(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join(dataDir, "recursos.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sala A", "Sala B", "Sala C"}, catalog.Rooms())
	assert.Equal(t, []string{"concierto", "ensayo", "conferencia"}, catalog.EventTypes())

	total, ok := catalog.Total("micrófonos")
	require.True(t, ok)
	assert.Equal(t, 6, total)
	assert.True(t, catalog.InCategory("guitarras", domain.InstrumentsCategory))
}

func TestLoadRules_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadRules(filepath.Join(dataDir, "restricciones.json"))
	require.NoError(t, err)

	fromYAML, err := LoadRules(filepath.Join(dataDir, "restricciones.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromJSON.EventRules, fromYAML.EventRules)
	assert.Equal(t, fromJSON.CoRequisites, fromYAML.CoRequisites)
	assert.Equal(t, fromJSON.Exclusions.ForbiddenEvents, fromYAML.Exclusions.ForbiddenEvents)
	assert.Equal(t, fromJSON.MandatoryStaff, fromYAML.MandatoryStaff)
	assert.Equal(t, fromJSON.Exclusions.ByRoom["Sala C"].Equipment, fromYAML.Exclusions.ByRoom["Sala C"].Equipment)

	concert, ok := fromJSON.EventRule("concierto")
	require.True(t, ok)
	assert.True(t, concert.RequiresInstruments)
	assert.Equal(t, map[string]int{"micrófonos": 2, "técnicos": 1}, concert.Minimums)

	assert.True(t, fromJSON.IsEventForbiddenInRoom("Sala B", "concierto"))
	assert.True(t, fromJSON.CoRequisites.ByCategory["equipos"].IsExempt("proyectores"))
	assert.Equal(t, map[string]int{"seguridad": 2}, fromJSON.MandatoryStaff["Sala A"])
}

func TestParseRules_SkipsNonIntegerMinimums(t *testing.T) {
	rules, err := ParseRules(".json", []byte(`{
		"reglas_evento": {
			"taller": {"micrófonos": 1.5, "cables": "dos", "técnicos": 2, "requiere_instrumentos": false}
		}
	}`))
	require.NoError(t, err)

	rule, ok := rules.EventRule("taller")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"técnicos": 2}, rule.Minimums)
	assert.False(t, rule.RequiresInstruments)
}

func TestParseRules_EmptyFile(t *testing.T) {
	rules, err := ParseRules(".json", []byte(`{}`))
	require.NoError(t, err)

	assert.Empty(t, rules.EventRules)
	assert.NotNil(t, rules.Exclusions.ByRoom)
}

func TestParseCatalog_Variants(t *testing.T) {
	t.Run("rooms as list with comments", func(t *testing.T) {
		catalog, err := ParseCatalog(".jsonc", []byte(`{
			// comentario
			"salas": ["Sala B", "Sala A",],
			"equipos": {"cables": 10}
		}`))
		require.NoError(t, err)

		assert.Equal(t, []string{"Sala A", "Sala B"}, catalog.Rooms())
		assert.Empty(t, catalog.EventTypes())
	})

	t.Run("yaml with event types as map", func(t *testing.T) {
		catalog, err := ParseCatalog(".yaml", []byte(`
salas:
  Sala A: principal
eventos:
  ensayo: {}
  concierto: {}
instrumentos:
  pianos: 2
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"concierto", "ensayo"}, catalog.EventTypes())
		total, ok := catalog.Total("pianos")
		require.True(t, ok)
		assert.Equal(t, 2, total)
	})

	t.Run("non integer total", func(t *testing.T) {
		_, err := ParseCatalog(".json", []byte(`{"equipos": {"cables": 2.5}}`))
		assert.ErrorIs(t, err, ErrInvalidFile)
	})

	t.Run("resource in two categories", func(t *testing.T) {
		_, err := ParseCatalog(".json", []byte(`{"equipos": {"cables": 2}, "extra": {"cables": 1}}`))
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})
}

func TestDecode_Errors(t *testing.T) {
	_, err := ParseRules(".toml", []byte(``))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseRules(".json", []byte(`{"reglas_evento": [}`))
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{in: 3, want: 3, ok: true},
		{in: float64(4), want: 4, ok: true},
		{in: int64(5), want: 5, ok: true},
		{in: 2.5, ok: false},
		{in: true, ok: false},
		{in: "3", ok: false},
	}

	for _, tt := range tests {
		got, ok := asInt(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
