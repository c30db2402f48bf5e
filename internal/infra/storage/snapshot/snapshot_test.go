package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

func sampleEvents(t *testing.T) []*domain.Event {
	t.Helper()
	a, err := domain.NewEvent("concierto", "Sala A", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		map[string]int{"micrófonos": 2, "guitarras": 1})
	require.NoError(t, err)
	b, err := domain.NewEvent("ensayo", "Sala B", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		map[string]int{"pianos": 1})
	require.NoError(t, err)
	return []*domain.Event{a, b}
}

func TestCodecs_RoundTrip(t *testing.T) {
	cborCodec, err := NewCBORCodec()
	require.NoError(t, err)

	for _, codec := range []Codec{JSONCodec{}, cborCodec} {
		t.Run(codec.Name(), func(t *testing.T) {
			events := sampleEvents(t)

			data, err := codec.Encode(FromDomain(events))
			require.NoError(t, err)

			records, err := codec.Decode(data)
			require.NoError(t, err)

			restored, err := ToDomain(records)
			require.NoError(t, err)
			assert.Equal(t, events, restored)
		})
	}
}

func TestJSONCodec_FieldNames(t *testing.T) {
	data, err := JSONCodec{}.Encode(FromDomain(sampleEvents(t)[:1]))
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"tipo":"concierto","sala":"Sala A","fecha":"2025-06-01","recursos":{"guitarras":1,"micrófonos":2}}]`,
		string(data))
}

func TestDecode_EmptyData(t *testing.T) {
	cborCodec, err := NewCBORCodec()
	require.NoError(t, err)

	records, err := JSONCodec{}.Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = cborCodec.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecode_Corrupted(t *testing.T) {
	cborCodec, err := NewCBORCodec()
	require.NoError(t, err)

	_, err = JSONCodec{}.Decode([]byte(`[{"tipo":`))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = cborCodec.Decode([]byte{0xff, 0x00})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestToDomain(t *testing.T) {
	t.Run("legacy datetime and sorting", func(t *testing.T) {
		events, err := ToDomain([]Record{
			{Type: "ensayo", Room: "Sala B", Date: "2025-06-03T00:00:00", Resources: map[string]int{"pianos": 1}},
			{Type: "concierto", Room: "Sala A", Date: "2025-06-01", Resources: map[string]int{"guitarras": 1}},
		})
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, "concierto", events[0].Type)
		assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), events[1].Date)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ToDomain([]Record{{Type: "ensayo", Room: "Sala B", Date: "03/06/2025"}})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := ToDomain([]Record{{Room: "Sala B", Date: "2025-06-03"}})
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestCodecForPath(t *testing.T) {
	codec, err := CodecForPath("data/eventos.cbor")
	require.NoError(t, err)
	assert.Equal(t, "cbor", codec.Name())

	codec, err = CodecForPath("data/eventos.json")
	require.NoError(t, err)
	assert.Equal(t, "json", codec.Name())
}

func TestZstdCodec(t *testing.T) {
	codec, err := CodecForPath("data/eventos.cbor.zst")
	require.NoError(t, err)
	assert.Equal(t, "cbor+zstd", codec.Name())

	events := sampleEvents(t)
	data, err := codec.Encode(FromDomain(events))
	require.NoError(t, err)

	records, err := codec.Decode(data)
	require.NoError(t, err)
	restored, err := ToDomain(records)
	require.NoError(t, err)
	assert.Equal(t, events, restored)

	_, err = codec.Decode([]byte("not zstd"))
	assert.ErrorIs(t, err, ErrDecode)

	records, err = codec.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
