package translate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNominatimLikeFromFeature(t *testing.T) {
	body := []byte(`{"features":[{"geometry":{"coordinates":[30.73,46.47]},"properties":{"label":"Odesa, Ukraine"}}]}`)

	out, err := NominatimLike(body)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Equal(t, "46.47", got[0]["lat"])
	require.Equal(t, "30.73", got[0]["lon"])
	require.Equal(t, "Odesa, Ukraine", got[0]["display_name"])
}

func TestNominatimLikeDisplayNameFallbackChain(t *testing.T) {
	body := []byte(`{"features":[{"geometry":{"coordinates":[1,2]},"properties":{"locality":"Somewhere"}}]}`)

	out, err := NominatimLike(body)
	require.NoError(t, err)
	require.Contains(t, out, `"Somewhere"`)
}

func TestNominatimLikeEmptyFeaturesErrors(t *testing.T) {
	body := []byte(`{"features":[]}`)

	_, err := NominatimLike(body)
	require.Error(t, err, "caller should fall back to the raw upstream body")
}
