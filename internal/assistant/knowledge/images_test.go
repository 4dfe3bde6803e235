package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"núi bà đen": ["a.jpg", "b.jpg"]}`), 0o644))

	m := LoadImages(path)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, m.For("núi bà đen"))
	assert.Nil(t, m.For("không có"))
}

func TestLoadImagesMissingFileDegrades(t *testing.T) {
	m := LoadImages(filepath.Join(t.TempDir(), "missing.json"))
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestLoadImagesMalformedDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	m := LoadImages(path)
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestFoodSpotsFor(t *testing.T) {
	spots := FoodSpotsFor("Núi Bà Đen")
	require.Len(t, spots, 2)
	assert.Equal(t, "Bánh canh Trảng Bàng Bé Năm", spots[0].Name)

	assert.Nil(t, FoodSpotsFor("chỗ lạ"))
}
