package static

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfs "github.com/trezcool/campus/fs"
)

func TestLoadEmbedded(t *testing.T) {
	stds, err := LoadStudents(appfs.FS)
	require.NoError(t, err)
	require.Len(t, stds, 6)
	assert.Equal(t, "Muhammad Anas", stds[0].Name)
	assert.Equal(t, []string{"JavaScript", "React", "HTML", "CSS", "Node.js"}, stds[0].Skills)

	products, err := LoadProducts(appfs.FS)
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "Wireless Headphones", products[0].Name)
	assert.Equal(t, 79.99, products[0].Price)
	assert.Len(t, products[0].Reviews, 3)

	shop, err := LoadShop(appfs.FS)
	require.NoError(t, err)
	assert.Len(t, shop, 2)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{name: "missing file", fsys: fstest.MapFS{}, wantErr: "opening data/products.yaml"},
		{
			name:    "unknown field",
			fsys:    fstest.MapFS{ProductsPath: {Data: []byte("- id: 1\n  colour: red\n")}},
			wantErr: "decoding data/products.yaml",
		},
		{
			name:    "not a list",
			fsys:    fstest.MapFS{ProductsPath: {Data: []byte("id: 1\n")}},
			wantErr: "decoding data/products.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProducts(tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
