package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/startpage/internal/domain"
)

const tomlCatalog = `
[[links]]
name = "GitHub"
url = "https://github.com"
shortcut = true

[[links]]
name = "Uniswap"
url = "https://app.uniswap.org"
category = "defi"
description = "Token swaps"
`

const yamlCatalog = `
links:
  - name: GitHub
    url: https://github.com
    shortcut: true
  - name: Uniswap
    url: https://app.uniswap.org
    category: defi
    description: Token swaps
`

const jsonCatalog = `{"links":[
  {"name":"GitHub","url":"https://github.com","shortcut":true},
  {"name":"Uniswap","url":"https://app.uniswap.org","category":"defi","description":"Token swaps"}
]}`

func TestDecode(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, tomlCatalog},
		{FormatYAML, yamlCatalog},
		{FormatJSON, jsonCatalog},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			links, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, links, 2)

			assert.Equal(t, "GitHub", links[0].Name)
			assert.Equal(t, domain.KindShortcut, links[0].Kind)
			assert.Equal(t, "defi", links[1].Category)
			assert.Equal(t, domain.KindLink, links[1].Kind)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("links = ["), FormatTOML)
	assert.Error(t, err)

	_, err = Decode([]byte("{}"), Format("xml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestEncodeDecode_Seed(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(Seed(), format)
			require.NoError(t, err)

			links, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, Seed(), links)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("links.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("links.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlCatalog), 0644))

	links, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.NotEmpty(t, links[0].ID)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestSeed_CoversLinkPanels(t *testing.T) {
	categories := map[string]bool{}
	for _, l := range Seed() {
		categories[l.Category] = true
		_, err := domain.NewLink(l.Name, l.URL, l.Category, l.Description, l.Kind)
		assert.NoError(t, err, l.Name)
	}
	for _, name := range []string{"social", "wallets", "docs", "gov", "defi", "networks"} {
		assert.True(t, categories[name], "seed has no %s links", name)
	}
}
