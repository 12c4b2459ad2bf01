package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionLibrary() []MediaItem {
	model := "X-T5"
	return []MediaItem{
		{CustomerID: 7, Kind: MEDIA_KIND_LIBRARY, URL: "https://cdn.example.com/folder/a.jpg", FileName: "a.jpg", FileSize: 100, ContentType: "image/jpeg", CameraModel: &model},
		{CustomerID: 7, Kind: MEDIA_KIND_LIBRARY, URL: "https://cdn.example.com/folder/b.jpg", FileName: "b.jpg", FileSize: 200, ContentType: "image/jpeg"},
		{CustomerID: 7, Kind: MEDIA_KIND_LIBRARY, URL: "https://cdn.example.com/folder/c.jpg", FileName: "c.jpg", FileSize: 300, ContentType: "image/jpeg"},
	}
}

func TestBuildSelectionReferencesLibraryObjects(t *testing.T) {
	selection, err := BuildSelection(selectionLibrary(), []string{"a.jpg", "c.jpg"})
	require.NoError(t, err)
	require.Len(t, selection, 2)

	for _, item := range selection {
		assert.Equal(t, MEDIA_KIND_SELECTED, item.Kind)
		assert.Equal(t, uint(7), item.CustomerID)
	}
	// same stored object, no copied bytes
	assert.Equal(t, "https://cdn.example.com/folder/a.jpg", selection[0].URL)
	assert.Equal(t, int64(100), selection[0].FileSize)
	assert.Equal(t, "https://cdn.example.com/folder/c.jpg", selection[1].URL)
}

func TestBuildSelectionCollapsesDuplicates(t *testing.T) {
	selection, err := BuildSelection(selectionLibrary(), []string{"b.jpg", "b.jpg", "b.jpg"})
	require.NoError(t, err)
	assert.Len(t, selection, 1)
}

func TestBuildSelectionRejectsUnknownFile(t *testing.T) {
	_, err := BuildSelection(selectionLibrary(), []string{"a.jpg", "ghost.jpg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.jpg")
}

func TestBuildSelectionEmptyClearsSelection(t *testing.T) {
	selection, err := BuildSelection(selectionLibrary(), nil)
	require.NoError(t, err)
	assert.Empty(t, selection)
}
