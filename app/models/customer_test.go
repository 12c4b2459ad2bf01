package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageFolder(t *testing.T) {
	folder := NewStorageFolder("Gül", "Ahmet")

	parts := strings.Split(folder, "-")
	require.GreaterOrEqual(t, len(parts), 3)
	assert.True(t, strings.HasPrefix(folder, "gul-ahmet-"), "expected transliterated slug, got %s", folder)
	assert.Len(t, parts[len(parts)-1], 8)

	// Same names must still yield distinct folders.
	other := NewStorageFolder("Gül", "Ahmet")
	assert.NotEqual(t, folder, other)
}

func TestNewStorageFolderEmptyNames(t *testing.T) {
	folder := NewStorageFolder("", "")
	assert.True(t, strings.HasPrefix(folder, "couple-"), "got %s", folder)
}

func TestCreateCustomerAssignsFolderOnce(t *testing.T) {
	c, err := CreateCustomer(1, "Ayşe", "Mehmet", "+90 555 000 00 00")
	require.NoError(t, err)
	require.NotEmpty(t, c.StorageFolder)

	folder := c.StorageFolder
	c.BrideName = "Fatma"
	c.GroomName = "Ali"

	// The folder is a stored value; renaming the couple must not move it.
	assert.Equal(t, folder, c.StorageFolder)
	assert.Equal(t, CUSTOMER_STATUS_ACTIVE, c.Status)
}

func TestCreateCustomerValidation(t *testing.T) {
	_, err := CreateCustomer(1, "A", "Mehmet", "+90 555 000 00 00")
	assert.Error(t, err, "single-letter bride name must fail validation")

	_, err = CreateCustomer(1, "Ayşe", "Mehmet", "")
	assert.Error(t, err, "missing phone must fail validation")
}

func TestMarkDelivered(t *testing.T) {
	c := &Customer{AlbumStatus: ALBUM_STATUS_READY}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	c.MarkDelivered(now)

	assert.Equal(t, ALBUM_STATUS_DELIVERED, c.AlbumStatus)
	require.NotNil(t, c.DeliveredAt)
	assert.Equal(t, now, *c.DeliveredAt)
}

func TestMediaSplitByKind(t *testing.T) {
	c := &Customer{
		Media: []MediaItem{
			{FileName: "a.jpg", Kind: MEDIA_KIND_LIBRARY},
			{FileName: "b.jpg", Kind: MEDIA_KIND_SELECTED},
			{FileName: "c.jpg", Kind: MEDIA_KIND_LIBRARY},
		},
	}

	library := c.LibraryMedia()
	selected := c.SelectedMedia()

	require.Len(t, library, 2)
	require.Len(t, selected, 1)
	assert.Equal(t, "b.jpg", selected[0].FileName)
}
