package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/internal/pkg/quota"
)

type stubTenantStore struct {
	tenant *models.Tenant
}

func (s *stubTenantStore) GetByID(id uint) (*models.Tenant, error) {
	if s.tenant == nil || s.tenant.ID != id {
		return nil, errors.New("record not found")
	}
	return s.tenant, nil
}

func (s *stubTenantStore) ListQuotaOwners() ([]models.Tenant, error) { return nil, nil }

func (s *stubTenantStore) UpdateStorageUsage(uint, int64) error { return nil }

type stubAggregator struct{}

func (stubAggregator) TotalLibrarySizeByTenant() (map[uint]int64, error) { return nil, nil }

func TestNormalizeFileNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain names pass through",
			in:   []string{"a.jpg", "b.jpg"},
			want: []string{"a.jpg", "b.jpg"},
		},
		{
			name: "path components are stripped",
			in:   []string{"../../etc/a.jpg", "folder/b.jpg"},
			want: []string{"a.jpg", "b.jpg"},
		},
		{
			name: "empties and duplicates are dropped",
			in:   []string{"a.jpg", "", "a.jpg", "/", "."},
			want: []string{"a.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFileNames(tt.in))
		})
	}
}

func TestUploadResponseIncludesQuotaSnapshot(t *testing.T) {
	defer func() { mediaLedger = nil }()
	mediaLedger = quota.NewLedger(&stubTenantStore{
		tenant: &models.Tenant{ID: 5, StorageUsage: 1000, StorageLimit: 2000},
	}, stubAggregator{})

	item := &models.MediaItem{FileName: "a.jpg"}
	resp := uploadResponse(item, 5)

	assert.Equal(t, item, resp["media"])
	snap, ok := resp["quota"].(*quota.Snapshot)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), snap.StorageUsage)
	assert.Equal(t, int64(2000), snap.StorageLimit)
}

func TestUploadResponseOmitsQuotaOnSnapshotFailure(t *testing.T) {
	defer func() { mediaLedger = nil }()
	mediaLedger = quota.NewLedger(&stubTenantStore{}, stubAggregator{})

	resp := uploadResponse(&models.MediaItem{FileName: "a.jpg"}, 5)

	assert.Contains(t, resp, "media")
	assert.NotContains(t, resp, "quota")
}
