package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albumdesk/albumdesk/app/models"
)

type fakeCustomerStore struct {
	customers []models.Customer
	archived  []uint
}

func (s *fakeCustomerStore) FindRetentionCandidates(cutoff time.Time) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range s.customers {
		if c.AlbumStatus != models.ALBUM_STATUS_DELIVERED || c.DeliveredAt == nil {
			continue
		}
		if !c.DeliveredAt.Before(cutoff) {
			continue
		}
		if len(c.Media) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCustomerStore) Archive(id uint) error {
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers[i].Status = models.CUSTOMER_STATUS_ARCHIVED
		}
	}
	s.archived = append(s.archived, id)
	return nil
}

type fakeMediaStore struct {
	cleared []uint
	parent  *fakeCustomerStore
}

func (s *fakeMediaStore) DeleteAllByCustomerID(customerID uint) error {
	s.cleared = append(s.cleared, customerID)
	if s.parent != nil {
		for i := range s.parent.customers {
			if s.parent.customers[i].ID == customerID {
				s.parent.customers[i].Media = nil
			}
		}
	}
	return nil
}

type fakeDeleter struct {
	deleted []string // "folder/filename"
	failOn  map[string]bool
}

func (d *fakeDeleter) Delete(_ context.Context, folder, filename string) error {
	key := folder + "/" + filename
	if d.failOn[key] {
		return errors.New("remote delete failed")
	}
	d.deleted = append(d.deleted, key)
	return nil
}

type fakeResyncer struct {
	calls int
}

func (r *fakeResyncer) Resync() (bool, error) {
	r.calls++
	return true, nil
}

func daysAgo(n int) *time.Time {
	t := time.Now().Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

func deliveredCustomer(id uint, tenant models.Tenant, deliveredDaysAgo int, urls ...string) models.Customer {
	media := make([]models.MediaItem, 0, len(urls))
	for _, u := range urls {
		media = append(media, models.MediaItem{CustomerID: id, Kind: models.MEDIA_KIND_LIBRARY, URL: u, FileName: "x"})
	}
	return models.Customer{
		ID:          id,
		TenantID:    tenant.ID,
		Tenant:      tenant,
		BrideName:   "ayse",
		AlbumStatus: models.ALBUM_STATUS_DELIVERED,
		DeliveredAt: daysAgo(deliveredDaysAgo),
		Media:       media,
	}
}

func TestScannerClearsAgedDeliveredCustomers(t *testing.T) {
	tenant := models.Tenant{ID: 1, AutoDeleteMedia: true}
	customers := &fakeCustomerStore{customers: []models.Customer{
		deliveredCustomer(10, tenant, 40,
			"https://cdn.example.com/ayse-mehmet-abc123/photo1.jpg",
			"https://cdn.example.com/ayse-mehmet-abc123/photo2.jpg",
			"https://cdn.example.com/ayse-mehmet-abc123/photo3.jpg",
		),
		deliveredCustomer(11, tenant, 10,
			"https://cdn.example.com/fatma-ali-def456/photo1.jpg",
			"https://cdn.example.com/fatma-ali-def456/photo2.jpg",
		),
	}}
	media := &fakeMediaStore{parent: customers}
	deleter := &fakeDeleter{}
	resyncer := &fakeResyncer{}

	scanner := NewScanner(customers, media, deleter, resyncer, 30*24*time.Hour)
	stats, err := scanner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Cleared)
	assert.Equal(t, 0, stats.Errors)

	// 40-day-old record cleared and archived, 10-day-old untouched
	assert.Equal(t, []uint{uint(10)}, media.cleared)
	assert.Equal(t, []uint{uint(10)}, customers.archived)
	assert.Len(t, deleter.deleted, 3)
	assert.Equal(t, models.CUSTOMER_STATUS_ARCHIVED, customers.customers[0].Status)
	assert.NotEqual(t, models.CUSTOMER_STATUS_ARCHIVED, customers.customers[1].Status)
	assert.Equal(t, 1, resyncer.calls)
}

func TestScannerSkipsTenantsWithoutOptIn(t *testing.T) {
	tenant := models.Tenant{ID: 1, AutoDeleteMedia: false}
	customers := &fakeCustomerStore{customers: []models.Customer{
		deliveredCustomer(10, tenant, 60, "https://cdn.example.com/f/p.jpg"),
	}}
	media := &fakeMediaStore{parent: customers}
	deleter := &fakeDeleter{}
	resyncer := &fakeResyncer{}

	scanner := NewScanner(customers, media, deleter, resyncer, 30*24*time.Hour)
	stats, err := scanner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 0, stats.Cleared)
	assert.Empty(t, deleter.deleted)
	assert.Empty(t, media.cleared)
	assert.Equal(t, 0, resyncer.calls)
}

func TestScannerClearsDatabaseDespiteDeleteFailures(t *testing.T) {
	tenant := models.Tenant{ID: 1, AutoDeleteMedia: true}
	customers := &fakeCustomerStore{customers: []models.Customer{
		deliveredCustomer(10, tenant, 45,
			"https://cdn.example.com/folder/a.jpg",
			"https://cdn.example.com/folder/b.jpg",
			"https://cdn.example.com/folder/c.jpg",
		),
	}}
	media := &fakeMediaStore{parent: customers}
	deleter := &fakeDeleter{failOn: map[string]bool{
		"folder/a.jpg": true,
		"folder/c.jpg": true,
	}}
	resyncer := &fakeResyncer{}

	scanner := NewScanner(customers, media, deleter, resyncer, 30*24*time.Hour)
	stats, err := scanner.Run(context.Background())
	require.NoError(t, err)

	// failed deletes are counted but never abort the batch
	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 1, stats.Cleared)
	assert.Equal(t, []string{"folder/b.jpg"}, deleter.deleted)
	assert.Equal(t, []uint{uint(10)}, media.cleared)
	assert.Equal(t, 1, resyncer.calls)
}

func TestScannerDeduplicatesSharedURLs(t *testing.T) {
	tenant := models.Tenant{ID: 1, AutoDeleteMedia: true}
	customer := deliveredCustomer(10, tenant, 45,
		"https://cdn.example.com/folder/a.jpg",
	)
	// the selected subset references the same stored object
	customer.Media = append(customer.Media, models.MediaItem{
		CustomerID: 10,
		Kind:       models.MEDIA_KIND_SELECTED,
		URL:        "https://cdn.example.com/folder/a.jpg",
		FileName:   "a.jpg",
	})
	customers := &fakeCustomerStore{customers: []models.Customer{customer}}
	media := &fakeMediaStore{parent: customers}
	deleter := &fakeDeleter{}

	scanner := NewScanner(customers, media, deleter, &fakeResyncer{}, 30*24*time.Hour)
	stats, err := scanner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Cleared)
	assert.Equal(t, []string{"folder/a.jpg"}, deleter.deleted, "shared URL must be deleted once")
}

func TestScannerSecondRunIsNoOp(t *testing.T) {
	tenant := models.Tenant{ID: 1, AutoDeleteMedia: true}
	customers := &fakeCustomerStore{customers: []models.Customer{
		deliveredCustomer(10, tenant, 45, "https://cdn.example.com/folder/a.jpg"),
	}}
	media := &fakeMediaStore{parent: customers}
	deleter := &fakeDeleter{}
	resyncer := &fakeResyncer{}

	scanner := NewScanner(customers, media, deleter, resyncer, 30*24*time.Hour)

	stats, err := scanner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Cleared)

	// media arrays are empty now, the customer no longer matches the predicate
	stats, err = scanner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, 0, stats.Cleared)
	assert.Equal(t, 1, resyncer.calls)
}

func TestParseObjectRef(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		folder   string
		filename string
		wantErr  bool
	}{
		{
			name:     "folder and filename",
			url:      "https://cdn.example.com/ayse-mehmet-abc123/photo1.jpg",
			folder:   "ayse-mehmet-abc123",
			filename: "photo1.jpg",
		},
		{
			name:     "root level object",
			url:      "https://cdn.example.com/banner.png",
			folder:   "",
			filename: "banner.png",
		},
		{
			name:     "nested folder",
			url:      "https://cdn.example.com/images/general/logo.png",
			folder:   "images/general",
			filename: "logo.png",
		},
		{
			name:     "url encoded parts",
			url:      "https://cdn.example.com/g%C3%BCl-ahmet/d%C3%BC%C4%9F%C3%BCn%201.jpg",
			folder:   "gül-ahmet",
			filename: "düğün 1.jpg",
		},
		{
			name:    "no path",
			url:     "https://cdn.example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := parseObjectRef(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.folder, ref.Folder)
			assert.Equal(t, tt.filename, ref.Filename)
		})
	}
}

func TestCollectObjectRefsSkipsUnparseable(t *testing.T) {
	media := []models.MediaItem{
		{URL: "https://cdn.example.com/folder/ok.jpg"},
		{URL: "://not-a-url"},
		{URL: ""},
	}
	refs := collectObjectRefs(media)
	require.Len(t, refs, 1)
	assert.Equal(t, "ok.jpg", refs[0].Filename)
}
