package place

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository())
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService()

	desc := "national museum"
	created, err := svc.Create(context.Background(), CreateInput{
		Name:        "Rijksmuseum",
		Lat:         52.3600,
		Lon:         4.8852,
		Category:    "museum",
		Description: &desc,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, strings.HasPrefix(created.ID, "plc_"))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rijksmuseum", got.Name)
	assert.Equal(t, "museum", got.Category)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name  string
		input CreateInput
		field string
	}{
		{"missing name", CreateInput{Lat: 52, Lon: 4}, "name"},
		{"name too long", CreateInput{Name: strings.Repeat("x", MaxNameLength+1), Lat: 52, Lon: 4}, "name"},
		{"bad latitude", CreateInput{Name: "ok", Lat: 91, Lon: 4}, "location"},
		{"bad longitude", CreateInput{Name: "ok", Lat: 52, Lon: 181}, "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)

			found := false
			for _, fe := range vErr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected field error on %q, got %v", tt.field, vErr.Errors)
		})
	}
}

func TestService_Resolve_PreservesOrder(t *testing.T) {
	svc := newTestService()

	a, err := svc.Create(context.Background(), CreateInput{Name: "A", Lat: 52.36, Lon: 4.88})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), CreateInput{Name: "B", Lat: 52.37, Lon: 4.89})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), []string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "B", resolved[0].Name)
	assert.Equal(t, "A", resolved[1].Name)
}

func TestService_Resolve_UnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Resolve(context.Background(), []string{"plc_missing"})
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestService_List_CategoryFilter(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{Name: "Rijksmuseum", Lat: 52.36, Lon: 4.88, Category: "museum"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Name: "Vondelpark", Lat: 52.358, Lon: 4.868, Category: "park"})
	require.NoError(t, err)

	result, err := svc.List(context.Background(), "museum", 10, "")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Rijksmuseum", result.Items[0].Name)

	all, err := svc.List(context.Background(), "", 10, "")
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestService_List_Pagination(t *testing.T) {
	svc := newTestService()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(context.Background(), CreateInput{Name: name, Lat: 52.36, Lon: 4.88})
		require.NoError(t, err)
	}

	page1, err := svc.List(context.Background(), "", 2, "")
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := svc.List(context.Background(), "", 2, page1.NextCursor)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
	assert.Empty(t, page2.NextCursor)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateInput{Name: "Old Name", Lat: 52.36, Lon: 4.88})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, CreateInput{Name: "New Name", Lat: 52.37, Lon: 4.89})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), "plc_missing", CreateInput{Name: "X", Lat: 52, Lon: 4})
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}
