package options_test

import (
	"context"
	"errors"
	"sitescan/pkg/domain"
	"sitescan/pkg/options"
	mockwp "sitescan/pkg/wp/mock"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T) (*options.Store, *mockwp.MockOptionsAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mockwp.NewMockOptionsAPI(ctrl)

	return options.New(api), api
}

func TestStore_RefreshAndSnapshot(t *testing.T) {
	s, api := newStore(t)
	api.EXPECT().Options(gomock.Any()).Return(domain.Options{
		"theme_support":        "reader",
		"supported_post_types": []any{"post", "page"},
	}, nil)

	require.NoError(t, s.Refresh(context.Background()))
	require.Equal(t, domain.ThemeSupportReader, s.ThemeSupport())

	snap := s.Snapshot()
	require.Empty(t, snap.ModifiedOptions)
	require.Equal(t, []any{"post", "page"}, snap.OriginalOptions["supported_post_types"])

	// Snapshots are copies.
	snap.OriginalOptions["supported_post_types"].([]any)[0] = "attachment"
	require.Equal(t, []any{"post", "page"}, s.Snapshot().OriginalOptions["supported_post_types"])
}

func TestStore_RefreshError(t *testing.T) {
	s, api := newStore(t)
	api.EXPECT().Options(gomock.Any()).Return(nil, errors.New("boom"))

	err := s.Refresh(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestStore_SetDropsUnchanged(t *testing.T) {
	s, api := newStore(t)
	api.EXPECT().Options(gomock.Any()).Return(domain.Options{"theme_support": "reader"}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.Set("theme_support", "standard")
	require.Equal(t, domain.Options{"theme_support": "standard"}, s.ModifiedOptions())
	// Theme support reflects stored options only.
	require.Equal(t, domain.ThemeSupportReader, s.ThemeSupport())

	s.Set("theme_support", "reader")
	require.Empty(t, s.ModifiedOptions())
}

func TestStore_Save(t *testing.T) {
	s, api := newStore(t)
	api.EXPECT().Options(gomock.Any()).Return(domain.Options{"theme_support": "reader"}, nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.Update(domain.Options{"theme_support": "standard", "suppressed_plugins": map[string]any{"foo": true}})

	api.EXPECT().UpdateOptions(gomock.Any(), domain.Options{
		"theme_support":      "standard",
		"suppressed_plugins": map[string]any{"foo": true},
	}).Return(domain.Options{
		"theme_support":      "standard",
		"suppressed_plugins": map[string]any{"foo": true},
	}, nil)

	require.NoError(t, s.Save(context.Background()))
	require.Empty(t, s.ModifiedOptions())
	require.Equal(t, domain.ThemeSupportStandard, s.ThemeSupport())
}

func TestStore_SaveWithoutModificationsIsNoop(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Save(context.Background()))
}

func TestStore_SaveErrorKeepsModifications(t *testing.T) {
	s, api := newStore(t)
	s.Set("theme_support", "standard")
	api.EXPECT().UpdateOptions(gomock.Any(), gomock.Any()).Return(nil, errors.New("forbidden"))

	require.Error(t, s.Save(context.Background()))
	require.Equal(t, domain.Options{"theme_support": "standard"}, s.ModifiedOptions())
}

func TestStore_Subscribe(t *testing.T) {
	s, _ := newStore(t)
	ch, unsubscribe := s.Subscribe()

	s.Set("theme_support", "standard")
	s.Set("theme_support", "transitional")

	// Coalesced into a single pending notification.
	require.Len(t, ch, 1)
	<-ch

	unsubscribe()
	unsubscribe()
	s.Set("theme_support", "reader")
	require.Empty(t, ch)
}
