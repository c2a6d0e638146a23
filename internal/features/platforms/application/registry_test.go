package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/GintasS/social-media-post-generator/internal/config"
	"github.com/GintasS/social-media-post-generator/internal/features/platforms/domain"
)

const seedDoc = `{
  "theme": {"accent": "violet"},
  "platforms": {
    "twitter": {"maxLength": 280, "hashtagLimit": 3, "name": "Twitter"},
    "instagram": {"maxLength": 2200, "hashtagLimit": 30, "name": "Instagram"},
    "linkedin": {"maxLength": 3000, "hashtagLimit": 5, "name": "LinkedIn"}
  },
  "footer": "keep me"
}`

func newTestRegistry(t *testing.T, doc string) (Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return NewRegistry(config.NewAppConfigService(path, nil), nil), path
}

func TestListPlatformsKeepsInsertionOrder(t *testing.T) {
	reg, _ := newTestRegistry(t, seedDoc)

	catalog, err := reg.ListPlatforms(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"twitter", "instagram", "linkedin"}, catalog.Keys)
	twitter, ok := catalog.Lookup("twitter")
	require.True(t, ok)
	assert.Equal(t, "Twitter", twitter.DisplayName)
	assert.Equal(t, 280, twitter.MaxLength)
	assert.Equal(t, 3, twitter.HashtagLimit)
	assert.Equal(t, []domain.Rule{{Name: "maxLength", Value: "280"}, {Name: "hashtagLimit", Value: "3"}}, twitter.Rules)
	assert.Equal(t, int64(2200), gjson.GetBytes(catalog.Details, "instagram.maxLength").Int())
}

func TestListPlatformsWithoutPlatformsSection(t *testing.T) {
	reg, _ := newTestRegistry(t, `{"theme":"dark"}`)

	catalog, err := reg.ListPlatforms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog.Keys)
	assert.JSONEq(t, `{}`, string(catalog.Details))
}

func TestListPlatformsStorageFailure(t *testing.T) {
	reg := NewRegistry(config.NewAppConfigService(filepath.Join(t.TempDir(), "missing.json"), nil), nil)

	_, err := reg.ListPlatforms(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrDocumentNotFound)
}

func TestRegisterPlatformRoundTrip(t *testing.T) {
	reg, path := newTestRegistry(t, seedDoc)
	ctx := context.Background()

	got, err := reg.RegisterPlatform(ctx, "Twitch", 280, 3, "Twitch")
	require.NoError(t, err)
	assert.Equal(t, domain.RegisteredPlatform{Name: "twitch", MaxLength: 280, HashtagLimit: 3, DisplayName: "Twitch"}, got)

	catalog, err := reg.ListPlatforms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"twitter", "instagram", "linkedin", "twitch"}, catalog.Keys)
	assert.JSONEq(t, `{"maxLength":280,"hashtagLimit":3,"name":"Twitch"}`,
		gjson.GetBytes(catalog.Details, "twitch").Raw)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "violet", gjson.GetBytes(raw, "theme.accent").String())
	assert.Equal(t, "keep me", gjson.GetBytes(raw, "footer").String())
}

func TestRegisterPlatformCreatesPlatformsSection(t *testing.T) {
	reg, _ := newTestRegistry(t, `{"theme":"dark"}`)

	_, err := reg.RegisterPlatform(context.Background(), "Mastodon", 500, 4, "Mastodon")
	require.NoError(t, err)

	catalog, err := reg.ListPlatforms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mastodon"}, catalog.Keys)
}

func TestRegisterPlatformInvalidName(t *testing.T) {
	names := []string{"", "Twitter2", "my platform", "x-com", "Café", "ＴＷＩＴＴＥＲ", "snake_case", "tik.tok"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			reg, path := newTestRegistry(t, seedDoc)
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			_, err = reg.RegisterPlatform(context.Background(), name, 100, 1, "Whatever")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidPlatformName))

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), "registry must be unchanged")
		})
	}
}

func TestRegisterPlatformDuplicateIgnoresCase(t *testing.T) {
	reg, _ := newTestRegistry(t, `{"platforms":{}}`)
	ctx := context.Background()

	_, err := reg.RegisterPlatform(ctx, "Bluesky", 300, 2, "Bluesky")
	require.NoError(t, err)

	_, err = reg.RegisterPlatform(ctx, "BLUESKY", 999, 9, "Other")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicatePlatform)

	catalog, err := reg.ListPlatforms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bluesky"}, catalog.Keys)
	p, _ := catalog.Lookup("bluesky")
	assert.Equal(t, 300, p.MaxLength)
}

func TestRegisterPlatformNameCheckedBeforeDuplicate(t *testing.T) {
	reg, _ := newTestRegistry(t, seedDoc)

	_, err := reg.RegisterPlatform(context.Background(), "twitter!", 1, 1, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidPlatformName)
}

func TestParseCatalogKeepsUnknownAttributes(t *testing.T) {
	catalog := ParseCatalog([]byte(`{"platforms":{"threads":{"name":"Threads","tone":"casual","maxLength":500}}}`))

	p, ok := catalog.Lookup("threads")
	require.True(t, ok)
	assert.Equal(t, "Threads", p.DisplayName)
	assert.Equal(t, []domain.Rule{{Name: "tone", Value: "casual"}, {Name: "maxLength", Value: "500"}}, p.Rules)
}

func TestIsValidPlatformName(t *testing.T) {
	assert.True(t, IsValidPlatformName("Twitch"))
	assert.True(t, IsValidPlatformName("x"))
	assert.False(t, IsValidPlatformName(""))
	assert.False(t, IsValidPlatformName("ñ"))
	assert.False(t, IsValidPlatformName("abc1"))
}
