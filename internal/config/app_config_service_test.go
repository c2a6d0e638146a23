package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeDoc(t, `{"theme":"dark","platforms":{}}`)
	svc := NewAppConfigService(path, nil)

	doc, err := svc.LoadAppConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", gjson.GetBytes(doc, "theme").String())
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	svc := NewAppConfigService(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := svc.LoadAppConfig(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	svc := NewAppConfigService(writeDoc(t, `{"platforms":`), nil)

	_, err := svc.LoadAppConfig(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDocumentNotFound))
}

func TestSaveAppConfigIndentsAndReplaces(t *testing.T) {
	path := writeDoc(t, `{}`)
	svc := NewAppConfigService(path, nil)

	require.NoError(t, svc.SaveAppConfig(context.Background(), []byte(`{"a":1,"b":{"c":2}}`)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"a\": 1")
	assert.Equal(t, int64(2), gjson.GetBytes(raw, "b.c").Int())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestSaveAppConfigRejectsInvalidJSON(t *testing.T) {
	path := writeDoc(t, `{"keep":true}`)
	svc := NewAppConfigService(path, nil)

	require.Error(t, svc.SaveAppConfig(context.Background(), []byte(`{broken`)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep":true}`, string(raw))
}

func TestUpdateAppConfigAbortsOnError(t *testing.T) {
	path := writeDoc(t, `{"n":1}`)
	svc := NewAppConfigService(path, nil)
	boom := errors.New("boom")

	err := svc.UpdateAppConfig(context.Background(), func([]byte) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	raw, _ := os.ReadFile(path)
	assert.JSONEq(t, `{"n":1}`, string(raw))
}

func TestUpdateAppConfigSerializesWriters(t *testing.T) {
	path := writeDoc(t, `{"platforms":{}}`)
	svc := NewAppConfigService(path, nil)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := svc.UpdateAppConfig(context.Background(), func(doc []byte) ([]byte, error) {
				return sjson.SetBytes(doc, fmt.Sprintf("platforms.p%d", i), i)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	doc, err := svc.LoadAppConfig(context.Background())
	require.NoError(t, err)
	count := 0
	gjson.GetBytes(doc, "platforms").ForEach(func(_, _ gjson.Result) bool {
		count++
		return true
	})
	assert.Equal(t, writers, count)
}
