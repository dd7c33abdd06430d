package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/paramstr/pkg/paramstr/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Run("built-in values", func(t *testing.T) {
		d, err := config.LoadDefaults()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultDefaults(), d)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PARAMSTR_OPEN_DELIM", "<<")
		t.Setenv("PARAMSTR_CLOSE_DELIM", ">>")
		t.Setenv("PARAMSTR_DEFAULT_VALUE", "none")
		t.Setenv("PARAMSTR_CONVERT_DEFAULT", "true")
		t.Setenv("PARAMSTR_WATCH_DEBOUNCE", "250ms")

		d, err := config.LoadDefaults()
		require.NoError(t, err)
		assert.Equal(t, config.Defaults{
			OpenDelim:      "<<",
			CloseDelim:     ">>",
			DefaultValue:   "none",
			ConvertDefault: true,
			WatchDebounce:  250 * time.Millisecond,
		}, d)
	})

	t.Run("unparsable value", func(t *testing.T) {
		t.Setenv("PARAMSTR_WATCH_DEBOUNCE", "soon")

		_, err := config.LoadDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse defaults")
	})

	t.Run("blank delimiter", func(t *testing.T) {
		t.Setenv("PARAMSTR_OPEN_DELIM", " ")

		_, err := config.LoadDefaults()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PARAMSTR_OPEN_DELIM must not be blank")
	})
}

func TestDefaults_Validate(t *testing.T) {
	d := config.Defaults{WatchDebounce: -time.Second}
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARAMSTR_OPEN_DELIM")
	assert.Contains(t, err.Error(), "PARAMSTR_CLOSE_DELIM")
	assert.Contains(t, err.Error(), "PARAMSTR_WATCH_DEBOUNCE")

	assert.NoError(t, config.DefaultDefaults().Validate())
}

func TestDefaults_Merge(t *testing.T) {
	base := config.DefaultDefaults()

	merged := base.Merge(config.New(map[string]any{
		"open":            "(",
		"close":           ")",
		"default":         0,
		"convert_default": true,
		"watch_debounce":  "1s",
	}))
	assert.Equal(t, config.Defaults{
		OpenDelim:      "(",
		CloseDelim:     ")",
		DefaultValue:   "0",
		ConvertDefault: true,
		WatchDebounce:  time.Second,
	}, merged)

	assert.Equal(t, base, base.Merge(config.New(nil)))
}
