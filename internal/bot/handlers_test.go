package bot

import (
	"testing"

	"github.com/example/clozebot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotifyArg(t *testing.T) {
	on, err := parseNotifyArg("on")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := parseNotifyArg(" OFF ")
	require.NoError(t, err)
	assert.False(t, off)

	_, err = parseNotifyArg("")
	assert.Error(t, err)
	_, err = parseNotifyArg("maybe")
	assert.Error(t, err)
}

func TestParseHourArg(t *testing.T) {
	for arg, want := range map[string]int{"0": 0, "9": 9, " 23 ": 23} {
		hour, err := parseHourArg(arg)
		require.NoError(t, err, "arg %q", arg)
		assert.Equal(t, want, hour)
	}
	for _, arg := range []string{"", "-1", "24", "noon"} {
		_, err := parseHourArg(arg)
		assert.Error(t, err, "arg %q", arg)
	}
}

func TestApplyConfigSetting(t *testing.T) {
	cfg := models.DefaultConfig()

	out, err := applyConfigSetting(cfg, "steps", "5,25")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 25}, out.LearningSteps)

	out, err = applyConfigSetting(cfg, "graduating", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, out.GraduatingInterval)

	out, err = applyConfigSetting(cfg, "newlimit", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, out.NewPerSession)

	// Case-insensitive setting names, untouched fields keep defaults.
	out, err = applyConfigSetting(cfg, "Steps", "1")
	require.NoError(t, err)
	assert.Equal(t, cfg.GraduatingInterval, out.GraduatingInterval)
}

func TestApplyConfigSettingRejectsBadInput(t *testing.T) {
	cfg := models.DefaultConfig()

	for _, tt := range []struct{ setting, value string }{
		{"steps", "5,nope"},
		{"steps", ""},
		{"steps", "0"},
		{"graduating", "-1"},
		{"newlimit", "-3"},
		{"ease", "2.0"},
	} {
		_, err := applyConfigSetting(cfg, tt.setting, tt.value)
		assert.Error(t, err, "%s=%s", tt.setting, tt.value)
	}
}
