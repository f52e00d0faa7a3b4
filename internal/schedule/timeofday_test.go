package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+30), got)

	got, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), got)

	_, err = ParseTimeOfDay("9:3")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("")
	assert.Error(t, err)
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:00", TimeOfDay(9*60).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "17:30", TimeOfDay(17*60+30).String())
}

func TestTimeOfDayAdd(t *testing.T) {
	start := TimeOfDay(17 * 60)
	assert.Equal(t, TimeOfDay(18*60+30), start.Add(90))
}

func TestTimeOfDayOn(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Athens")
	require.NoError(t, err)

	date := time.Date(2026, 3, 3, 0, 0, 0, 0, loc)
	at := TimeOfDay(9*60 + 30).On(date, loc)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, date.Day(), at.Day())
	assert.Equal(t, loc, at.Location())
}
