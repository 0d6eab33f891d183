package biztime

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { location.Store(time.UTC) })

	require.NoError(t, Init("Asia/Tokyo"))
	assert.Equal(t, "Asia/Tokyo", Location().String())

	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 09:00", FormatInBizTimezone(ts, "2006-01-02 15:04"))

	assert.Error(t, Init("Not/AZone"))
}

func TestNowUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NowUTC().Location())
}
