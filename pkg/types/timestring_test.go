package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", in: "10:00", want: "10:00"},
		{name: "postgres time with seconds", in: "19:30:00", want: "19:30"},
		{name: "garbage", in: "ten", wantErr: true},
		{name: "out of range", in: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, TimeString("13:00"), got)

	_, err = TimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("19:00").IsAfter("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	date := time.Date(2025, 3, 14, 22, 15, 0, 0, loc)

	got, err := TimeString("10:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 10, 30, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("07:45:00")))
	assert.Equal(t, TimeString("07:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err := TimeString("18:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "18:00", v)

	assert.Error(t, ts.Scan(42))
}
