package timefmt

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{45, "0:45"},
		{65, "1:05"},
		{200, "3:20"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "60:00"},
		{-10, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.seconds))
		})
	}
}

func TestFormat_ShapeForFirstHour(t *testing.T) {
	shape := regexp.MustCompile(`^(0|[1-9][0-9]*):[0-5][0-9]$`)
	for s := 0; s < 3600; s++ {
		got := Format(s)
		if !shape.MatchString(got) {
			t.Fatalf("Format(%d) = %q does not match M:SS", s, got)
		}
		back, err := Parse(got)
		require.NoError(t, err)
		if back != s {
			t.Fatalf("Parse(Format(%d)) = %d", s, back)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{input: "3:45", expected: 225},
		{input: "0:00", expected: 0},
		{input: " 4:02 ", expected: 242},
		{input: "12:09", expected: 729},
		{input: "345", wantErr: true},
		{input: "3:5", wantErr: true},
		{input: "3:60", wantErr: true},
		{input: "x:10", wantErr: true},
		{input: "-1:10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 0.0, Percent(0, 200))
	assert.Equal(t, 50.0, Percent(100, 200))
	assert.Equal(t, 100.0, Percent(250, 200))
}
