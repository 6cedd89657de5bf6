package driver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowSpec_Modes(t *testing.T) {
	spec, err := ParseWindowSpec("max")
	require.NoError(t, err)
	assert.Equal(t, WindowMaximize, spec.Mode)

	spec, err = ParseWindowSpec("min")
	require.NoError(t, err)
	assert.Equal(t, WindowHeadless, spec.Mode)
}

func TestParseWindowSpec_ExplicitRoundTrip(t *testing.T) {
	sizes := [][2]int{{1, 1}, {800, 600}, {1024, 768}, {1920, 1080}, {3840, 2160}, {1, 99999}}

	for _, size := range sizes {
		s := fmt.Sprintf("%dx%d", size[0], size[1])
		t.Run(s, func(t *testing.T) {
			spec, err := ParseWindowSpec(s)
			require.NoError(t, err)
			assert.Equal(t, WindowExplicit, spec.Mode)
			assert.Equal(t, size[0], spec.Width)
			assert.Equal(t, size[1], spec.Height)
			assert.Equal(t, s, spec.String())
		})
	}
}

func TestParseWindowSpec_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"maximum",
		"MAX",
		"1024",
		"1024x",
		"x768",
		"0x768",
		"1024x0",
		"-1x768",
		"1024x-768",
		"axb",
		"1024x768x2",
		"1024 x 768",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseWindowSpec(in)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestWindowSpec_String(t *testing.T) {
	assert.Equal(t, "max", WindowSpec{Mode: WindowMaximize}.String())
	assert.Equal(t, "min", WindowSpec{Mode: WindowHeadless}.String())
}

func TestCookiesFromMap(t *testing.T) {
	t.Run("single record", func(t *testing.T) {
		cookies := CookiesFromMap(map[string]string{"name": "test_cookie", "value": "test_value"})
		require.Len(t, cookies, 1)
		assert.Equal(t, Cookie{Name: "test_cookie", Value: "test_value"}, cookies[0])
	})

	t.Run("record with domain and path", func(t *testing.T) {
		cookies := CookiesFromMap(map[string]string{"name": "sid", "value": "1", "domain": ".example.com", "path": "/app"})
		require.Len(t, cookies, 1)
		assert.Equal(t, ".example.com", cookies[0].Domain)
		assert.Equal(t, "/app", cookies[0].Path)
	})

	t.Run("name to value pairs sorted", func(t *testing.T) {
		cookies := CookiesFromMap(map[string]string{"b": "2", "a": "1"})
		assert.Equal(t, []Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, cookies)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, CookiesFromMap(nil))
		assert.Nil(t, CookiesFromMap(map[string]string{}))
	})
}
