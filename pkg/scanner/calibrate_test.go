package scanner

import "testing"

func TestCalibrateIconSize(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{3840, 128},
		{5120, 128},
		{2560, 85},
		{3000, 85},
		{1920, 64},
		{1280, 64},
		{0, 64},
	}
	for _, c := range cases {
		if got := CalibrateIconSize(c.width); got != c.want {
			t.Fatalf("width %d: expected %d got %d", c.width, c.want, got)
		}
	}
}
