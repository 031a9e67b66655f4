package domain

import "testing"

func TestHour24(t *testing.T) {
	tests := []struct {
		name string
		tod  TimeOfDay
		want int
	}{
		{"1pm", TimeOfDay{Hour: 1, Meridiem: PM}, 13},
		{"11pm", TimeOfDay{Hour: 11, Meridiem: PM}, 23},
		{"12pm stays noon", TimeOfDay{Hour: 12, Meridiem: PM}, 12},
		{"12am is midnight", TimeOfDay{Hour: 12, Meridiem: AM}, 0},
		{"1am", TimeOfDay{Hour: 1, Meridiem: AM}, 1},
		{"11am", TimeOfDay{Hour: 11, Meridiem: AM}, 11},
		{"6pm", TimeOfDay{Hour: 6, Meridiem: PM}, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tod.Hour24(); got != tt.want {
				t.Errorf("Hour24(%+v) = %d, want %d", tt.tod, got, tt.want)
			}
		})
	}
}

// Converting display form to 24-hour form and back must be loss-free for
// every valid (hour, meridiem) pair.
func TestHour24RoundTrip(t *testing.T) {
	for _, meridiem := range []Meridiem{AM, PM} {
		for hour := 1; hour <= 12; hour++ {
			for _, minute := range []int{0, 30, 59} {
				orig := TimeOfDay{Hour: hour, Minute: minute, Meridiem: meridiem}
				back := TimeFromHour24(orig.Hour24(), orig.Minute)
				if back != orig {
					t.Errorf("round trip %+v -> %d -> %+v", orig, orig.Hour24(), back)
				}
			}
		}
	}
}

func TestTimeFromHour24(t *testing.T) {
	tests := []struct {
		hour24 int
		want   TimeOfDay
	}{
		{0, TimeOfDay{Hour: 12, Meridiem: AM}},
		{1, TimeOfDay{Hour: 1, Meridiem: AM}},
		{11, TimeOfDay{Hour: 11, Meridiem: AM}},
		{12, TimeOfDay{Hour: 12, Meridiem: PM}},
		{13, TimeOfDay{Hour: 1, Meridiem: PM}},
		{18, TimeOfDay{Hour: 6, Meridiem: PM}},
		{23, TimeOfDay{Hour: 11, Meridiem: PM}},
	}

	for _, tt := range tests {
		if got := TimeFromHour24(tt.hour24, 0); got != tt.want {
			t.Errorf("TimeFromHour24(%d) = %+v, want %+v", tt.hour24, got, tt.want)
		}
	}
}

func TestParseMeridiem(t *testing.T) {
	for _, s := range []string{"am", "AM", " am "} {
		if ParseMeridiem(s) != AM {
			t.Errorf("ParseMeridiem(%q) != AM", s)
		}
	}
	for _, s := range []string{"pm", "PM", "", "whenever"} {
		if ParseMeridiem(s) != PM {
			t.Errorf("ParseMeridiem(%q) != PM", s)
		}
	}
}
