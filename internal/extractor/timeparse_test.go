package extractor

import "testing"

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5:00 PM", "17:00"},
		{"8 PM", "20:00"},
		{"8pm", "20:00"},
		{"12 PM", "12:00"},
		{"12:30 am", "00:30"},
		{"11:45am", "11:45"},
		{"17:30", "17:30"},
		{"1730", "17:30"},
		{"7", "07:00"},
		{"25:00", ""},
		{"", ""},
		{"happy hour", ""},
		{"13 pm", ""},
		{"5:75", ""},
		{"8:60 pm", ""},
	}

	for _, tt := range tests {
		if got := ParseTime(tt.in); got != tt.want {
			t.Errorf("ParseTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeWindow(t *testing.T) {
	tests := []struct {
		start, end string
		from, to   string
	}{
		{"5:00 PM", "8 PM", "17:00", "20:00"},
		{"", "", "17:00", "20:00"},
		{"4pm", "nonsense", "16:00", "20:00"},
		{"n/a", "21:00", "17:00", "21:00"},
		{"5:75", "9:99 pm", "17:00", "20:00"},
	}

	for _, tt := range tests {
		from, to := NormalizeWindow(tt.start, tt.end)
		if from != tt.from || to != tt.to {
			t.Errorf("NormalizeWindow(%q, %q) = %s-%s, want %s-%s", tt.start, tt.end, from, to, tt.from, tt.to)
		}
	}
}

func TestChooseOffer(t *testing.T) {
	tests := []struct {
		name, desc string
		pct        int
		title      string
	}{
		{"Gallery", "", 25, "Happy Hour Special"},
		{"Gallery", "2+1 on beers", 33, "Buy 2 Get 1 Free"},
		{"Gallery", "Half price wine", 50, "Half Price Happy Hour"},
		{"Gallery", "30% off food", 30, "30% Off Happy Hour"},
		{"Gallery", "buy 2 get 1 and 50% off", 33, "Buy 2 Get 1 Free"},
		{"Sky Rooftop Bar", "50% off", 50, "Rooftop Happy Hour"},
		{"Irish Pub", "", 25, "Bar Happy Hour"},
		{"Thai Restaurant", "30%", 30, "Restaurant Happy Hour"},
	}

	for _, tt := range tests {
		got := chooseOffer(tt.name, tt.desc)
		if got.Percentage != tt.pct || got.Title != tt.title {
			t.Errorf("chooseOffer(%q, %q) = %d %q, want %d %q",
				tt.name, tt.desc, got.Percentage, got.Title, tt.pct, tt.title)
		}
	}
}
