package parsing

import "testing"

func TestParsePoint(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Point
		wantErr bool
	}{
		{"simple", "30.70,46.39", Point{Lon: 30.70, Lat: 46.39}, false},
		{"whitespace", " 30.70 , 46.39 ", Point{Lon: 30.70, Lat: 46.39}, false},
		{"too few fields", "30.70", Point{}, true},
		{"too many fields", "30.70,46.39,1.0", Point{}, true},
		{"non numeric", "abc,def", Point{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePoint(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
