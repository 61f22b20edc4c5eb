package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Professional Cinema":     "professional-cinema",
		"FPV Racing & Freestyle":  "fpv-racing--freestyle",
		"  Industrial\tDrones  ":  "industrial-drones",
		"Spare Parts!":            "spare-parts",
		"Under_score Name":        "under_score-name",
		"Ünïcode":                 "ncode",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
		if again := Slugify(in); again != Slugify(in) {
			t.Fatalf("Slugify not deterministic for %q", in)
		}
	}
}
