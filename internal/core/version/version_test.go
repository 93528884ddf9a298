package version

import "testing"

func TestInfoDefaults(t *testing.T) {
	got := Info("reviewlens-classify")
	want := BuildInfo{Service: "reviewlens-classify", Version: "dev", Commit: "none", Date: "unknown"}
	if got != want {
		t.Fatalf("Info = %+v, want %+v", got, want)
	}
}
