package diag

import "testing"

func TestPermitsPrinting(t *testing.T) {
	tests := []struct {
		v    Verbosity
		sev  Severity
		want bool
	}{
		{Terse, SevError, true},
		{Terse, SevWarning, true},
		{Terse, SevInfo, false},
		{Verbose, SevError, true},
		{Verbose, SevWarning, true},
		{Verbose, SevInfo, true},
		{Debug, SevError, true},
		{Debug, SevWarning, true},
		{Debug, SevInfo, true},
	}
	for _, tt := range tests {
		if got := PermitsPrinting(tt.v, tt.sev); got != tt.want {
			t.Errorf("PermitsPrinting(%v, %v) = %v, want %v", tt.v, tt.sev, got, tt.want)
		}
	}
}

func TestPermitsPrintingMonotonic(t *testing.T) {
	levels := []Verbosity{Terse, Verbose, Debug}
	for i := 1; i < len(levels); i++ {
		for _, sev := range Severities {
			if PermitsPrinting(levels[i-1], sev) && !PermitsPrinting(levels[i], sev) {
				t.Errorf("%v permits %v but %v does not", levels[i-1], sev, levels[i])
			}
		}
	}
	for _, sev := range Severities {
		if !PermitsPrinting(Debug, sev) {
			t.Errorf("debug rejects %v", sev)
		}
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		want    Verbosity
		wantErr bool
	}{
		{"", Terse, false},
		{"terse", Terse, false},
		{"verbose", Verbose, false},
		{"debug", Debug, false},
		{"loud", Terse, true},
	}
	for _, tt := range tests {
		got, err := ParseVerbosity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVerbosity(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseVerbosity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	var zero Verbosity
	if zero != Terse {
		t.Error("zero verbosity must be terse")
	}
}

func TestFilter(t *testing.T) {
	logs := []Log{Info("i"), Error("e"), Warning("w")}
	terse := Filter(Terse, logs)
	if len(terse) != 2 || terse[0].Message != "e" || terse[1].Message != "w" {
		t.Fatalf("Filter(terse) = %+v", terse)
	}
	if len(Filter(Debug, logs)) != 3 {
		t.Fatal("Filter(debug) dropped logs")
	}
}
