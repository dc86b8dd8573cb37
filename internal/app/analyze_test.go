package app

import "testing"

func TestValidateAnalyzeModes(t *testing.T) {
	tests := []struct {
		name    string
		modes   analyzeModes
		wantErr bool
	}{
		{"empty only", analyzeModes{empty: true}, false},
		{"micro only", analyzeModes{micro: true}, false},
		{"both analyses", analyzeModes{empty: true, micro: true}, false},
		{"no analysis selected", analyzeModes{}, true},
		{"export without analysis", analyzeModes{csv: true}, true},
		{"csv with analysis", analyzeModes{empty: true, csv: true}, false},
		{"pdf with analysis", analyzeModes{micro: true, pdf: true}, false},
		{"csv and pdf conflict", analyzeModes{empty: true, csv: true, pdf: true}, true},
		{"graph with csv conflict", analyzeModes{empty: true, graph: true, csv: true}, true},
		{"graph with pdf conflict", analyzeModes{empty: true, graph: true, pdf: true}, true},
		{"graph alone is fine", analyzeModes{empty: true, graph: true}, false},
	}
	for _, tt := range tests {
		err := validateAnalyzeModes(tt.modes)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: validateAnalyzeModes(%+v) error = %v, wantErr %v",
				tt.name, tt.modes, err, tt.wantErr)
		}
	}
}
