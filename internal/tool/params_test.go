package tool

import (
	"reflect"
	"testing"
)

func TestParseKeyValues(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			"plain pairs",
			[]string{"phonenum=96890001122", "id=P1"},
			map[string]interface{}{"phonenum": "96890001122", "id": "P1"},
			false,
		},
		{
			"quoted value",
			[]string{`keyword="hello world"`},
			map[string]interface{}{"keyword": "hello world"},
			false,
		},
		{
			"empty value kept",
			[]string{"id="},
			map[string]interface{}{"id": ""},
			false,
		},
		{
			"value containing equals",
			[]string{"keyword=a=b"},
			map[string]interface{}{"keyword": "a=b"},
			false,
		},
		{"no tokens", nil, map[string]interface{}{}, false},
		{"missing equals", []string{"phonenum"}, nil, true},
		{"empty key", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyValues(tt.tokens)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyValues() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseKeyValues() = %v, want %v", got, tt.want)
			}
		})
	}
}
