package cmd

import (
	"reflect"
	"testing"
)

func TestEnvFlag(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    envFlag
		wantErr bool
	}{
		{name: "single", values: []string{"API_KEY=abc"}, want: envFlag{"API_KEY": "abc"}},
		{name: "value with equals", values: []string{"QUERY=a=b"}, want: envFlag{"QUERY": "a=b"}},
		{name: "empty value", values: []string{"EMPTY="}, want: envFlag{"EMPTY": ""}},
		{name: "last wins", values: []string{"A=1", "A=2"}, want: envFlag{"A": "2"}},
		{name: "missing equals", values: []string{"API_KEY"}, wantErr: true},
		{name: "missing key", values: []string{"=value"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := envFlag{}
			var err error
			for _, v := range tt.values {
				if err = got.Set(v); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvFlagString(t *testing.T) {
	e := envFlag{"B": "2", "A": "1"}
	if got := e.String(); got != "[A=1,B=2]" {
		t.Errorf("String() = %q", got)
	}
	if e.Type() != "KEY=VALUE" {
		t.Errorf("Type() = %q", e.Type())
	}
}
