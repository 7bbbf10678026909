package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfgs     []ValidatableConfig
		wantErrs int
	}{
		{
			name:     "no configs",
			cfgs:     []ValidatableConfig{},
			wantErrs: 0,
		},
		{
			name: "one valid config",
			cfgs: []ValidatableConfig{
				&Shared{Protocol: ProtoTCP, Port: 8080},
			},
			wantErrs: 0,
		},
		{
			name: "one invalid config",
			cfgs: []ValidatableConfig{
				&Shared{Protocol: ProtoTCP, Port: 0},
			},
			wantErrs: 1,
		},
		{
			name: "multiple configs with errors",
			cfgs: []ValidatableConfig{
				&Shared{Protocol: ProtoTCP, Port: 0},
				&Listen{},
			},
			wantErrs: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := Validate(tc.cfgs...)
			if len(errs) != tc.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d: %v", len(errs), tc.wantErrs, errs)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port    int
		wantErr bool
	}{
		{1, false},
		{1234, false},
		{65535, false},
		{0, true},
		{-1, true},
		{65536, true},
	}

	for _, tc := range tests {
		if err := validatePort(tc.port); (err != nil) != tc.wantErr {
			t.Errorf("validatePort(%d) error = %v, wantErr %v", tc.port, err, tc.wantErr)
		}
	}
}
