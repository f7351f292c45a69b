package config_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/mkrupp/roomledger/internal/infra/config"
)

type testConfig struct {
	EnvConfig

	StringValue string  `env:"STRING_VALUE" default:"default"`
	IntValue    int     `env:"INT_VALUE" default:"42"`
	FloatValue  float64 `env:"FLOAT_VALUE" default:"1500.50"`
	BoolValue   bool    `env:"BOOL_VALUE" default:"true"`
	NoEnvTag    string
	Nested      testNestedConfig `envPrefix:"NESTED_"`
}

type testNestedConfig struct {
	Value string `env:"VALUE" default:"nested-default"`
}

//nolint:paralleltest
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		envVars map[string]string
		want    testConfig
		wantErr bool
	}{
		{
			name:    "uses default values when env vars not set",
			prefix:  "",
			envVars: map[string]string{},
			want: testConfig{
				StringValue: "default",
				IntValue:    42,
				FloatValue:  1500.50,
				BoolValue:   true,
				Nested:      testNestedConfig{Value: "nested-default"},
			},
		},
		{
			name:   "reads environment variables",
			prefix: "",
			envVars: map[string]string{
				"STRING_VALUE": "env-value",
				"INT_VALUE":    "123",
				"FLOAT_VALUE":  "2000.25",
				"BOOL_VALUE":   "false",
				"NESTED_VALUE": "env-nested",
			},
			want: testConfig{
				StringValue: "env-value",
				IntValue:    123,
				FloatValue:  2000.25,
				BoolValue:   false,
				Nested:      testNestedConfig{Value: "env-nested"},
			},
		},
		{
			name:   "handles namespace prefix",
			prefix: "APP",
			envVars: map[string]string{
				"APP_STRING_VALUE": "prefixed-value",
			},
			want: testConfig{
				StringValue: "prefixed-value",
				IntValue:    42,
				FloatValue:  1500.50,
				BoolValue:   true,
				Nested:      testNestedConfig{Value: "nested-default"},
			},
		},
		{
			name:   "prefers more specific namespace",
			prefix: "APP_SVC",
			envVars: map[string]string{
				"APP_STRING_VALUE":     "less-specific",
				"APP_SVC_STRING_VALUE": "more-specific",
			},
			want: testConfig{
				StringValue: "more-specific",
				IntValue:    42,
				FloatValue:  1500.50,
				BoolValue:   true,
				Nested:      testNestedConfig{Value: "nested-default"},
			},
		},
		{
			name:   "fails on invalid int value",
			prefix: "",
			envVars: map[string]string{
				"INT_VALUE": "not-a-number",
			},
			wantErr: true,
		},
		{
			name:   "fails on invalid float value",
			prefix: "",
			envVars: map[string]string{
				"FLOAT_VALUE": "not-a-float",
			},
			wantErr: true,
		},
		{
			name:   "fails on invalid bool value",
			prefix: "",
			envVars: map[string]string{
				"BOOL_VALUE": "not-a-bool",
			},
			wantErr: true,
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := &testConfig{}
			err := Parse(ctx, cfg, tt.prefix)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if cfg.StringValue != tt.want.StringValue {
				t.Errorf("StringValue = %v, want %v", cfg.StringValue, tt.want.StringValue)
			}
			if cfg.IntValue != tt.want.IntValue {
				t.Errorf("IntValue = %v, want %v", cfg.IntValue, tt.want.IntValue)
			}
			if cfg.FloatValue != tt.want.FloatValue {
				t.Errorf("FloatValue = %v, want %v", cfg.FloatValue, tt.want.FloatValue)
			}
			if cfg.BoolValue != tt.want.BoolValue {
				t.Errorf("BoolValue = %v, want %v", cfg.BoolValue, tt.want.BoolValue)
			}
			if cfg.Nested.Value != tt.want.Nested.Value {
				t.Errorf("Nested.Value = %v, want %v", cfg.Nested.Value, tt.want.Nested.Value)
			}
		})
	}
}

func TestParseInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     interface{}
		wantErr error
	}{
		{
			name:    "non-pointer config",
			cfg:     testConfig{},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "non-struct pointer",
			cfg:     new(string),
			wantErr: ErrInvalidConfig,
		},
		{
			name: "missing EnvConfig embedding",
			cfg: &struct {
				Value string `env:"VALUE"`
			}{},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Parse(context.Background(), tt.cfg, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
