package config_test

import (
	"strings"
	"testing"

	"hxls/internal/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		options any
		want    config.Config
		wantErr bool
	}{
		{
			name:    "nil keeps defaults",
			options: nil,
			want:    config.Default(),
		},
		{
			name:    "partial override",
			options: map[string]any{"rejectMultipleChanges": true},
			want: config.Config{
				TriggerCharacters:     []string{"-"},
				RejectMultipleChanges: true,
				ParserPoolSize:        4,
			},
		},
		{
			name:    "trigger characters",
			options: map[string]any{"triggerCharacters": []string{"-", ":"}, "parserPoolSize": 1},
			want: config.Config{
				TriggerCharacters: []string{"-", ":"},
				ParserPoolSize:    1,
			},
		},
		{
			name:    "invalid pool size",
			options: map[string]any{"parserPoolSize": 0},
			wantErr: true,
		},
		{
			name:    "wrong type",
			options: map[string]any{"parserPoolSize": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Load(config.Default(), tt.options)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if strings.Join(got.TriggerCharacters, "") != strings.Join(tt.want.TriggerCharacters, "") ||
				got.RejectMultipleChanges != tt.want.RejectMultipleChanges ||
				got.ParserPoolSize != tt.want.ParserPoolSize {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFromJSON(t *testing.T) {
	cfg, err := config.LoadFromJSON(strings.NewReader(`{"parserPoolSize": 8}`))
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	if cfg.ParserPoolSize != 8 {
		t.Errorf("ParserPoolSize = %d, want 8", cfg.ParserPoolSize)
	}
	if len(cfg.TriggerCharacters) != 1 || cfg.TriggerCharacters[0] != "-" {
		t.Errorf("TriggerCharacters = %v, want default", cfg.TriggerCharacters)
	}

	if _, err := config.LoadFromJSON(strings.NewReader(`{`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := config.Default()
	a.TriggerCharacters[0] = "<"
	if b := config.Default(); b.TriggerCharacters[0] != "-" {
		t.Error("Default() shares its slice")
	}
}

func TestLoadClientOptions(t *testing.T) {
	base := config.Default()
	base.ParserPoolSize = 2

	tests := []struct {
		name        string
		options     any
		wantPool    int
		wantStrict  bool
		wantIgnored []string
	}{
		{
			name:     "nil keeps base",
			options:  nil,
			wantPool: 2,
		},
		{
			name:       "runtime fields apply",
			options:    map[string]any{"rejectMultipleChanges": true},
			wantPool:   2,
			wantStrict: true,
		},
		{
			name:        "pool size is startup only",
			options:     map[string]any{"parserPoolSize": 16},
			wantPool:    2,
			wantIgnored: []string{"parserPoolSize"},
		},
		{
			name:        "invalid startup field is ignored",
			options:     map[string]any{"parserPoolSize": 0},
			wantPool:    2,
			wantIgnored: []string{"parserPoolSize"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ignored, err := config.LoadClientOptions(base, tt.options)
			if err != nil {
				t.Fatalf("LoadClientOptions() error = %v", err)
			}
			if got.ParserPoolSize != tt.wantPool {
				t.Errorf("ParserPoolSize = %d, want %d", got.ParserPoolSize, tt.wantPool)
			}
			if got.RejectMultipleChanges != tt.wantStrict {
				t.Errorf("RejectMultipleChanges = %v, want %v", got.RejectMultipleChanges, tt.wantStrict)
			}
			if strings.Join(ignored, ",") != strings.Join(tt.wantIgnored, ",") {
				t.Errorf("ignored = %v, want %v", ignored, tt.wantIgnored)
			}
		})
	}
}
