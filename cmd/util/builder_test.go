package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestNewBuilderFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"", false},
		{"simulated", false},
		{"legacy", false},
		{"sideways", true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			viper.Set(KeyReorderMode, tt.mode)
			b, err := NewBuilderFromConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBuilderFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && b == nil {
				t.Errorf("NewBuilderFromConfig() returned nil builder")
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, "stdout", "SELECT 1;\n"); err != nil {
		t.Fatalf("WriteOutput(stdout) returned error: %v", err)
	}
	if buf.String() != "SELECT 1;\n" {
		t.Errorf("stdout content = %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "out.sql")
	if err := WriteOutput(&buf, path, "SELECT 2;\n"); err != nil {
		t.Fatalf("WriteOutput(file) returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(data) != "SELECT 2;\n" {
		t.Errorf("file content = %q", data)
	}
}
