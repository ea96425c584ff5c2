package config_test

import (
	"testing"

	"github.com/nabbar/arcvfs/config"
	"github.com/spf13/viper"
)

func TestLoadAppliesDefaults(t *testing.T) {
	tn, err := config.Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.MaxDepth != 5 {
		t.Fatalf("expected default max depth 5, got %d", tn.MaxDepth)
	}
	if tn.TempRoot == "" {
		t.Fatalf("expected a non-empty default temp root")
	}
}

func TestLoadHonorsPresetValues(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyMaxDepth, 3)
	v.Set(config.KeyWorkers, 2)

	tn, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.MaxDepth != 3 || tn.Workers != 2 {
		t.Fatalf("expected preset values to be honored, got %+v", tn)
	}
}

func TestLoadRejectsInvalidTempRoot(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyTempRoot, "/definitely/does/not/exist/arcvfs")

	if _, err := config.Load(v); err == nil {
		t.Fatalf("expected an error for a non-existent temp root")
	}
}
