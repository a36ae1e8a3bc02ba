package cmd

import (
	"context"
	"testing"

	"github.com/ardnew/rollenv/lang"
)

func TestEnvFlags_Build_DefaultsToMemory(t *testing.T) {
	var f EnvFlags

	env, err := f.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, ok := env.(*lang.MemoryEnvironment); !ok {
		t.Errorf("Build() = %T, want *lang.MemoryEnvironment", env)
	}
}

func TestEnvFlags_Build_MemoryExplicit(t *testing.T) {
	f := EnvFlags{Env: "memory"}

	env, err := f.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, ok := env.(*lang.MemoryEnvironment); !ok {
		t.Errorf("Build() = %T, want *lang.MemoryEnvironment", env)
	}
}
