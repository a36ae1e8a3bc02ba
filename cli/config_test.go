package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_ReadsFlatDocument(t *testing.T) {
	doc := "log-level: debug\nlog_format: json\n"

	resolver, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if val != "debug" {
		t.Errorf("log-level = %v, want debug", val)
	}

	val, err = resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-format"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if val != "json" {
		t.Errorf("log-format = %v, want json", val)
	}
}

func TestResolve_MissingKeyReturnsNil(t *testing.T) {
	resolver, err := resolve(strings.NewReader("log-level: debug\n"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "missing"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if val != nil {
		t.Errorf("missing key resolved to %v, want nil", val)
	}
}

func TestResolve_MalformedDocumentYieldsEmptyConfig(t *testing.T) {
	resolver, err := resolve(strings.NewReader("not: [valid: yaml"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil from malformed config, got %v", val)
	}
}
