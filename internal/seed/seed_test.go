package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"faq-support-go/internal/config"
)

type fakeObjects struct {
	data map[string][]byte
}

func (f fakeObjects) ReadObject(_ context.Context, name string) ([]byte, error) {
	b, ok := f.data[name]
	if !ok {
		return nil, errors.New("no such object")
	}
	return b, nil
}

const sampleJSON = `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`

func TestLoadBuiltin(t *testing.T) {
	entries, err := Load(context.Background(), config.SeedConfig{Source: "builtin"}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 4 || entries[0].Question != "What is your shipping policy?" {
		t.Fatalf("unexpected builtin set %+v", entries)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := Load(context.Background(), config.SeedConfig{Source: "file", Path: path}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 || entries[1].Answer != "A2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestLoadMinIO(t *testing.T) {
	objects := fakeObjects{data: map[string][]byte{"faqs.json": []byte(sampleJSON)}}
	cfg := config.SeedConfig{Source: "minio", Path: "faqs.json"}

	entries, err := Load(context.Background(), cfg, objects)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 || entries[0].Question != "Q1" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	if _, err := Load(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error without an object store")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]config.SeedConfig{
		"missing file":   {Source: "file", Path: filepath.Join(t.TempDir(), "nope.json")},
		"unknown source": {Source: "ftp"},
	}
	for name, cfg := range cases {
		if _, err := Load(context.Background(), cfg, nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}
