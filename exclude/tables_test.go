package exclude

import (
	"context"
	"testing"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/store"
)

const tablesYAML = `
rules:
  - name: canon
    condition: "viewer.rated_count >= 20"
    titles:
      - "Citizen Kane"
filmographies:
  Christopher Nolan:
    - "Memento"
franchises:
  "The Dark Knight":
    - "Batman Begins"
`

func TestParseTables(t *testing.T) {
	tables, err := ParseTables([]byte(tablesYAML))
	if err != nil {
		t.Fatalf("ParseTables() error = %v", err)
	}
	if len(tables.Rules) != 1 || tables.Rules[0].Name != "canon" {
		t.Errorf("rules = %+v", tables.Rules)
	}
	if len(tables.Filmographies["Christopher Nolan"]) != 1 {
		t.Errorf("filmographies = %v", tables.Filmographies)
	}

	// 系列表 key 是原始标题，按 slug 也要能命中
	prereqs := tables.franchisePrereqs("the-dark-knight")
	if len(prereqs) != 1 || prereqs[0] != "Batman Begins" {
		t.Errorf("franchisePrereqs = %v", prereqs)
	}
	if got := tables.franchisePrereqs("unknown"); got != nil {
		t.Errorf("unknown franchise = %v, want nil", got)
	}
}

func TestParseTablesInvalid(t *testing.T) {
	_, err := ParseTables([]byte("rules: {not a list}"))
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("expected INVALID_INPUT domain error, got %v", err)
	}
}

func TestTablesFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Set(ctx, "tables:exclusion", []byte(tablesYAML)); err != nil {
		t.Fatal(err)
	}

	tables, err := TablesFromStore(ctx, s, "tables:exclusion")
	if err != nil {
		t.Fatalf("TablesFromStore() error = %v", err)
	}
	if len(tables.Rules) != 1 {
		t.Errorf("rules = %+v", tables.Rules)
	}

	if _, err := TablesFromStore(ctx, s, "tables:missing"); !core.IsNotFound(err) {
		t.Errorf("missing key should surface NOT_FOUND, got %v", err)
	}
}
