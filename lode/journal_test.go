package lode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justapithecus/lode/lode"

	"github.com/pithecene-io/catalogi/types"
)

// sharedFactory returns a StoreFactory that always returns the given store.
func sharedFactory(store lode.Store) lode.StoreFactory {
	return func() (lode.Store, error) { return store, nil }
}

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := NewJournal("", sharedFactory(lode.NewMemory()))
	if err != nil {
		t.Fatalf("NewJournal failed: %v", err)
	}
	return j
}

func invocation(id, op string, outcome types.Outcome, started time.Time) *types.Invocation {
	return &types.Invocation{
		ID:         id,
		Kind:       types.KindAction,
		Operation:  op,
		Reference:  "https://opencatalogi.nl/ActionHandler/" + op,
		Outcome:    outcome,
		StartedAt:  started,
		DurationMs: 12,
	}
}

func TestJournal_RecordAndList(t *testing.T) {
	j := newTestJournal(t)
	ctx := t.Context()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := invocation("inv-1", "rating", types.OutcomeSuccess, base)
	first.TargetID = "abc"
	second := invocation("inv-2", "developeroverheid.components", types.OutcomeEmpty, base.Add(time.Minute))
	third := invocation("inv-3", "rating", types.OutcomeError, base.Add(2*time.Minute))
	third.Kind = types.KindCommand
	third.Message = "gateway down"

	for _, inv := range []*types.Invocation{first, second, third} {
		if err := j.Record(ctx, inv); err != nil {
			t.Fatalf("Record(%s) failed: %v", inv.ID, err)
		}
	}

	all, err := j.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(all))
	}
	if all[0].ID != "inv-3" || all[2].ID != "inv-1" {
		t.Errorf("order = %s,%s,%s, want newest first", all[0].ID, all[1].ID, all[2].ID)
	}

	got := all[2]
	if got.TargetID != "abc" || got.DurationMs != 12 || !got.StartedAt.Equal(base) {
		t.Errorf("round trip = %+v", got)
	}
	if got.Kind != types.KindAction || got.Outcome != types.OutcomeSuccess {
		t.Errorf("kind/outcome = %s/%s", got.Kind, got.Outcome)
	}
	if all[0].Message != "gateway down" {
		t.Errorf("message = %q", all[0].Message)
	}
}

func TestJournal_ListFilters(t *testing.T) {
	j := newTestJournal(t)
	ctx := t.Context()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	records := []*types.Invocation{
		invocation("a", "rating", types.OutcomeSuccess, base),
		invocation("b", "rating-extra", types.OutcomeSuccess, base.Add(time.Second)),
		invocation("c", "rating", types.OutcomeEmpty, base.Add(2*time.Second)),
		invocation("d", "catalogi", types.OutcomeSuccess, base.Add(3*time.Second)),
	}
	records[3].Kind = types.KindCommand
	for _, inv := range records {
		if err := j.Record(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"operation exact match", Filter{Operation: "rating"}, []string{"c", "a"}},
		{"outcome", Filter{Outcome: types.OutcomeSuccess}, []string{"d", "b", "a"}},
		{"kind", Filter{Kind: types.KindCommand}, []string{"d"}},
		{"limit", Filter{Limit: 2}, []string{"d", "c"}},
		{"no match", Filter{Operation: "nope"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.List(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestNewFSJournal_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".catalogi", "journal")
	j, err := NewFSJournal("catalogi", root)
	if err != nil {
		t.Fatalf("NewFSJournal failed: %v", err)
	}
	defer func() { _ = j.Close() }()

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}

	ctx := t.Context()
	inv := invocation("inv-1", "rating", types.OutcomeSuccess, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if err := j.Record(ctx, inv); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	got, err := j.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "inv-1" {
		t.Errorf("List = %+v, want inv-1", got)
	}
}

func TestNewFSJournal_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "journal")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFSJournal("catalogi", file); err == nil {
		t.Fatal("expected error when root is a regular file")
	}
}

func TestJournal_Empty(t *testing.T) {
	j := newTestJournal(t)
	got, err := j.List(t.Context(), Filter{})
	if err != nil {
		t.Fatalf("List on empty journal: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if err := j.Record(t.Context(), nil); err != nil {
		t.Errorf("Record(nil) = %v", err)
	}
}

func TestJournal_FactoryError(t *testing.T) {
	boom := errors.New("open /journal: permission denied")
	_, err := NewJournal("catalogi", func() (lode.Store, error) { return nil, boom })
	if err == nil {
		t.Skip("dataset construction defers store creation")
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "init" {
		t.Errorf("error = %v, want init StorageError", err)
	}
}

func TestMatchesPartitionValue(t *testing.T) {
	tests := []struct {
		path  string
		value string
		want  bool
	}{
		{"catalogi/operation=rating/day=2026-03-01/data.jsonl", "rating", true},
		{"catalogi/operation=rating-extra/day=2026-03-01/data.jsonl", "rating", false},
		{"catalogi/operation=github.event/day=2026-03-01/data.jsonl", "github.event", true},
	}
	for _, tt := range tests {
		if got := matchesPartitionValue(tt.path, partitionOperation, tt.value); got != tt.want {
			t.Errorf("matchesPartitionValue(%q, %q) = %v, want %v", tt.path, tt.value, got, tt.want)
		}
	}
}

func TestParseS3Path(t *testing.T) {
	bucket, prefix := ParseS3Path("journals/catalogi/prod")
	if bucket != "journals" || prefix != "catalogi/prod" {
		t.Errorf("ParseS3Path = %q, %q", bucket, prefix)
	}
	bucket, prefix = ParseS3Path("journals")
	if bucket != "journals" || prefix != "" {
		t.Errorf("ParseS3Path = %q, %q", bucket, prefix)
	}
	cfg := S3Config{}
	if cfg.Validate() == nil {
		t.Error("expected missing bucket error")
	}
}
