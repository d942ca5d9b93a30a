package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/nitin85058/VEYA/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func analysis(id string) *types.Analysis {
	return &types.Analysis{
		ID:         id,
		Filename:   id + ".jpg",
		CapturedAt: time.Now(),
		Category:   "Transformer",
		Health:     types.HealthEvaluation{Score: 75, Status: "Good"},
	}
}

func TestStore_PutGet(t *testing.T) {
	s := New()

	a := analysis("one")
	s.Put(a)

	got, ok := s.Get("one")
	if !ok {
		t.Fatal("expected stored analysis")
	}
	if got != a {
		t.Error("expected the same pointer back")
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := New()
	s.Put(analysis("first"))
	s.Put(analysis("second"))
	s.Put(analysis("third"))

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(list))
	}
	order := []string{"third", "second", "first"}
	for i, id := range order {
		if list[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestStore_Summaries(t *testing.T) {
	s := New()
	s.Put(analysis("a"))
	s.Put(analysis("b"))

	summaries := s.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "b" || summaries[1].ID != "a" {
		t.Errorf("unexpected order: %q, %q", summaries[0].ID, summaries[1].ID)
	}
	if summaries[0].Score != 75 || summaries[0].Status != "Good" {
		t.Errorf("summary lost health fields: %+v", summaries[0])
	}
}

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := New()
	s.Put(analysis("a"))
	s.Put(analysis("b"))

	replacement := analysis("a")
	replacement.Category = "Stabilizer"
	s.Put(replacement)

	if s.Len() != 2 {
		t.Fatalf("expected 2 analyses after replace, got %d", s.Len())
	}
	list := s.List()
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("replace moved entry: %q, %q", list[0].ID, list[1].ID)
	}
	if list[1].Category != "Stabilizer" {
		t.Errorf("replace kept old value: %q", list[1].Category)
	}
}

func TestStore_Delete(t *testing.T) {
	s := New()
	s.Put(analysis("a"))
	s.Put(analysis("b"))

	if !s.Delete("a") {
		t.Error("expected delete to report existing ID")
	}
	if s.Delete("a") {
		t.Error("expected second delete to report missing ID")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 analysis, got %d", s.Len())
	}
	if list := s.List(); len(list) != 1 || list[0].ID != "b" {
		t.Errorf("unexpected survivors: %v", list)
	}
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Put(analysis("a"))
	s.Put(analysis("b"))

	if n := s.Clear(); n != 2 {
		t.Errorf("Clear returned %d, want 2", n)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if n := s.Clear(); n != 0 {
		t.Errorf("second Clear returned %d, want 0", n)
	}

	s.Put(analysis("c"))
	if s.Len() != 1 {
		t.Error("store unusable after Clear")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("w%d-%d", n, j)
				s.Put(analysis(id))
				s.Get(id)
				s.List()
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 8*50 {
		t.Errorf("expected %d analyses, got %d", 8*50, s.Len())
	}
}
