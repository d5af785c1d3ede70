package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/foldbook/internal/models"
)

func TestJobStore(t *testing.T) {
	store := New(0)
	now := time.Now()

	store.Set("b", &models.Job{ID: "b", CreatedAt: now.Add(time.Second)})
	store.Set("a", &models.Job{ID: "a", CreatedAt: now})

	job, ok := store.Get("a")
	if !ok || job.ID != "a" {
		t.Fatalf("Expected job a, got %v (%v)", job, ok)
	}

	list := store.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("Expected jobs oldest first, got %v", list)
	}

	if !store.Delete("a") {
		t.Error("Expected delete to report an existing job")
	}
	if store.Delete("a") {
		t.Error("Expected second delete to report a missing job")
	}
	if _, ok := store.Get("a"); ok {
		t.Error("Expected job a to be gone")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 job, got %d", store.Len())
	}
}

func TestJobStoreConcurrentAccess(t *testing.T) {
	store := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			store.Set(id, &models.Job{ID: id})
			store.Get(id)
			store.List()
		}(i)
	}
	wg.Wait()
	if store.Len() != 26 {
		t.Errorf("Expected 26 jobs, got %d", store.Len())
	}
}

func TestJobStoreEvictsOldest(t *testing.T) {
	store := New(2)
	now := time.Now()

	store.Set("first", &models.Job{ID: "first", CreatedAt: now})
	store.Set("second", &models.Job{ID: "second", CreatedAt: now.Add(time.Second)})
	store.Set("third", &models.Job{ID: "third", CreatedAt: now.Add(2 * time.Second)})

	if store.Len() != 2 {
		t.Fatalf("Expected 2 jobs, got %d", store.Len())
	}
	if _, ok := store.Get("first"); ok {
		t.Error("Expected the oldest job to be evicted")
	}
	list := store.List()
	if list[0].ID != "second" || list[1].ID != "third" {
		t.Errorf("Expected second and third, got %s and %s", list[0].ID, list[1].ID)
	}

	// replacing an existing job does not evict anything
	store.Set("third", &models.Job{ID: "third", CreatedAt: now.Add(3 * time.Second)})
	if store.Len() != 2 {
		t.Errorf("Expected 2 jobs after replace, got %d", store.Len())
	}
	if _, ok := store.Get("second"); !ok {
		t.Error("Expected job second to survive a replace")
	}
}

func TestJobStoreKeepsNewestOnTie(t *testing.T) {
	store := New(1)
	now := time.Now()

	store.Set("b", &models.Job{ID: "b", CreatedAt: now})
	store.Set("a", &models.Job{ID: "a", CreatedAt: now})

	if _, ok := store.Get("a"); !ok {
		t.Error("Expected the job just stored to be kept")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 job, got %d", store.Len())
	}
}

func TestJobStoreConcurrentEviction(t *testing.T) {
	store := New(5)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("job-%03d", i)
			store.Set(id, &models.Job{ID: id, CreatedAt: time.Unix(int64(i), 0)})
			store.List()
		}(i)
	}
	wg.Wait()
	if store.Len() != 5 {
		t.Errorf("Expected 5 jobs, got %d", store.Len())
	}
}
