package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCache_AddIsCreateIfAbsent(t *testing.T) {
	cache := New()
	ctx := context.Background()

	added, err := cache.Add(ctx, "k", 1, time.Minute)
	if err != nil || !added {
		t.Fatalf("first add should create the key, got added=%v err=%v", added, err)
	}

	added, err = cache.Add(ctx, "k", 1, time.Minute)
	if err != nil || added {
		t.Fatalf("second add must observe the existing key, got added=%v err=%v", added, err)
	}

	count, ok, err := cache.GetCount(ctx, "k")
	if err != nil || !ok || count != 1 {
		t.Fatalf("expected count=1, got count=%d ok=%v err=%v", count, ok, err)
	}
}

func TestCache_AddAfterExpiry(t *testing.T) {
	cache := New()
	ctx := context.Background()

	if _, err := cache.Add(ctx, "k", 5, 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	added, err := cache.Add(ctx, "k", 1, time.Minute)
	if err != nil || !added {
		t.Fatalf("expired keys behave as absent, got added=%v err=%v", added, err)
	}
	count, _, _ := cache.GetCount(ctx, "k")
	if count != 1 {
		t.Fatalf("expected fresh count=1, got %d", count)
	}
}

// TestCache_AtMostOneCreation confirma a invariante do protocolo: com N
// avaliações concorrentes sobre um cache vazio, exatamente uma cria a chave e
// as demais incrementam, fechando a contagem em N.
func TestCache_AtMostOneCreation(t *testing.T) {
	const n = 64

	cache := New()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		observed []int64
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()

			added, err := cache.Add(ctx, "k", 1, time.Minute)
			if err != nil {
				t.Errorf("add failed: %v", err)
				return
			}
			count := int64(1)
			if !added {
				count, err = cache.Increment(ctx, "k")
				if err != nil {
					t.Errorf("increment failed: %v", err)
					return
				}
			}

			mu.Lock()
			if added {
				created++
			}
			observed = append(observed, count)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("exactly one creation must succeed, got %d", created)
	}
	final, _, _ := cache.GetCount(ctx, "k")
	if final != n {
		t.Fatalf("final count must be %d, got %d", n, final)
	}
}

func TestCache_LockRoundTrip(t *testing.T) {
	cache := New()
	ctx := context.Background()

	entry, err := cache.GetLock(ctx, "lock")
	if err != nil || entry != nil {
		t.Fatalf("absent lock should read as nil, got %+v err=%v", entry, err)
	}

	until := time.Now().Add(time.Minute)
	if err := cache.SetLock(ctx, "lock", &domain.LockEntry{Blocked: true, BlockUntil: &until}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err = cache.GetLock(ctx, "lock")
	if err != nil || entry == nil || !entry.Blocked || entry.BlockUntil == nil {
		t.Fatalf("expected stored lock entry, got %+v err=%v", entry, err)
	}
	if !entry.Active(time.Now()) {
		t.Fatalf("lock should be active before BlockUntil")
	}
	if entry.Active(until.Add(time.Second)) {
		t.Fatalf("lock must expire once BlockUntil has passed")
	}

	if err := cache.SetLock(ctx, "lock", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry, _ := cache.GetLock(ctx, "lock"); entry != nil {
		t.Fatalf("nil write must clear the entry, got %+v", entry)
	}
}
