package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu      sync.Mutex
	results []func() (*UserStats, error)
	calls   int
}

func (f *fakeSource) Status(_ context.Context, _ string) (*UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls >= len(f.results) {
		return nil, errors.New("no more scripted results")
	}
	res := f.results[f.calls]
	f.calls++
	return res()
}

type memStore struct {
	mu   sync.Mutex
	data map[string]*UserStats
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]*UserStats)}
}

func (m *memStore) Get(_ context.Context, id string) (*UserStats, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	return s, ok, nil
}

func (m *memStore) Set(_ context.Context, id string, s *UserStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = s
	return nil
}

func ok(pv float64) func() (*UserStats, error) {
	return func() (*UserStats, error) {
		return &UserStats{PersonalVolume: pv}, nil
	}
}

func fail() (*UserStats, error) {
	return nil, ErrService
}

func TestRefresh_LastWriterWins(t *testing.T) {
	src := &fakeSource{results: []func() (*UserStats, error){ok(100), ok(200)}}
	store := newMemStore()
	w := NewWorker(src, store, 3, time.Millisecond)

	w.refresh(context.Background(), "00000001")
	w.refresh(context.Background(), "00000001")

	got, found, _ := store.Get(context.Background(), "00000001")
	if !found {
		t.Fatalf("expected cached stats")
	}
	if got.PersonalVolume != 200 {
		t.Fatalf("PersonalVolume = %v, want value from the second run", got.PersonalVolume)
	}
}

func TestRefresh_FailureKeepsPreviousValue(t *testing.T) {
	src := &fakeSource{results: []func() (*UserStats, error){ok(100), fail, fail, fail}}
	store := newMemStore()
	w := NewWorker(src, store, 3, time.Millisecond)

	w.refresh(context.Background(), "00000001")
	w.refresh(context.Background(), "00000001") // burns the 3 scripted failures

	got, found, _ := store.Get(context.Background(), "00000001")
	if !found || got.PersonalVolume != 100 {
		t.Fatalf("failed refresh must leave the earlier value untouched, got %+v found=%v", got, found)
	}
}

func TestRefresh_FailureLeavesKeyAbsent(t *testing.T) {
	src := &fakeSource{results: []func() (*UserStats, error){fail, fail, fail}}
	store := newMemStore()
	w := NewWorker(src, store, 3, time.Millisecond)

	w.refresh(context.Background(), "00000002")

	if _, found, _ := store.Get(context.Background(), "00000002"); found {
		t.Fatalf("failed refresh with no prior value must leave the key absent")
	}
}

func TestRefresh_RetriesThenSucceeds(t *testing.T) {
	src := &fakeSource{results: []func() (*UserStats, error){fail, fail, ok(50)}}
	store := newMemStore()
	w := NewWorker(src, store, 5, time.Millisecond)

	w.refresh(context.Background(), "00000003")

	got, found, _ := store.Get(context.Background(), "00000003")
	if !found || got.PersonalVolume != 50 {
		t.Fatalf("expected value from the third attempt, got %+v found=%v", got, found)
	}
	if src.calls != 3 {
		t.Fatalf("src called %d times, want 3", src.calls)
	}
}

func TestRefresh_NotifiesOnSuccess(t *testing.T) {
	src := &fakeSource{results: []func() (*UserStats, error){ok(1)}}
	store := newMemStore()
	w := NewWorker(src, store, 1, time.Millisecond)

	var notified string
	w.OnSuccess(func(id string) { notified = id })

	w.refresh(context.Background(), "00000004")
	if notified != "00000004" {
		t.Fatalf("notify hook got %q, want user id", notified)
	}
}

func TestOverlay_MissSchedulesRefresh(t *testing.T) {
	src := &fakeSource{}
	store := newMemStore()
	w := NewWorker(src, store, 1, time.Millisecond)
	o := NewOverlay(store, w)

	_, err := o.Get(context.Background(), "00000005")
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("got err %v, want ErrNotReady", err)
	}
	select {
	case id := <-w.jobs:
		if id != "00000005" {
			t.Fatalf("enqueued %q, want 00000005", id)
		}
	default:
		t.Fatalf("expected a refresh job to be enqueued")
	}
}

func TestOverlay_HitReturnsCached(t *testing.T) {
	store := newMemStore()
	_ = store.Set(context.Background(), "00000006", &UserStats{Earnings: 42})
	o := NewOverlay(store, NewWorker(&fakeSource{}, store, 1, time.Millisecond))

	got, err := o.Get(context.Background(), "00000006")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Earnings != 42 {
		t.Fatalf("Earnings = %v, want 42", got.Earnings)
	}
}
