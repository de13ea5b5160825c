package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	hosts := []string{"10.0.0.5", "192.168.1.1"}

	before := time.Now()
	s.Update(hosts, nil)

	snap := s.Snapshot()
	if !snap.HasHosts {
		t.Fatalf("HasHosts = false, want true")
	}
	if len(snap.Hosts) != 2 || snap.Hosts[0] != "10.0.0.5" {
		t.Fatalf("snapshot hosts = %#v, want 2 hosts", snap.Hosts)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Neither the caller's slice nor a returned snapshot aliases the store.
	hosts[0] = "mutated"
	snap.Hosts[1] = "mutated"
	snap2 := s.Snapshot()
	if snap2.Hosts[0] != "10.0.0.5" || snap2.Hosts[1] != "192.168.1.1" {
		t.Fatalf("Snapshot should clone hosts; got %#v", snap2.Hosts)
	}
}

func TestStore_UpdateEmptyListStillMarksLoaded(t *testing.T) {
	var s Store
	s.Update(nil, nil)

	snap := s.Snapshot()
	if !snap.HasHosts || len(snap.Hosts) != 0 {
		t.Fatalf("snapshot = %#v, want loaded empty list", snap)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]string{"10.0.0.5"}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasHosts != prev.HasHosts || len(snap.Hosts) != 1 || snap.Hosts[0] != "10.0.0.5" {
		t.Fatalf("hosts changed on error: got %#v want %#v", snap.Hosts, prev.Hosts)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should still wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(nil, errors.New("fail 1"))
	if got := s.Failures(); got != 1 {
		t.Fatalf("Failures() = %d, want 1", got)
	}
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Update([]string{"10.0.0.5"}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Update([]string{"10.0.0.5"}, nil)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	if got := s.Snapshot().Hosts; len(got) != 1 {
		t.Fatalf("Hosts = %#v, want one host", got)
	}
}
