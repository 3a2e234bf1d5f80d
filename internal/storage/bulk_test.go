package storage

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestBulkRepo_DeletePartialFailure(t *testing.T) {
	ctx := context.Background()
	db, clock := newTestDB(t)
	ids := seedSearchNotes(t, db, clock,
		NewNote{Title: "a", Content: "a"},
		NewNote{Title: "b", Content: "b"},
	)
	missing := ids[1] + 100

	result, err := NewBulkRepo(db).Delete(ctx, []int64{ids[0], missing, ids[1]})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if result.Successful != 2 || result.Failed != 1 {
		t.Errorf("Delete() = %+v, want 2 successful 1 failed", result)
	}
	if result.Successful+result.Failed != 3 {
		t.Errorf("Delete() counts do not add up: %+v", result)
	}
	if want := []string{"Note " + itoa(missing) + " not found"}; !reflect.DeepEqual(result.Errors, want) {
		t.Errorf("Delete() Errors = %v, want %v", result.Errors, want)
	}

	notes, err := NewNoteRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("List() after bulk delete = %v, want none", titles(notes))
	}
}

func TestBulkRepo_Updates(t *testing.T) {
	ctx := context.Background()
	db, clock := newTestDB(t)
	repo := NewBulkRepo(db)
	noteRepo := NewNoteRepo(db)

	ids := seedSearchNotes(t, db, clock,
		NewNote{Title: "a", Content: "a"},
		NewNote{Title: "b", Content: "b"},
	)
	states, err := NewStateRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("List states error = %v", err)
	}
	doneState := states[2].ID
	missing := int64(4242)
	unknownState := int64(777)

	tests := []struct {
		name       string
		run        func() (BulkResult, error)
		wantOK     int
		wantFailed int
		errPrefix  string
		check      func(*testing.T, Note)
	}{
		{
			name:   "priority",
			run:    func() (BulkResult, error) { return repo.SetPriority(ctx, ids, 5) },
			wantOK: 2,
			check: func(t *testing.T, n Note) {
				if n.Priority != 5 {
					t.Errorf("Priority = %d, want 5", n.Priority)
				}
			},
		},
		{
			name:       "done with a missing id",
			run:        func() (BulkResult, error) { return repo.SetDone(ctx, []int64{ids[0], ids[1], missing}, true) },
			wantOK:     2,
			wantFailed: 1,
			errPrefix:  "Note 4242 not found",
			check: func(t *testing.T, n Note) {
				if !n.Done {
					t.Error("Done = false, want true")
				}
			},
		},
		{
			name:   "state",
			run:    func() (BulkResult, error) { return repo.SetState(ctx, ids, &doneState) },
			wantOK: 2,
			check: func(t *testing.T, n Note) {
				if n.StateID == nil || *n.StateID != doneState {
					t.Errorf("StateID = %v, want %d", n.StateID, doneState)
				}
			},
		},
		{
			name:       "unknown state fails per item",
			run:        func() (BulkResult, error) { return repo.SetState(ctx, ids[:1], &unknownState) },
			wantFailed: 1,
			errPrefix:  "Failed to update note " + itoa(ids[0]) + ":",
			check:      func(*testing.T, Note) {},
		},
		{
			name:   "state cleared",
			run:    func() (BulkResult, error) { return repo.SetState(ctx, ids, nil) },
			wantOK: 2,
			check: func(t *testing.T, n Note) {
				if n.StateID != nil {
					t.Errorf("StateID = %d, want nil", *n.StateID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.run()
			if err != nil {
				t.Fatalf("bulk call error = %v", err)
			}
			if result.Successful != tt.wantOK || result.Failed != tt.wantFailed {
				t.Errorf("result = %+v, want %d ok %d failed", result, tt.wantOK, tt.wantFailed)
			}
			if tt.errPrefix != "" && (len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], tt.errPrefix)) {
				t.Errorf("Errors = %v, want one starting with %q", result.Errors, tt.errPrefix)
			}
			for _, id := range ids {
				n, err := noteRepo.Get(ctx, id)
				if err != nil {
					t.Fatalf("Get() error = %v", err)
				}
				tt.check(t, *n)
			}
		})
	}
}

func TestBulkRepo_SetOrder(t *testing.T) {
	ctx := context.Background()
	db, clock := newTestDB(t)

	seedSearchNotes(t, db, clock, NewNote{Title: "other", Content: "x", Order: 1})
	ids := seedSearchNotes(t, db, clock,
		NewNote{Title: "five", Content: "x"},
		NewNote{Title: "six", Content: "x"},
		NewNote{Title: "seven", Content: "x"},
	)

	result, err := NewBulkRepo(db).SetOrder(ctx, ids, []int{2, 0, 1})
	if err != nil {
		t.Fatalf("SetOrder() error = %v", err)
	}
	if result.Successful != 3 || result.Failed != 0 || result.Errors != nil {
		t.Errorf("SetOrder() = %+v", result)
	}

	notes, err := NewNoteRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// "other" has order 1 like "seven"; it is older, so it sorts after.
	want := []string{"six", "seven", "other", "five"}
	if !reflect.DeepEqual(titles(notes), want) {
		t.Errorf("List() after SetOrder() = %v, want %v", titles(notes), want)
	}
}

func TestBulkRepo_SetOrderShortOrdersDefaultToZero(t *testing.T) {
	ctx := context.Background()
	db, clock := newTestDB(t)
	ids := seedSearchNotes(t, db, clock,
		NewNote{Title: "a", Content: "x", Order: 5},
		NewNote{Title: "b", Content: "x", Order: 5},
	)

	if _, err := NewBulkRepo(db).SetOrder(ctx, ids, []int{3}); err != nil {
		t.Fatalf("SetOrder() error = %v", err)
	}

	n, err := NewNoteRepo(db).Get(ctx, ids[1])
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n.Order != 0 {
		t.Errorf("Order = %d, want 0", n.Order)
	}
}

func TestBulkRepo_ConcurrentBatchesDoNotInterleaveWithinBatch(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewBulkRepo(db)
	noteRepo := NewNoteRepo(db)

	var ids []int64
	for i := 0; i < 20; i++ {
		n, err := noteRepo.Create(ctx, NewNote{Title: "n", Content: "c"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, n.ID)
	}

	var wg sync.WaitGroup
	for _, p := range []int{1, 2} {
		wg.Add(1)
		go func(priority int) {
			defer wg.Done()
			if _, err := repo.SetPriority(ctx, ids, priority); err != nil {
				t.Errorf("SetPriority() error = %v", err)
			}
		}(p)
	}
	wg.Wait()

	notes, err := noteRepo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	first := notes[0].Priority
	for _, n := range notes {
		if n.Priority != first {
			t.Fatalf("batches interleaved: priorities %d and %d both present", first, n.Priority)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
