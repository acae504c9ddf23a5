package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/linkhubhq/linkhub/internal/apperror"
)

func TestLinkCreate_IDsStrictlyIncrease(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// Interleave creation across users: ids come from one table-wide counter,
	// so each new link gets a larger id than every link before it.
	l1 := createTestLink(t, db, alice.ID, "first")
	l2 := createTestLink(t, db, bob.ID, "second")
	l3 := createTestLink(t, db, alice.ID, "third")

	if !(l1.ID < l2.ID && l2.ID < l3.ID) {
		t.Errorf("link ids not strictly increasing: %d, %d, %d", l1.ID, l2.ID, l3.ID)
	}
}

func TestLinkCreate_IDNotReusedAfterDelete(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	first := createTestLink(t, db, alice.ID, "first")
	if err := db.Links().Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	second := createTestLink(t, db, alice.ID, "second")
	if second.ID <= first.ID {
		t.Errorf("id %d reused after deleting id %d", second.ID, first.ID)
	}
}

func TestLinkListByUser_PositionOrder(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	createTestLink(t, db, alice.ID, "a0")
	createTestLink(t, db, alice.ID, "a1")
	createTestLink(t, db, bob.ID, "b0")

	links, err := db.Links().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("ListByUser() returned %d links, want 2", len(links))
	}
	for i, l := range links {
		if l.Position != i {
			t.Errorf("links[%d].Position = %d, want %d", i, l.Position, i)
		}
		if l.UserID != alice.ID {
			t.Errorf("links[%d] belongs to %q, want %q", i, l.UserID, alice.ID)
		}
	}
}

func TestLinkListByUser_Empty(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	links, err := db.Links().ListByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if links == nil {
		t.Error("ListByUser() returned nil, want empty slice")
	}
	if len(links) != 0 {
		t.Errorf("ListByUser() returned %d links, want 0", len(links))
	}
}

func TestLinkUpdate(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	link := createTestLink(t, db, alice.ID, "old")
	ctx := context.Background()

	link.Title = "new title"
	link.Visible = false
	if err := db.Links().Update(ctx, link); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := db.Links().GetByID(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "new title" {
		t.Errorf("title = %q, want %q", got.Title, "new title")
	}
	if got.Visible {
		t.Error("visible = true, want false")
	}
}

func TestLinkDelete_RenumbersPositions(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	createTestLink(t, db, alice.ID, "a")
	middle := createTestLink(t, db, alice.ID, "b")
	createTestLink(t, db, alice.ID, "c")

	if err := db.Links().Delete(ctx, middle.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	links, err := db.Links().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d links after delete, want 2", len(links))
	}
	// The survivors close ranks: positions are 0 and 1 again, order preserved.
	if links[0].Title != "a" || links[0].Position != 0 {
		t.Errorf("links[0] = %q at %d, want %q at 0", links[0].Title, links[0].Position, "a")
	}
	if links[1].Title != "c" || links[1].Position != 1 {
		t.Errorf("links[1] = %q at %d, want %q at 1", links[1].Title, links[1].Position, "c")
	}
}

func TestLinkDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.Links().Delete(context.Background(), 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestLinkIncrementClicks(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	link := createTestLink(t, db, alice.ID, "a")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := db.Links().IncrementClicks(ctx, link.ID); err != nil {
			t.Fatalf("IncrementClicks() error = %v", err)
		}
	}

	got, err := db.Links().GetByID(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Clicks != 3 {
		t.Errorf("clicks = %d, want 3", got.Clicks)
	}
}

func TestLinkIncrementClicks_NotFound(t *testing.T) {
	db := newTestDB(t)

	if err := db.Links().IncrementClicks(context.Background(), 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("IncrementClicks() error = %v, want ErrNotFound", err)
	}
}

func TestLinkReorder(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	a := createTestLink(t, db, alice.ID, "a")
	b := createTestLink(t, db, alice.ID, "b")
	c := createTestLink(t, db, alice.ID, "c")

	if err := db.Links().Reorder(ctx, alice.ID, []int64{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	links, err := db.Links().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, l := range links {
		if l.Title != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, l.Title, want[i])
		}
		if l.Position != i {
			t.Errorf("links[%d].Position = %d, want %d", i, l.Position, i)
		}
	}
}

func TestLinkReorder_ForeignLinkRollsBack(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	a := createTestLink(t, db, alice.ID, "a")
	b := createTestLink(t, db, alice.ID, "b")
	foreign := createTestLink(t, db, bob.ID, "stolen")

	// Bob's link id appears mid-sequence; the whole reorder must fail and the
	// positions already written before the bad id must be rolled back.
	err := db.Links().Reorder(ctx, alice.ID, []int64{b.ID, foreign.ID, a.ID})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Reorder() error = %v, want ErrNotFound", err)
	}

	links, err := db.Links().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	want := []string{"a", "b"}
	for i, l := range links {
		if l.Title != want[i] {
			t.Errorf("after failed reorder links[%d] = %q, want %q", i, l.Title, want[i])
		}
	}
}

func TestLinkSumClicksByUser(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	a := createTestLink(t, db, alice.ID, "a")
	b := createTestLink(t, db, alice.ID, "b")
	other := createTestLink(t, db, bob.ID, "other")

	for i := 0; i < 2; i++ {
		if err := db.Links().IncrementClicks(ctx, a.ID); err != nil {
			t.Fatalf("IncrementClicks() error = %v", err)
		}
	}
	if err := db.Links().IncrementClicks(ctx, b.ID); err != nil {
		t.Fatalf("IncrementClicks() error = %v", err)
	}
	if err := db.Links().IncrementClicks(ctx, other.ID); err != nil {
		t.Fatalf("IncrementClicks() error = %v", err)
	}

	total, err := db.Links().SumClicksByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("SumClicksByUser() error = %v", err)
	}
	if total != 3 {
		t.Errorf("SumClicksByUser() = %d, want 3", total)
	}
}

func TestLinkSumClicksByUser_NoLinks(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")

	total, err := db.Links().SumClicksByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("SumClicksByUser() error = %v", err)
	}
	if total != 0 {
		t.Errorf("SumClicksByUser() = %d, want 0", total)
	}
}
