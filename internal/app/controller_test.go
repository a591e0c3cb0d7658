package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-plates/portal/internal/accounts"
	"github.com/campus-plates/portal/internal/events"
	"github.com/campus-plates/portal/internal/models"
	"github.com/campus-plates/portal/internal/session"
	"github.com/campus-plates/portal/internal/storage"
	"github.com/campus-plates/portal/internal/stubapi"
	"github.com/campus-plates/portal/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	ctrl      *Controller
	store     *stubapi.Store
	mutations *atomic.Int64
}

// newFixture wires a controller against an httptest stub API and counts every
// non-GET request that reaches the server.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := stubapi.NewStore()
	router := stubapi.Router(store, nil, "*")
	var mutations atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			mutations.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	st, err := storage.Open(filepath.Join(t.TempDir(), "profile.db"), nil)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	sess := session.NewController(accounts.NewStore(st, nil), st, nil)
	repo := events.NewRepository(events.NewClient(srv.URL+"/api", 5*time.Second, nil), nil)
	return &fixture{ctrl: New(sess, repo, nil), store: store, mutations: &mutations}
}

func (f *fixture) signIn(t *testing.T, role models.Role) {
	t.Helper()
	f.ctrl.Session().SelectAuthRole(role)
	if err := f.ctrl.Session().Register("user", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.ctrl.Session().Login("user", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func validDraft() events.Draft {
	return events.Draft{
		Title:          "Pizza Friday",
		Description:    "Leftover slices",
		OrganizationID: 1,
		LocationName:   "Skutt Student Center",
		StartsAt:       time.Now().Add(time.Hour),
	}
}

func TestMutationsAreNoOpsForSignedOut(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.Seed()
	f.ctrl.Init(context.Background())
	before := f.ctrl.repo.Events()

	if _, err := f.ctrl.SubmitCreate(context.Background(), validDraft()); err != nil {
		t.Fatalf("create as signed-out surfaced error: %v", err)
	}
	if err := f.ctrl.MarkCompleted(context.Background(), 1); err != nil {
		t.Fatalf("mark completed as signed-out surfaced error: %v", err)
	}
	if err := f.ctrl.DeleteEvent(context.Background(), 1, func() bool { return true }); err != nil {
		t.Fatalf("delete as signed-out surfaced error: %v", err)
	}

	if n := f.mutations.Load(); n != 0 {
		t.Fatalf("%d mutating requests issued, want 0", n)
	}
	if len(f.ctrl.repo.Events()) != len(before) {
		t.Fatal("cache changed by gated intents")
	}
}

func TestMutationsAreNoOpsForStudent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.Seed()
	f.signIn(t, models.RoleStudent)
	f.ctrl.Init(context.Background())

	if _, err := f.ctrl.SubmitCreate(context.Background(), validDraft()); err != nil {
		t.Fatalf("create as student surfaced error: %v", err)
	}
	if err := f.ctrl.MarkCompleted(context.Background(), 1); err != nil {
		t.Fatalf("mark completed as student surfaced error: %v", err)
	}
	if err := f.ctrl.DeleteEvent(context.Background(), 1, func() bool { return true }); err != nil {
		t.Fatalf("delete as student surfaced error: %v", err)
	}
	if n := f.mutations.Load(); n != 0 {
		t.Fatalf("%d mutating requests issued, want 0", n)
	}
	if f.ctrl.OpenCreate() {
		t.Fatal("create modal opened for a student")
	}
}

func TestFacultyCompletesEventScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.Create(models.Event{
		Title:          "Food Drive",
		Description:    "Community food drive",
		Status:         models.StatusActive,
		StartsAt:       time.Now().Add(time.Hour),
		Meals:          50,
		OrganizationID: 1,
		LocationName:   "Skutt Student Center",
	})
	f.signIn(t, models.RoleFaculty)
	f.ctrl.Init(context.Background())

	active := view.VisibleEvents(view.TabActiveEvents, f.ctrl.repo.Events())
	if len(active) != 1 || active[0].Meals != 50 {
		t.Fatalf("active before completion = %+v", active)
	}

	if err := f.ctrl.MarkCompleted(context.Background(), active[0].ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	cached := f.ctrl.repo.Events()
	if got := view.VisibleEvents(view.TabActiveEvents, cached); len(got) != 0 {
		t.Fatalf("active after completion = %+v, want empty", got)
	}
	completed := view.VisibleEvents(view.TabCompleted, cached)
	if len(completed) != 1 {
		t.Fatalf("completed after completion = %+v", completed)
	}
	if completed[0].Status != models.StatusEnded || completed[0].Meals != 0 {
		t.Fatalf("completed event = %+v, want ENDED with 0 meals", completed[0])
	}
}

func TestCompletedEventIsNotMutable(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ended := f.store.Create(models.Event{
		Title:          "Campus Cleanup",
		Description:    "Done already",
		Status:         models.StatusEnded,
		StartsAt:       time.Now().Add(-time.Hour),
		OrganizationID: 2,
		LocationName:   "Campus Quad",
	})
	f.signIn(t, models.RoleFaculty)
	f.ctrl.Init(context.Background())

	if err := f.ctrl.MarkCompleted(context.Background(), ended.ID); err != nil {
		t.Fatalf("mark completed on ended event surfaced error: %v", err)
	}
	if err := f.ctrl.DeleteEvent(context.Background(), ended.ID, func() bool { return true }); err != nil {
		t.Fatalf("delete on ended event surfaced error: %v", err)
	}
	if n := f.mutations.Load(); n != 0 {
		t.Fatalf("%d mutating requests issued for a non-active event, want 0", n)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.Seed()
	f.signIn(t, models.RoleFaculty)
	f.ctrl.Init(context.Background())

	if err := f.ctrl.DeleteEvent(context.Background(), 1, func() bool { return false }); err != nil {
		t.Fatalf("declined delete surfaced error: %v", err)
	}
	if n := f.mutations.Load(); n != 0 {
		t.Fatalf("declined delete issued %d requests, want 0", n)
	}

	if err := f.ctrl.DeleteEvent(context.Background(), 1, func() bool { return true }); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if n := f.mutations.Load(); n != 1 {
		t.Fatalf("confirmed delete issued %d mutating requests, want 1", n)
	}
}

func TestFacultyCreateFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.signIn(t, models.RoleFaculty)
	f.ctrl.Init(context.Background())

	if !f.ctrl.OpenCreate() {
		t.Fatal("create modal refused for faculty with organizations loaded")
	}
	created, err := f.ctrl.SubmitCreate(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatalf("created = %+v", created)
	}
	if f.ctrl.View().CreateOpen() {
		t.Fatal("create modal still open after a successful submit")
	}
	found := false
	for _, ev := range f.ctrl.VisibleEvents() {
		if ev.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created event not visible on the active tab after refresh")
	}
}

func TestLogoutResetsTab(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.signIn(t, models.RoleFaculty)
	f.ctrl.Init(context.Background())

	f.ctrl.SelectTab(view.TabProfile)
	f.ctrl.Logout()
	if f.ctrl.View().ActiveTab() != view.TabActiveEvents {
		t.Fatalf("tab after logout = %q, want active events", f.ctrl.View().ActiveTab())
	}
	if f.ctrl.Session().Session().SignedIn() {
		t.Fatal("still signed in after logout")
	}
}

func TestOpenDetail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.store.Seed()
	f.ctrl.Init(context.Background())

	if err := f.ctrl.OpenDetail(context.Background(), 2); err != nil {
		t.Fatalf("open detail: %v", err)
	}
	detail := f.ctrl.View().Detail()
	if detail == nil || detail.Title != "AI Mentorship Night" {
		t.Fatalf("detail = %+v", detail)
	}
	f.ctrl.CloseDetail()
	if f.ctrl.View().Detail() != nil {
		t.Fatal("detail retained after close")
	}

	if err := f.ctrl.OpenDetail(context.Background(), 999); err == nil {
		t.Fatal("expected error for missing event")
	}
}
