package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/notify"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/testsupport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

type recordingMailer struct {
	mu       sync.Mutex
	requests []services.MailRequest
	err      error
}

func (m *recordingMailer) Send(ctx context.Context, req services.MailRequest) services.MailResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return services.MailResult{To: req.To, Host: req.Host, SentAt: today, Err: m.err}
}

type recordingPersister struct {
	mu       sync.Mutex
	versions []uint64
	last     models.Content
	err      error
}

func (p *recordingPersister) Save(ctx context.Context, locale string, version uint64, content models.Content) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.versions = append(p.versions, version)
	p.last = content
	return p.err
}

func newTestStore(t *testing.T, mutate ...func(*services.StoreOptions)) (*services.Store, *testsupport.ManualScheduler) {
	t.Helper()
	sched := &testsupport.ManualScheduler{}
	opts := services.StoreOptions{
		Locale: "en",
		Queue:  notify.NewQueue(notify.DefaultTTL, notify.WithScheduler(sched)),
		Mailer: services.NewSimulatedMailer(0),
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return today },
	}
	for _, m := range mutate {
		m(&opts)
	}
	store, err := services.NewStore(opts)
	require.NoError(t, err)
	return store, sched
}

func notices(s *services.Store) []string {
	var out []string
	for _, n := range s.Notifications() {
		out = append(out, fmt.Sprintf("%s:%s", n.Kind, n.Message))
	}
	return out
}

func TestNewStoreSeedsFromLocale(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Equal(t, "en", store.Locale())
	assert.Zero(t, store.Version())
	if diff := cmp.Diff(store.Defaults(), store.Snapshot()); diff != "" {
		t.Errorf("seeded content mismatch (-defaults +snapshot):\n%s", diff)
	}
	assert.Equal(t, "Alex Rivera", store.Profile().Name)
	assert.Equal(t, "VisionFolio", store.Settings().SiteName)
	assert.Empty(t, store.Notifications())
}

func TestNewStoreUnknownLocale(t *testing.T) {
	_, err := services.NewStore(services.StoreOptions{Locale: "fr", Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, seed.ErrUnknownLocale)
}

func TestNewStoreFromInitialContent(t *testing.T) {
	initial := models.Content{
		Profile:  models.Profile{Name: "Restored"},
		Projects: []models.Project{{ID: "p", Title: "Kept", Tags: []string{"Go"}}},
	}
	store, _ := newTestStore(t, func(o *services.StoreOptions) {
		o.Initial = &initial
		o.InitialVersion = 41
	})

	assert.Equal(t, uint64(41), store.Version())
	assert.Equal(t, "Restored", store.Profile().Name)

	store.AddSkill(models.Skill{ID: "s", Name: "Go"})
	assert.Equal(t, uint64(42), store.Version())

	store.ResetToDefaults()
	assert.Equal(t, "Alex Rivera", store.Profile().Name)
}

func TestTagFilterScenario(t *testing.T) {
	initial := models.Content{Projects: []models.Project{
		{ID: "a", Title: "Charts", Tags: []string{"React", "D3.js"}},
		{ID: "b", Title: "Scenes", Tags: []string{"Three.js"}},
	}}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Initial = &initial })

	react := services.FilterByTag(store.Projects(), "React")
	require.Len(t, react, 1)
	assert.Equal(t, "a", react[0].ID)

	all := services.FilterByTag(store.Projects(), services.AllTag)
	assert.Equal(t, initial.Projects, all)
}

func TestResetAfterCreatesAndDelete(t *testing.T) {
	store, _ := newTestStore(t)
	defaults := store.Defaults()

	for i := 0; i < 3; i++ {
		store.AddProject(models.Project{ID: fmt.Sprintf("new-%d", i), Title: "New", Tags: []string{}})
	}
	store.DeleteProject("2")
	store.UpdateProfile(models.Profile{Name: "Someone Else"})
	require.Len(t, store.Projects(), 5)

	store.ResetToDefaults()

	if diff := cmp.Diff(defaults, store.Snapshot()); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, store.Projects(), len(defaults.Projects))
	assert.Contains(t, notices(store), "info:System reset")
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	store, _ := newTestStore(t)
	before := store.Snapshot()

	store.UpdateProject(models.Project{ID: "missing", Title: "Ghost"})
	store.DeleteProject("missing")
	store.UpdateSkill(models.Skill{ID: "missing"})
	store.DeleteSkill("missing")
	store.UpdateTestimonial(models.Testimonial{ID: "missing"})
	store.DeleteTestimonial("missing")
	store.UpdateMeeting(models.Meeting{ID: "missing"})
	store.DeleteMeeting("missing")
	store.MarkMessageRead(404)

	if diff := cmp.Diff(before, store.Snapshot()); diff != "" {
		t.Errorf("content changed (-before +after):\n%s", diff)
	}
}

func TestCollectionsKeepInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddProject(models.Project{ID: "4", Title: "Four"})
	store.DeleteProject("2")
	store.AddProject(models.Project{ID: "5", Title: "Five"})
	store.UpdateProject(models.Project{ID: "1", Title: "One again"})

	ids := make([]string, 0)
	for _, p := range store.Projects() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids)
	assert.Equal(t, "One again", store.Projects()[0].Title)
}

func TestDuplicateIDs(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddSkill(models.Skill{ID: "2", Name: "Go", Category: models.CategoryLanguages})
	require.Len(t, store.Skills(), 7)

	store.UpdateSkill(models.Skill{ID: "2", Name: "TypeScript 5", Category: models.CategoryLanguages})
	skills := store.Skills()
	assert.Equal(t, "TypeScript 5", skills[1].Name)
	assert.Equal(t, "Go", skills[6].Name)

	store.DeleteSkill("2")
	for _, s := range store.Skills() {
		assert.NotEqual(t, "2", s.ID)
	}
	assert.Len(t, store.Skills(), 5)
}

func TestMutationNotifications(t *testing.T) {
	cases := []struct {
		name string
		op   func(s *services.Store)
		want string
	}{
		{"profile", func(s *services.Store) { s.UpdateProfile(s.Profile()) }, "success:Profile updated"},
		{"settings", func(s *services.Store) { s.UpdateSettings(s.Settings()) }, "success:Settings saved"},
		{"add project", func(s *services.Store) { s.AddProject(models.Project{ID: "9"}) }, "success:Project added"},
		{"update project", func(s *services.Store) { s.UpdateProject(models.Project{ID: "1"}) }, "success:Project updated"},
		{"delete project", func(s *services.Store) { s.DeleteProject("1") }, "info:Project deleted"},
		{"add skill", func(s *services.Store) { s.AddSkill(models.Skill{ID: "9"}) }, "success:Skill added"},
		{"update skill", func(s *services.Store) { s.UpdateSkill(models.Skill{ID: "1"}) }, "success:Skill updated"},
		{"delete skill", func(s *services.Store) { s.DeleteSkill("1") }, "info:Skill removed"},
		{"add testimonial", func(s *services.Store) { s.AddTestimonial(models.Testimonial{ID: "9"}) }, "success:Testimonial added"},
		{"update testimonial", func(s *services.Store) { s.UpdateTestimonial(models.Testimonial{ID: "1"}) }, "success:Testimonial updated"},
		{"delete testimonial", func(s *services.Store) { s.DeleteTestimonial("1") }, "info:Testimonial removed"},
		{"add meeting", func(s *services.Store) { s.AddMeeting(models.Meeting{ID: "9"}) }, "success:Meeting scheduled"},
		{"update meeting", func(s *services.Store) { s.UpdateMeeting(models.Meeting{ID: "1"}) }, "success:Meeting updated"},
		{"delete meeting", func(s *services.Store) { s.DeleteMeeting("1") }, "info:Meeting cancelled"},
		{"message", func(s *services.Store) { s.ReceiveMessage("a@example.com", "Hi", "Hello") }, "info:New message from a@example.com"},
		{"reset", func(s *services.Store) { s.ResetToDefaults() }, "info:System reset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			tc.op(store)
			assert.Equal(t, []string{tc.want}, notices(store))
			assert.Equal(t, uint64(1), store.Version())
		})
	}
}

func TestRepeatedOperationsAreNotDeduplicated(t *testing.T) {
	store, _ := newTestStore(t)
	store.DeleteProject("missing")
	store.DeleteProject("missing")
	assert.Equal(t, []string{"info:Project deleted", "info:Project deleted"}, notices(store))
}

func TestNotificationsExpire(t *testing.T) {
	store, sched := newTestStore(t)

	store.AddProject(models.Project{ID: "9"})
	sched.Advance(2 * time.Second)
	store.DeleteProject("9")
	require.Len(t, store.Notifications(), 2)

	sched.Advance(2 * time.Second)
	assert.Equal(t, []string{"info:Project deleted"}, notices(store))

	sched.Advance(2 * time.Second)
	assert.Empty(t, store.Notifications())
}

func TestDismissNotification(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddProject(models.Project{ID: "9"})
	n := store.Notifications()[0]

	store.DismissNotification("unknown")
	require.Len(t, store.Notifications(), 1)

	store.DismissNotification(n.ID)
	assert.Empty(t, store.Notifications())
}

func TestNotificationsDisabled(t *testing.T) {
	store, _ := newTestStore(t)
	settings := store.Settings()
	settings.EnableNotifications = false
	store.UpdateSettings(settings)

	store.AddProject(models.Project{ID: "9"})
	store.DeleteProject("9")
	assert.Empty(t, store.Notifications())

	res := store.SendEmail(context.Background(), "a@example.com", "s", "b")
	assert.ErrorIs(t, res.Err, services.ErrMailCredentials)
	assert.Equal(t, []string{"error:SMTP credentials missing. Configure them in Settings."}, notices(store))
}

func TestSnapshotIsIsolated(t *testing.T) {
	store, _ := newTestStore(t)

	snap := store.Snapshot()
	snap.Projects[0].Tags[0] = "Mutated"
	snap.Meetings[0].Attendees[0] = "Mallory"
	snap.Skills = append(snap.Skills[:0], models.Skill{ID: "x"})

	fresh := store.Snapshot()
	assert.Equal(t, "React", fresh.Projects[0].Tags[0])
	assert.Equal(t, "Alice", fresh.Meetings[0].Attendees[0])
	assert.Equal(t, "1", fresh.Skills[0].ID)
}

func TestSendEmailWithoutCredentials(t *testing.T) {
	mailer := &recordingMailer{}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Mailer = mailer })

	for _, to := range []string{"a@example.com", "", "b@example.com"} {
		res := store.SendEmail(context.Background(), to, "subject", "body")
		assert.False(t, res.OK())
		assert.ErrorIs(t, res.Err, services.ErrMailCredentials)
	}

	for _, n := range store.Notifications() {
		assert.Equal(t, models.KindError, n.Kind)
	}
	assert.Len(t, store.Notifications(), 3)
	assert.Empty(t, mailer.requests)
}

func TestSendEmailDelivers(t *testing.T) {
	mailer := &recordingMailer{}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Mailer = mailer })

	settings := store.Settings()
	settings.SMTPUser = "alex"
	settings.SMTPPass = "secret"
	store.UpdateSettings(settings)

	res := store.SendEmail(context.Background(), "client@example.com", "Quote", "Attached")
	require.True(t, res.OK())
	assert.Equal(t, today, res.SentAt)

	require.Len(t, mailer.requests, 1)
	assert.Equal(t, services.MailRequest{
		Host:     "smtp.gmail.com",
		Port:     "587",
		Username: "alex",
		Password: "secret",
		To:       "client@example.com",
		Subject:  "Quote",
		Body:     "Attached",
	}, mailer.requests[0])
	assert.Contains(t, notices(store), "success:Email sent to client@example.com via smtp.gmail.com")
}

func TestSendEmailTransportFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("connection refused")}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Mailer = mailer })

	settings := store.Settings()
	settings.SMTPUser, settings.SMTPPass = "alex", "secret"
	store.UpdateSettings(settings)

	res := store.SendEmail(context.Background(), "client@example.com", "s", "b")
	assert.False(t, res.OK())
	assert.Contains(t, notices(store), "error:Email to client@example.com failed: connection refused")
}

func TestReceiveMessage(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.ReceiveMessage("a@example.com", "One", "Body")
	second := store.ReceiveMessage("b@example.com", "Two", "Body")

	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, int64(3), second.ID)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.False(t, first.Read)
	assert.Len(t, store.Messages(), 3)
}

func TestMarkMessageRead(t *testing.T) {
	store, _ := newTestStore(t)

	store.MarkMessageRead(1)
	store.MarkMessageRead(1)

	assert.True(t, store.Messages()[0].Read)
	assert.Empty(t, store.Notifications())
	assert.Equal(t, uint64(2), store.Version())
}

func TestSwitchLocale(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddMeeting(models.Meeting{ID: "m2", Title: "Kickoff", Attendees: []string{"Carol"}})
	store.AddProject(models.Project{ID: "9", Title: "Draft"})

	t.Run("unknown locale", func(t *testing.T) {
		before := store.Snapshot()
		err := store.SwitchLocale("fr", true)
		assert.ErrorIs(t, err, seed.ErrUnknownLocale)
		assert.Equal(t, "en", store.Locale())
		assert.Equal(t, before, store.Snapshot())
	})

	t.Run("path alias", func(t *testing.T) {
		before := store.Version()
		err := store.SwitchLocale("../seed/ar", false)
		assert.ErrorIs(t, err, seed.ErrUnknownLocale)
		assert.Equal(t, "en", store.Locale())
		assert.Equal(t, before, store.Version())
	})

	t.Run("keep content", func(t *testing.T) {
		require.NoError(t, store.SwitchLocale("ar", false))
		assert.Equal(t, "ar", store.Locale())
		assert.Len(t, store.Projects(), 4)
		assert.Equal(t, "Alex Rivera", store.Profile().Name)
		assert.Contains(t, notices(store), "info:Locale switched to ar, content kept")
	})

	t.Run("reseed", func(t *testing.T) {
		require.NoError(t, store.SwitchLocale("ar", true))
		ar := store.Defaults()

		snap := store.Snapshot()
		assert.Equal(t, ar.Profile, snap.Profile)
		assert.Equal(t, ar.Projects, snap.Projects)
		assert.Equal(t, ar.Skills, snap.Skills)
		assert.Equal(t, ar.Testimonials, snap.Testimonials)
		assert.Len(t, snap.Meetings, 2)
		assert.Contains(t, notices(store), "info:Content reloaded for locale ar")
	})

	t.Run("reset uses new locale", func(t *testing.T) {
		store.ResetToDefaults()
		if diff := cmp.Diff(store.Defaults(), store.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("reset mismatch (-want +got):\n%s", diff)
		}
		assert.Len(t, store.Meetings(), 1)
	})
}

func TestPersisterSeesEveryVersion(t *testing.T) {
	persister := &recordingPersister{}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Persister = persister })

	store.AddProject(models.Project{ID: "9", Title: "Saved"})
	store.DeleteProject("1")

	assert.Equal(t, []uint64{1, 2}, persister.versions)
	if diff := cmp.Diff(store.Snapshot(), persister.last); diff != "" {
		t.Errorf("persisted content mismatch (-store +saved):\n%s", diff)
	}
}

func TestPersisterFailureKeepsMutation(t *testing.T) {
	persister := &recordingPersister{err: errors.New("disk full")}
	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Persister = persister })

	store.AddProject(models.Project{ID: "9"})
	assert.Len(t, store.Projects(), 4)
	assert.Equal(t, uint64(1), store.Version())
}

func TestConcurrentMutations(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.AddSkill(models.Skill{ID: fmt.Sprintf("c%d", i), Name: "Concurrent"})
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Skills(), 56)
	assert.Equal(t, uint64(50), store.Version())
	assert.Len(t, store.Notifications(), 50)
}
