package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/notify"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/rs/zerolog"
)

// persistTimeout bounds a single snapshot write triggered by a mutation
const persistTimeout = 5 * time.Second

// Persister receives every new content version. Writes are best effort.
type Persister interface {
	Save(ctx context.Context, locale string, version uint64, content models.Content) error
}

// StoreOptions configures a Store
type StoreOptions struct {
	Locale    string
	Seeds     seed.Source
	Queue     *notify.Queue
	Mailer    Mailer
	Persister Persister
	Logger    zerolog.Logger
	Now       func() time.Time

	// Initial replaces the seeded content, e.g. with a restored snapshot
	Initial        *models.Content
	InitialVersion uint64
}

// Store is the in-memory source of truth for portfolio content. Every
// mutation pushes a notification; failures are reported the same way.
type Store struct {
	mu       sync.RWMutex
	locale   string
	defaults models.Content
	content  models.Content
	version  uint64

	seeds     seed.Source
	queue     *notify.Queue
	mailer    Mailer
	persister Persister
	log       zerolog.Logger
	now       func() time.Time
}

// NewStore seeds a store from the defaults of opts.Locale
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Locale == "" {
		opts.Locale = seed.DefaultLocale
	}
	if opts.Seeds == nil {
		opts.Seeds = seed.NewEmbedded()
	}
	if opts.Queue == nil {
		opts.Queue = notify.NewQueue(notify.DefaultTTL)
	}
	if opts.Mailer == nil {
		opts.Mailer = NewSimulatedMailer(DefaultMailDelay)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	defaults, err := opts.Seeds.Defaults(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to seed content store: %w", err)
	}

	s := &Store{
		locale:    opts.Locale,
		defaults:  defaults,
		content:   defaults.Clone(),
		version:   opts.InitialVersion,
		seeds:     opts.Seeds,
		queue:     opts.Queue,
		mailer:    opts.Mailer,
		persister: opts.Persister,
		log:       opts.Logger.With().Str("component", "store").Logger(),
		now:       opts.Now,
	}
	if opts.Initial != nil {
		s.content = opts.Initial.Clone()
	}
	return s, nil
}

// Locale returns the locale whose defaults back ResetToDefaults
func (s *Store) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Version increments on every mutation
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a deep copy of all content
func (s *Store) Snapshot() models.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// Defaults returns a copy of the seed content for the current locale
func (s *Store) Defaults() models.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults.Clone()
}

func (s *Store) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Profile
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Settings
}

func (s *Store) Projects() []models.Project { return s.Snapshot().Projects }

func (s *Store) Skills() []models.Skill { return s.Snapshot().Skills }

func (s *Store) Testimonials() []models.Testimonial { return s.Snapshot().Testimonials }

func (s *Store) Messages() []models.Message { return s.Snapshot().Messages }

func (s *Store) Meetings() []models.Meeting { return s.Snapshot().Meetings }

// Notifications lists live notifications, oldest first
func (s *Store) Notifications() []models.Notification {
	return s.queue.List()
}

// DismissNotification removes a notification before it expires
func (s *Store) DismissNotification(id string) {
	s.queue.Dismiss(id)
}

// UpdateProfile replaces the profile wholesale
func (s *Store) UpdateProfile(p models.Profile) {
	s.mutate(func(c *models.Content) { c.Profile = p })
	s.notify(models.KindSuccess, "Profile updated")
}

// UpdateSettings replaces the settings wholesale
func (s *Store) UpdateSettings(settings models.Settings) {
	s.mutate(func(c *models.Content) { c.Settings = settings })
	s.notify(models.KindSuccess, "Settings saved")
}

func (s *Store) AddProject(p models.Project) {
	s.mutate(func(c *models.Content) { c.Projects = appendEntity(s.log, "project", c.Projects, p) })
	s.notify(models.KindSuccess, "Project added")
}

// UpdateProject replaces the first project with a matching id.
// A missing id leaves the collection untouched.
func (s *Store) UpdateProject(p models.Project) {
	s.mutate(func(c *models.Content) { replaceFirst(c.Projects, p) })
	s.notify(models.KindSuccess, "Project updated")
}

// DeleteProject removes every project with the given id
func (s *Store) DeleteProject(id string) {
	s.mutate(func(c *models.Content) { c.Projects = removeAll(c.Projects, id) })
	s.notify(models.KindInfo, "Project deleted")
}

func (s *Store) AddSkill(sk models.Skill) {
	s.mutate(func(c *models.Content) { c.Skills = appendEntity(s.log, "skill", c.Skills, sk) })
	s.notify(models.KindSuccess, "Skill added")
}

func (s *Store) UpdateSkill(sk models.Skill) {
	s.mutate(func(c *models.Content) { replaceFirst(c.Skills, sk) })
	s.notify(models.KindSuccess, "Skill updated")
}

func (s *Store) DeleteSkill(id string) {
	s.mutate(func(c *models.Content) { c.Skills = removeAll(c.Skills, id) })
	s.notify(models.KindInfo, "Skill removed")
}

func (s *Store) AddTestimonial(t models.Testimonial) {
	s.mutate(func(c *models.Content) { c.Testimonials = appendEntity(s.log, "testimonial", c.Testimonials, t) })
	s.notify(models.KindSuccess, "Testimonial added")
}

func (s *Store) UpdateTestimonial(t models.Testimonial) {
	s.mutate(func(c *models.Content) { replaceFirst(c.Testimonials, t) })
	s.notify(models.KindSuccess, "Testimonial updated")
}

func (s *Store) DeleteTestimonial(id string) {
	s.mutate(func(c *models.Content) { c.Testimonials = removeAll(c.Testimonials, id) })
	s.notify(models.KindInfo, "Testimonial removed")
}

func (s *Store) AddMeeting(m models.Meeting) {
	s.mutate(func(c *models.Content) { c.Meetings = appendEntity(s.log, "meeting", c.Meetings, m) })
	s.notify(models.KindSuccess, "Meeting scheduled")
}

func (s *Store) UpdateMeeting(m models.Meeting) {
	s.mutate(func(c *models.Content) { replaceFirst(c.Meetings, m) })
	s.notify(models.KindSuccess, "Meeting updated")
}

func (s *Store) DeleteMeeting(id string) {
	s.mutate(func(c *models.Content) { c.Meetings = removeAll(c.Meetings, id) })
	s.notify(models.KindInfo, "Meeting cancelled")
}

// ReceiveMessage files an inbound inquiry under the next numeric id
func (s *Store) ReceiveMessage(from, subject, body string) models.Message {
	var msg models.Message
	s.mutate(func(c *models.Content) {
		var next int64 = 1
		for _, m := range c.Messages {
			if m.ID >= next {
				next = m.ID + 1
			}
		}
		msg = models.Message{
			ID:      next,
			From:    from,
			Subject: subject,
			Date:    s.now().Format(time.DateOnly),
			Body:    body,
		}
		c.Messages = append(c.Messages, msg)
	})
	s.notify(models.KindInfo, fmt.Sprintf("New message from %s", from))
	return msg
}

// MarkMessageRead flags a message as read. It fires on every inbox click,
// so it is idempotent and silent.
func (s *Store) MarkMessageRead(id int64) {
	s.mutate(func(c *models.Content) {
		for i := range c.Messages {
			if c.Messages[i].ID == id {
				c.Messages[i].Read = true
			}
		}
	})
}

// SendEmail hands a message to the mail transport using the configured SMTP
// settings. Missing credentials abort before the transport is touched.
func (s *Store) SendEmail(ctx context.Context, to, subject, body string) MailResult {
	settings := s.Settings()
	if !settings.HasMailCredentials() {
		s.notify(models.KindError, "SMTP credentials missing. Configure them in Settings.")
		return MailResult{To: to, Host: settings.SMTPHost, Err: ErrMailCredentials}
	}

	res := s.mailer.Send(ctx, MailRequest{
		Host:     settings.SMTPHost,
		Port:     settings.SMTPPort,
		Username: settings.SMTPUser,
		Password: settings.SMTPPass,
		To:       to,
		Subject:  subject,
		Body:     body,
	})
	if res.Err != nil {
		s.log.Warn().Err(res.Err).Str("to", to).Msg("mail delivery failed")
		s.notify(models.KindError, fmt.Sprintf("Email to %s failed: %v", to, res.Err))
		return res
	}

	s.notify(models.KindSuccess, fmt.Sprintf("Email sent to %s via %s", to, settings.SMTPHost))
	return res
}

// ResetToDefaults restores every collection and singleton to the seed of the
// current locale. It is irreversible.
func (s *Store) ResetToDefaults() {
	s.mutate(func(c *models.Content) { *c = s.defaults.Clone() })
	s.log.Info().Str("locale", s.Locale()).Msg("content reset to defaults")
	s.notify(models.KindInfo, "System reset")
}

// SwitchLocale changes the default set. Current content is only replaced
// with the new locale's profile, projects, skills and testimonials when
// reseed is true.
func (s *Store) SwitchLocale(locale string, reseed bool) error {
	defaults, err := s.seeds.Defaults(locale)
	if err != nil {
		return err
	}

	s.mutate(func(c *models.Content) {
		s.locale = locale
		s.defaults = defaults
		if reseed {
			fresh := defaults.Clone()
			c.Profile = fresh.Profile
			c.Projects = fresh.Projects
			c.Skills = fresh.Skills
			c.Testimonials = fresh.Testimonials
		}
	})

	if reseed {
		s.notify(models.KindInfo, fmt.Sprintf("Content reloaded for locale %s", locale))
	} else {
		s.notify(models.KindInfo, fmt.Sprintf("Locale switched to %s, content kept", locale))
	}
	return nil
}

// mutate applies fn under the write lock, bumps the version and hands the
// result to the persister
func (s *Store) mutate(fn func(c *models.Content)) {
	s.mu.Lock()
	fn(&s.content)
	s.version++
	locale, version := s.locale, s.version
	var snap models.Content
	if s.persister != nil {
		snap = s.content.Clone()
	}
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, locale, version, snap); err != nil {
		s.log.Error().Err(err).Uint64("version", version).Msg("failed to persist content snapshot")
	}
}

// notify pushes a notification unless toasts are disabled in settings.
// Errors are always delivered.
func (s *Store) notify(kind models.NotificationKind, message string) {
	if kind != models.KindError && !s.Settings().EnableNotifications {
		s.log.Debug().Str("kind", string(kind)).Str("message", message).Msg("notification suppressed")
		return
	}
	s.queue.Push(kind, message)
}

// appendEntity appends e. Duplicate ids are accepted; later updates hit the
// first match and deletes remove all of them.
func appendEntity[T models.Entity](log zerolog.Logger, kind string, list []T, e T) []T {
	if slices.ContainsFunc(list, func(x T) bool { return x.EntityID() == e.EntityID() }) {
		log.Warn().Str("kind", kind).Str("id", e.EntityID()).Msg("duplicate id accepted")
	}
	return append(list, e)
}

// replaceFirst swaps in e for the first element sharing its id
func replaceFirst[T models.Entity](list []T, e T) bool {
	for i := range list {
		if list[i].EntityID() == e.EntityID() {
			list[i] = e
			return true
		}
	}
	return false
}

// removeAll drops every element with the given id, keeping survivor order
func removeAll[T models.Entity](list []T, id string) []T {
	return slices.DeleteFunc(list, func(x T) bool { return x.EntityID() == id })
}
