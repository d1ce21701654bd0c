package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/handlers"
	"github.com/localnerve/visionfolio/internal/middleware"
	"github.com/localnerve/visionfolio/internal/notify"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/testsupport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const passphrase = "correct horse"

type fakeGenerator struct {
	text string
	err  error
}

func (f fakeGenerator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	return f.text, f.err
}

type failingMailer struct{}

func (failingMailer) Send(ctx context.Context, req services.MailRequest) services.MailResult {
	return services.MailResult{To: req.To, Host: req.Host, Err: errors.New("connection refused")}
}

type fixture struct {
	app   *fiber.App
	store *services.Store
}

type fixtureOption func(*services.StoreOptions, *services.Generator)

func withMailer(m services.Mailer) fixtureOption {
	return func(o *services.StoreOptions, _ *services.Generator) { o.Mailer = m }
}

func withGenerator(g services.Generator) fixtureOption {
	return func(_ *services.StoreOptions, gen *services.Generator) { *gen = g }
}

func newFixture(t *testing.T, opts ...fixtureOption) fixture {
	t.Helper()

	queue := notify.NewQueue(time.Hour)
	t.Cleanup(queue.Close)

	storeOpts := services.StoreOptions{
		Locale: "en",
		Queue:  queue,
		Mailer: services.NewSimulatedMailer(0),
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) },
	}
	var gen services.Generator
	for _, opt := range opts {
		opt(&storeOpts, &gen)
	}

	store, err := services.NewStore(storeOpts)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, handlers.Handlers{
		Portfolio: &handlers.PortfolioHandler{
			Store:     store,
			Assistant: services.NewAssistant(gen, store.Snapshot(), zerolog.Nop()),
		},
		Admin: &handlers.AdminHandler{
			Store: store,
			Now:   storeOpts.Now,
		},
		Health: &handlers.HealthHandler{
			Inputs: services.HealthInputs{Store: store, Log: zerolog.Nop()},
		},
		AdminPassphrase: passphrase,
	})
	app.Use(handlers.NotFound)

	return fixture{app: app, store: store}
}

func (f fixture) public(t *testing.T, method, path string, body any) *fiberResponse {
	t.Helper()
	return &fiberResponse{t: t, resp: testsupport.Request(t, f.app, method, path, body)}
}

func (f fixture) admin(t *testing.T, method, path string, body any) *fiberResponse {
	t.Helper()
	return &fiberResponse{t: t, resp: testsupport.Request(t, f.app, method, path, body, middleware.PassphraseHeader, passphrase)}
}
