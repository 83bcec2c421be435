package main

import (
	"context"

	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"github.com/medease/desktop/assets"
	"github.com/medease/desktop/core"
	"github.com/medease/desktop/internal/auth"
	"github.com/medease/desktop/internal/config"
	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/pkg/logger"
	"github.com/medease/desktop/services"
	"github.com/medease/desktop/ui"
)

func main() {
	// A .env next to the binary is optional; the environment wins.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Str("api", cfg.APIBaseURL).Msg("starting MedEase desktop")

	store, err := core.NewCredentialStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare session store")
	}
	if err := store.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer store.Close()

	client := services.NewClient(cfg.APIBaseURL, store, services.WithTimeout(cfg.HTTPTimeout))
	authSvc := services.NewAuthService(client)
	appointments := services.NewAppointmentService(client)
	directory := services.NewDirectoryService(client)
	session := core.NewSessionManager(store, authSvc)

	myApp := app.New()
	if icon := assets.GetLogoResource(); icon != nil {
		myApp.SetIcon(icon)
	}

	// The console currently on screen. The unauthorized hook fires on
	// request goroutines, so the tracker confines every access to the
	// UI thread.
	var active ui.ActiveConsole

	var showLogin func()
	var showDashboard func(types.UserProfile)

	showLogin = func() {
		active.Set(nil)
		loginWin := ui.NewLoginWindow(myApp, session, showDashboard)
		loginWin.Show()
	}

	showDashboard = func(profile types.UserProfile) {
		dash := ui.NewDashboard(myApp, session, appointments, directory, profile, showLogin)
		active.Set(dash)
		dash.Win.Show()
	}

	client.SetUnauthorizedHandler(active.Expire)

	// One resolution per start: a stored credential that cannot be
	// attributed to a role has been purged by the time this returns.
	resolveCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	sess := session.Resolve(resolveCtx)
	cancel()

	if sess.State == auth.Authenticated {
		log.Info().Str("role", string(sess.Role())).Msg("session restored")
		showDashboard(sess.Profile)
	} else {
		showLogin()
	}

	myApp.Run()
	log.Info().Msg("application exited")
}
