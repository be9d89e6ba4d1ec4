// Package console assembles the terminal admin console: the session
// store, the API client and the three views behind a simple command loop.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/afrikanet/satellite-console/internal/config"
	"github.com/afrikanet/satellite-console/internal/console/alerts"
	"github.com/afrikanet/satellite-console/internal/console/api"
	"github.com/afrikanet/satellite-console/internal/console/dashboard"
	"github.com/afrikanet/satellite-console/internal/console/session"
	"github.com/afrikanet/satellite-console/internal/console/subscriptions"
	"github.com/afrikanet/satellite-console/internal/console/view"
)

// App owns the console's components and the command loop.
type App struct {
	session       *session.Store
	subscriptions *subscriptions.Repository
	alerts        *alerts.Feed
	dashboard     *dashboard.Reader
	views         *view.Controller
	logger        *slog.Logger

	in  io.Reader
	out io.Writer
}

// New builds the App from the console config section.
func New(cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	keeper := &session.Keeper{}
	vault, err := session.NewVault(cfg.Console.TokenFile)
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.Console.APIBaseURL, cfg.Console.RequestTimeout, keeper, logger)

	return &App{
		session:       session.NewStore(keeper, vault, client, logger),
		subscriptions: subscriptions.New(client, logger),
		alerts:        alerts.New(client),
		dashboard:     dashboard.New(client),
		views:         view.NewController(),
		logger:        logger,
		in:            in,
		out:           out,
	}, nil
}

// Run restores the session and serves the command loop until quit or EOF.
func (a *App) Run(ctx context.Context) error {
	if a.session.Restore(ctx) {
		fmt.Fprintf(a.out, "Connecté en tant que %s\n", a.session.User().Username)
	} else {
		fmt.Fprintln(a.out, "Non connecté. Utilisez: login <utilisateur> <mot de passe>")
	}

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprintf(a.out, "[%s] > ", a.views.Active())
		if !scanner.Scan() {
			return scanner.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		a.dispatch(ctx, fields)
	}
}

func (a *App) dispatch(ctx context.Context, fields []string) {
	switch fields[0] {
	case "login":
		if len(fields) != 3 {
			fmt.Fprintln(a.out, "usage: login <utilisateur> <mot de passe>")
			return
		}
		result := a.session.Login(ctx, fields[1], fields[2])
		if !result.Success {
			fmt.Fprintf(a.out, "Échec de connexion: %s\n", result.Error)
			return
		}
		a.views.Reset()
		fmt.Fprintf(a.out, "Connecté en tant que %s\n", a.session.User().Username)
	case "logout":
		a.session.Logout()
		fmt.Fprintln(a.out, "Déconnecté")
	case "dashboard", "subscriptions", "alerts":
		if !a.session.Authenticated() {
			fmt.Fprintln(a.out, "Veuillez vous connecter d'abord")
			return
		}
		a.views.Select(view.View(fields[0]))
		a.renderActive(ctx)
	default:
		fmt.Fprintf(a.out, "Commande inconnue: %s\n", fields[0])
	}
}

// renderActive pulls the active view's data and prints it. A failed fetch
// is reported and leaves the console usable.
func (a *App) renderActive(ctx context.Context) {
	switch a.views.Active() {
	case view.Dashboard:
		stats, err := a.dashboard.Stats(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Erreur: %v\n", err)
			return
		}
		fmt.Fprintf(a.out, "Abonnés: %d  Revenu mensuel: %d FCFA  Actifs: %d  Alertes urgentes: %d\n",
			stats.TotalSubscribers, stats.MonthlyRevenue, stats.ActiveSubscriptions, stats.UrgentAlerts)
		summary, err := a.alerts.Summary(ctx, 3)
		if err != nil {
			return
		}
		for _, alert := range summary {
			fmt.Fprintf(a.out, "  ! %s\n", alert.Message)
		}
	case view.Subscriptions:
		subs, err := a.subscriptions.List(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Erreur: %v\n", err)
			return
		}
		for _, sub := range subs {
			fmt.Fprintf(a.out, "  %s  %-25s %-10s %-10s fin %s  [%s]\n",
				sub.ID, sub.ClientName, sub.Technology, sub.Plan,
				sub.EndDate.Format("02/01/2006"), sub.Status)
		}
	case view.Alerts:
		feed, err := a.alerts.List(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Erreur: %v\n", err)
			return
		}
		if len(feed) == 0 {
			fmt.Fprintln(a.out, "Aucune alerte")
			return
		}
		for _, alert := range feed {
			fmt.Fprintf(a.out, "  [%s] %s\n", alert.AlertType, alert.Message)
		}
	}
}
