package cli

import (
	"github.com/fallou/teranga/internal/client/api"
	"github.com/fallou/teranga/internal/client/iocli"
	"github.com/fallou/teranga/internal/client/payment"
	"github.com/fallou/teranga/internal/client/session"
	"github.com/fallou/teranga/internal/client/storage"
	"github.com/fallou/teranga/internal/config"
)

type Cli struct {
	apiClient *api.Client
	session   *session.Controller
	gate      *payment.Gate
	store     storage.CredentialStorage
	cfg       *config.Config
	io        iocli.IO
}

func New(apiClient *api.Client, store storage.CredentialStorage, cfg *config.Config, io iocli.IO) *Cli {
	ctrl := session.NewController(apiClient, store, &navigator{io: io})
	return &Cli{
		apiClient: apiClient,
		session:   ctrl,
		gate:      payment.NewGate(apiClient, ctrl),
		store:     store,
		cfg:       cfg,
		io:        io,
	}
}

// HandleSessionExpired is wired as the auth transport's expiry hook
func (c *Cli) HandleSessionExpired() {
	c.session.HandleSessionExpired()
}

// navigator turns session route changes into terminal hints
type navigator struct {
	io iocli.IO
}

func (n *navigator) NavigateTo(route session.Route) {
	if route == session.RouteAuth {
		n.io.Println("Session expired. Please run 'teranga login' again.")
	}
}

func PrintUsage(io iocli.IO) {
	io.Printf("%s", usageTemplate)
}
