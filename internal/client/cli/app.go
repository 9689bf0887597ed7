package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/ehrdesk/internal/client/auth"
	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/config"
	"github.com/dmitrijs2005/ehrdesk/internal/client/credentials"
	"github.com/dmitrijs2005/ehrdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ehrdesk/internal/client/services"
	"github.com/dmitrijs2005/ehrdesk/internal/client/wallet"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

// sessionManager is the part of *auth.Machine the console uses.
type sessionManager interface {
	Session() auth.Session
	Restore(ctx context.Context) (auth.Session, error)
	Connect(ctx context.Context) (auth.Session, error)
	Reconnect(ctx context.Context) (auth.Session, error)
	Logout(ctx context.Context) error
	SignMessage(ctx context.Context, message string) (string, error)
	Subscribe(buffer int) (<-chan auth.Event, func())
}

type App struct {
	log          logging.Logger
	session      sessionManager
	doctors      services.DoctorService
	patients     services.PatientService
	appointments services.AppointmentService
	records      services.MedicalRecordService
	dashboard    services.DashboardService
	reader       *bufio.Reader
	out          io.Writer
	interactive  bool
	closeRepo    func() error
}

// NewApp opens session storage and builds every client component from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	repo, err := openRepository(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing session storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}
	store := credentials.NewStore(repo)

	var machine *auth.Machine
	api, err := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithUnauthorizedHandler(func(ctx context.Context) { machine.HandleUnauthorized(ctx) }),
	)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	signer := wallet.NewRPCProvider(c.WalletEndpoint, 0, log)
	machine = auth.NewMachine(services.NewAuthService(api, log), store, signer, log)

	return &App{
		log:          log,
		session:      machine,
		doctors:      services.NewDoctorService(api, log),
		patients:     services.NewPatientService(api, log),
		appointments: services.NewAppointmentService(api, log),
		records:      services.NewMedicalRecordService(api, log),
		dashboard:    services.NewDashboardService(api, log),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		interactive:  interactive(),
		closeRepo:    repo.Close,
	}, nil
}

func openRepository(ctx context.Context, c *config.Config) (metadata.Repository, error) {
	switch c.StorageBackend {
	case config.BackendRedis:
		rdb, err := metadata.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err != nil {
			return nil, err
		}
		return metadata.NewRedisRepository(rdb, c.RedisKeyPrefix), nil
	case config.BackendSQLite:
		db, err := metadata.OpenSQLite(ctx, c.StoragePath)
		if err != nil {
			return nil, err
		}
		return metadata.NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Run restores the stored session, starts the session watcher and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if a.interactive {
		fmt.Fprintln(a.out, "EHR admin console (type 'help' for commands)")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := a.WatchSession(ctx)

	if _, err := a.session.Restore(ctx); err != nil {
		a.log.Debug(ctx, "session not restored", "error", err)
		printlnFn("Stored session could not be restored:", describeError(err))
	}

	runREPL(ctx, a, a.status, a.reader)

	cancel()
	<-done
	return nil
}

func (a *App) Close() error {
	if a.closeRepo == nil {
		return nil
	}
	err := a.closeRepo()
	a.closeRepo = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Session().Authenticated()
}

// status renders the prompt suffix, e.g. "ann doctor 0x5290…9ee7".
func (a *App) status() string {
	s := a.session.Session()
	if !s.Authenticated() {
		return s.State.String()
	}
	name := shortAddress(s.Address)
	if s.User != nil {
		name = fmt.Sprintf("%s %s %s", s.User.DisplayName(), s.User.Role, name)
	}
	return name
}
