// Package auth owns the wallet sign-in session. A Machine restores a stored
// session at startup, runs the nonce, sign and verify sequence, persists the
// result and publishes every state change to subscribers.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/client/credentials"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/client/services"
	"github.com/dmitrijs2005/ehrdesk/internal/client/wallet"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	actionRestore      = "restore"
	actionConnect      = "connect"
	actionReconnect    = "reconnect"
	actionAuthenticate = "authenticate"

	defaultEventBuffer = 16
)

// Challenge returns the exact message the wallet is asked to sign.
func Challenge(nonce string) string {
	return common.ChallengePrefix + nonce
}

// Machine is the authentication state machine. It is safe for concurrent
// use. Concurrent calls of the same action share one execution; different
// actions run one at a time.
type Machine struct {
	api    services.AuthService
	creds  credentials.Store
	wallet wallet.Provider
	log    logging.Logger
	now    func() time.Time

	group singleflight.Group
	// flow serializes restore and sign-in sequences.
	flow sync.Mutex

	mu       sync.Mutex
	state    State
	address  string
	token    string
	user     *models.User
	lastErr  error
	restored bool
	// epoch changes on every logout; a sign-in started in an older epoch is
	// discarded.
	epoch   uint64
	subs    map[int]chan Event
	nextSub int
}

func NewMachine(api services.AuthService, creds credentials.Store, w wallet.Provider, log logging.Logger) *Machine {
	if log == nil {
		log = logging.Nop()
	}
	return &Machine{
		api:    api,
		creds:  creds,
		wallet: w,
		log:    log.With("component", "auth"),
		now:    time.Now,
		state:  StateUninitialized,
		subs:   make(map[int]chan Event),
	}
}

// Session returns a snapshot of the current session.
func (m *Machine) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Subscribe returns a channel of state transitions and a function that
// cancels the subscription and closes the channel. Events are dropped for a
// subscriber whose buffer is full.
func (m *Machine) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	ch := make(chan Event, buffer)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Restore loads the stored session and verifies it with the server. It runs
// once per Machine; later calls return the current session. Any failure
// clears the stored session.
func (m *Machine) Restore(ctx context.Context) (Session, error) {
	return m.do(actionRestore, func() (Session, error) {
		m.flow.Lock()
		defer m.flow.Unlock()
		return m.restore(ctx)
	})
}

func (m *Machine) restore(ctx context.Context) (Session, error) {
	m.mu.Lock()
	if m.restored {
		defer m.mu.Unlock()
		return m.snapshot(), nil
	}
	m.restored = true
	m.transition(StateRestoring, nil)
	m.mu.Unlock()

	creds, err := m.creds.Load(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to load stored session", "error", err)
		return m.reset(ctx, StateUnauthenticated, err), fmt.Errorf("restore session: %w", err)
	}

	switch {
	case creds.Token == "" && creds.Address == "":
		m.log.Debug(ctx, "no stored session")
		return m.reset(ctx, StateUnauthenticated, nil), nil
	case creds.Empty():
		m.log.Warn(ctx, "stored session is incomplete, clearing")
		return m.reset(ctx, StateUnauthenticated, nil), nil
	case tokenExpired(creds.Token, m.now()):
		m.log.Info(ctx, "stored token expired, clearing", "address", creds.Address)
		return m.reset(ctx, StateUnauthenticated, nil), nil
	}

	user, err := m.api.VerifySession(ctx)
	if err != nil {
		m.log.Info(ctx, "stored session rejected", "address", creds.Address, "error", err)
		return m.reset(ctx, StateUnauthenticated, err), fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.address, m.token, m.user = creds.Address, creds.Token, user
	m.transition(StateAuthenticated, nil)
	m.log.Info(ctx, "session restored", "address", creds.Address, "role", user.Role)
	return m.snapshot(), nil
}

// Connect asks the wallet for account access and signs in with the first
// account it returns.
func (m *Machine) Connect(ctx context.Context) (Session, error) {
	return m.do(actionConnect, func() (Session, error) {
		m.flow.Lock()
		defer m.flow.Unlock()

		epoch := m.begin()
		accounts, err := m.wallet.RequestAccounts(ctx)
		if err != nil {
			m.log.Warn(ctx, "wallet access failed", "error", err)
			return m.settle(err), fmt.Errorf("connect wallet: %w", err)
		}
		if len(accounts) == 0 {
			return m.settle(ErrNoAccounts), ErrNoAccounts
		}
		return m.authenticate(ctx, epoch, accounts[0])
	})
}

// Reconnect signs in with an account the wallet already exposes, without
// prompting for access. With no exposed account, or when that account is
// already signed in, it is a no-op.
func (m *Machine) Reconnect(ctx context.Context) (Session, error) {
	return m.do(actionReconnect, func() (Session, error) {
		m.flow.Lock()
		defer m.flow.Unlock()

		accounts, err := m.wallet.Accounts(ctx)
		if err != nil {
			return m.Session(), fmt.Errorf("list wallet accounts: %w", err)
		}
		if len(accounts) == 0 {
			m.log.Debug(ctx, "no connected wallet accounts")
			return m.Session(), nil
		}

		current := m.Session()
		if current.Authenticated() && strings.EqualFold(current.Address, accounts[0]) {
			return current, nil
		}

		epoch := m.begin()
		return m.authenticate(ctx, epoch, accounts[0])
	})
}

// Authenticate signs in with address, which must be an account the wallet
// controls. Concurrent calls share one execution per address.
func (m *Machine) Authenticate(ctx context.Context, address string) (Session, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return m.Session(), ErrNoAccounts
	}
	return m.do(actionAuthenticate+":"+strings.ToLower(address), func() (Session, error) {
		m.flow.Lock()
		defer m.flow.Unlock()

		epoch := m.begin()
		return m.authenticate(ctx, epoch, address)
	})
}

// authenticate runs nonce, sign and verify for address. The caller holds
// flow and has moved the machine to StateConnecting.
func (m *Machine) authenticate(ctx context.Context, epoch uint64, address string) (Session, error) {
	log := m.log.With("address", address)

	nonce, err := m.api.Nonce(ctx, address)
	if err != nil {
		log.Warn(ctx, "failed to get nonce", "error", err)
		return m.settle(err), fmt.Errorf("get nonce: %w", err)
	}

	m.step(StateSigning)
	signature, err := m.wallet.SignMessage(ctx, address, Challenge(nonce))
	if err != nil {
		if errors.Is(err, wallet.ErrUserRejected) {
			log.Info(ctx, "signature declined")
		} else {
			log.Warn(ctx, "failed to sign challenge", "error", err)
		}
		return m.settle(err), fmt.Errorf("sign challenge: %w", err)
	}

	m.step(StateVerifying)
	res, err := m.api.Authenticate(ctx, address, signature)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) || ctx.Err() != nil {
			return m.settle(err), fmt.Errorf("verify signature: %w", err)
		}
		log.Warn(ctx, "signature rejected", "error", err)
		failed := fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		return m.reset(ctx, StateFailed, failed), failed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		log.Info(ctx, "discarding sign-in finished after logout")
		m.settleLocked(ErrAborted)
		return m.snapshot(), ErrAborted
	}
	if err := m.creds.Save(ctx, credentials.Credentials{Token: res.Token, Address: address}); err != nil {
		log.Error(ctx, "failed to persist session", "error", err)
		m.clear()
		m.transition(StateFailed, err)
		return m.snapshot(), fmt.Errorf("persist session: %w", err)
	}

	user := res.User
	m.address, m.token, m.user = address, res.Token, &user
	m.transition(StateAuthenticated, nil)
	log.Info(ctx, "signed in", "role", user.Role)
	return m.snapshot(), nil
}

// Logout clears the stored and in-memory session. It makes no network call.
func (m *Machine) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.clear()
	if m.state != StateUnauthenticated || m.lastErr != nil {
		m.transition(StateUnauthenticated, nil)
	}
	if err := m.creds.Purge(ctx); err != nil {
		m.log.Error(ctx, "failed to purge stored session", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	m.log.Info(ctx, "signed out")
	return nil
}

// HandleUnauthorized drops the in-memory session after the server rejected
// its token. The HTTP client has already purged storage.
func (m *Machine) HandleUnauthorized(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return
	}
	m.log.Info(ctx, "session rejected by server", "address", m.address)
	m.clear()
	if m.state == StateAuthenticated {
		m.transition(StateUnauthenticated, common.ErrUnauthorized)
	}
}

// SignMessage signs message with the signed-in account.
func (m *Machine) SignMessage(ctx context.Context, message string) (string, error) {
	address := m.Session().Address
	if address == "" {
		return "", ErrWalletNotConnected
	}
	sig, err := m.wallet.SignMessage(ctx, address, message)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	return sig, nil
}

func (m *Machine) do(action string, fn func() (Session, error)) (Session, error) {
	v, err, _ := m.group.Do(action, func() (any, error) {
		return fn()
	})
	s, _ := v.(Session)
	return s, err
}

// begin moves to StateConnecting and returns the current logout epoch.
func (m *Machine) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(StateConnecting, nil)
	return m.epoch
}

func (m *Machine) step(to State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(to, nil)
}

// settle ends a sign-in that failed before the server judged it. The prior
// session, if any, is kept.
func (m *Machine) settle(err error) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settleLocked(err)
	return m.snapshot()
}

func (m *Machine) settleLocked(err error) {
	if m.token != "" {
		m.transition(StateAuthenticated, err)
	} else {
		m.transition(StateUnauthenticated, err)
	}
}

// reset clears the stored and in-memory session and moves to state.
func (m *Machine) reset(ctx context.Context, state State, cause error) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.creds.Purge(ctx); err != nil {
		m.log.Error(ctx, "failed to purge stored session", "error", err)
	}
	m.clear()
	m.transition(state, cause)
	return m.snapshot()
}

// clear requires mu.
func (m *Machine) clear() {
	m.address, m.token, m.user = "", "", nil
}

// transition requires mu.
func (m *Machine) transition(to State, err error) {
	from := m.state
	m.state = to
	m.lastErr = err

	ev := Event{From: from, To: to, Session: m.snapshot(), At: m.now()}
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
			m.log.Warn(context.Background(), "dropping auth event, subscriber is slow", "to", to)
		}
	}
}

// snapshot requires mu.
func (m *Machine) snapshot() Session {
	s := Session{State: m.state, Address: m.address, Token: m.token, Err: m.lastErr}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}
