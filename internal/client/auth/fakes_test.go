package auth

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/ehrdesk/internal/client/credentials"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/client/services"
)

type fakeAPI struct {
	mu sync.Mutex

	nonce    string
	nonceErr error

	authToken string
	authUser  models.User
	authErr   error

	verifyUser *models.User
	verifyErr  error

	nonceCalls  int
	authCalls   int
	verifyCalls int
	lastSig     string
	lastAddress string
}

func (f *fakeAPI) Nonce(_ context.Context, address string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nonceCalls++
	f.lastAddress = address
	return f.nonce, f.nonceErr
}

func (f *fakeAPI) Authenticate(_ context.Context, address, signature string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++
	f.lastSig = signature
	if f.authErr != nil {
		return nil, f.authErr
	}
	u := f.authUser
	u.Address = address
	return &services.AuthResult{Token: f.authToken, User: u}, nil
}

func (f *fakeAPI) VerifySession(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	return f.verifyUser, f.verifyErr
}

type fakeWallet struct {
	accounts    []string
	accountsErr error
	requestErr  error
	signErr     error

	// gate, when set, blocks RequestAccounts until closed; started is
	// signalled on entry.
	gate    chan struct{}
	started chan struct{}

	// signGate and signStarted do the same for SignMessage.
	signGate    chan struct{}
	signStarted chan string

	requests atomic.Int32
	mu       sync.Mutex
	signed   []string
}

func (f *fakeWallet) Accounts(context.Context) ([]string, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	f.requests.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.accounts, f.requestErr
}

func (f *fakeWallet) SignMessage(ctx context.Context, account, message string) (string, error) {
	if f.signStarted != nil {
		f.signStarted <- account
	}
	if f.signGate != nil {
		select {
		case <-f.signGate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = append(f.signed, message)
	if f.signErr != nil {
		return "", f.signErr
	}
	return "sig:" + account, nil
}

// memStore is an in-memory credentials.Store.
type memStore struct {
	mu      sync.Mutex
	creds   credentials.Credentials
	loadErr error
	saveErr error
	purges  int
}

func (s *memStore) Load(context.Context) (credentials.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.loadErr
}

func (s *memStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Token, nil
}

func (s *memStore) Save(_ context.Context, c credentials.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.creds = c
	return nil
}

func (s *memStore) Purge(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purges++
	s.creds = credentials.Credentials{}
	return nil
}

func (s *memStore) get() credentials.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}
