package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Karol-96/arts-sell/api"
	"github.com/Karol-96/arts-sell/config"
	"github.com/Karol-96/arts-sell/core/payment"
	"github.com/Karol-96/arts-sell/database"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

// run spins a throwaway postgres container for the whole package. When no
// docker daemon is reachable the suite is skipped rather than failed, so the
// unit tests of the repo still run everywhere.
func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		fmt.Println("docker is not available, skipping integration tests:", err)
		return 0
	}
	if err := pool.Client.Ping(); err != nil {
		fmt.Println("docker is not available, skipping integration tests:", err)
		return 0
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=artsell",
	})
	if err != nil {
		fmt.Println("could not start postgres container:", err)
		return 1
	}
	defer pool.Purge(res)

	db, err := database.Open(database.Config{
		User:       "postgres",
		Password:   "postgres",
		Host:       "localhost:" + res.GetPort("5432/tcp"),
		Name:       "artsell",
		DisableTLS: true,
	})
	if err != nil {
		fmt.Println("could not open db:", err)
		return 1
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.StatusCheck(ctx, db); err != nil {
		fmt.Println("db never became ready:", err)
		return 1
	}

	if err := database.Migrate(db); err != nil {
		fmt.Println("could not migrate db:", err)
		return 1
	}

	testDB = db
	return m.Run()
}

// stubAuthorizer lets a test pin the payment outcome of the next checkout.
type stubAuthorizer struct {
	mu     sync.Mutex
	status payment.Status
}

func (s *stubAuthorizer) set(status payment.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *stubAuthorizer) Authorize(ctx context.Context, method, accountName, accountNumber string) (payment.Authorization, error) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()
	return payment.Static(status).Authorize(ctx, method, accountName, accountNumber)
}

type TestEnv struct {
	DB         *sqlx.DB
	Server     *httptest.Server
	URL        string
	Authorizer *stubAuthorizer

	client *http.Client
}

// NewTestEnv builds a server on the shared database with a deterministic
// payment authorizer. Tables are truncated so every test starts clean.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if testDB == nil {
		t.Skip("no test database available")
	}

	const q = `
	TRUNCATE rented_artworks, payment_info, order_items, orders, cart, artworks, users`
	if _, err := testDB.Exec(q); err != nil {
		t.Fatalf("truncating tables: %v", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	sm := scs.New()
	sm.Lifetime = time.Hour

	stub := &stubAuthorizer{status: payment.Completed}

	mux := api.APIMux(api.APIConfig{
		Log:        log,
		DB:         testDB,
		Session:    sm,
		Authorizer: stub,
		Checkout:   config.Checkout{ShippingFee: 4500, TaxPercent: 8, RentalTermDays: 30},
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("building cookie jar: %v", err)
	}

	return &TestEnv{
		DB:         testDB,
		Server:     srv,
		URL:        srv.URL,
		Authorizer: stub,
		client:     &http.Client{Jar: jar},
	}
}

func (te *TestEnv) Client() *http.Client { return te.client }

// do sends a JSON request through the shared client and decodes the answer
// into out when it is non-nil.
func (te *TestEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	r, err := http.NewRequest(method, te.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}

	w, err := te.client.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode < 300 {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding response of %s %s: %v", method, path, err)
		}
	}

	return w.StatusCode
}

// signup registers and logs in a fresh account. The artist flag picks the
// artist registration route.
func (te *TestEnv) signup(t *testing.T, username string, artist bool) {
	t.Helper()

	path := "/auth/signup"
	if artist {
		path = "/auth/signup/artist"
	}

	body := map[string]string{
		"username":        username,
		"firstname":       "Test",
		"lastname":        "User",
		"email":           username + "@test.com",
		"password":        "gophers123",
		"passwordConfirm": "gophers123",
	}

	if code := te.do(t, http.MethodPost, path, body, nil); code != http.StatusCreated {
		t.Fatalf("can't sign up %s: status code %d", username, code)
	}

	te.login(t, username)

	// Give the profile a shipping address so checkout can default to it.
	addr := map[string]string{
		"address": "1 Test Street",
		"city":    "Testville",
		"zip":     "12345",
		"country": "Testland",
	}
	if code := te.do(t, http.MethodPut, "/users/current", addr, nil); code != http.StatusOK {
		t.Fatalf("can't set address of %s: status code %d", username, code)
	}
}

func (te *TestEnv) login(t *testing.T, username string) {
	t.Helper()

	body := map[string]string{"username": username, "password": "gophers123"}
	if code := te.do(t, http.MethodPost, "/auth/login", body, nil); code != http.StatusOK {
		t.Fatalf("can't log in %s: status code %d", username, code)
	}
}

func (te *TestEnv) logout(t *testing.T) {
	t.Helper()

	if code := te.do(t, http.MethodPost, "/auth/logout", nil, nil); code != http.StatusNoContent {
		t.Fatalf("can't log out: status code %d", code)
	}
}

// promote flips a user's role directly in the database. Admin accounts are
// never creatable through the API.
func (te *TestEnv) promote(t *testing.T, username string, role string) {
	t.Helper()

	if _, err := te.DB.Exec(`UPDATE users SET role = $2 WHERE username = $1`, username, role); err != nil {
		t.Fatalf("promoting %s to %s: %v", username, role, err)
	}
}
