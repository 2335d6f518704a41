package calendar

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"

	"invoicer/internal/config"
)

// Authenticate returns a valid OAuth2 token, running the browser
// consent flow if no usable token is stored. The token is cached at the
// configured token path.
func Authenticate(ctx context.Context, cfg *config.Config) (*oauth2.Token, error) {
	const op = "Authenticate"

	conf, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	if token, err := tokenFromFile(cfg.TokenFile); err == nil {
		if token.Valid() {
			return token, nil
		}
		if token.RefreshToken != "" {
			refreshed, err := conf.TokenSource(ctx, token).Token()
			if err == nil {
				if err := saveToken(cfg.TokenFile, refreshed); err != nil {
					return nil, WrapCalendarError(op, err, "saving refreshed token")
				}
				return refreshed, nil
			}
			// Refresh failed (revoked or expired grant); fall through
			// to a fresh consent flow.
		}
	}

	token, err := runLocalServerFlow(ctx, conf)
	if err != nil {
		return nil, WrapCalendarError(op, err, "browser consent flow")
	}
	if err := saveToken(cfg.TokenFile, token); err != nil {
		return nil, WrapCalendarError(op, err, "saving token")
	}
	return token, nil
}

// IsAuthenticated reports whether a usable token is stored.
func IsAuthenticated(cfg *config.Config) bool {
	token, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return false
	}
	return token.Valid() || token.RefreshToken != ""
}

// ClearCredentials removes the stored token. It returns false when
// there was nothing to clear.
func ClearCredentials(cfg *config.Config) (bool, error) {
	err := os.Remove(cfg.TokenFile)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove token file: %w", err)
	}
	return true, nil
}

func oauthConfig(cfg *config.Config) (*oauth2.Config, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if os.IsNotExist(err) {
		return nil, WrapCalendarError("oauthConfig", ErrMissingCredentials, cfg.CredentialsFile)
	}
	if err != nil {
		return nil, WrapCalendarError("oauthConfig", err, "reading credentials file")
	}

	conf, err := google.ConfigFromJSON(data, calendarapi.CalendarReadonlyScope)
	if err != nil {
		return nil, WrapCalendarError("oauthConfig", err, "parsing credentials file")
	}
	return conf, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// runLocalServerFlow serves the OAuth redirect on an ephemeral local
// port, prints the consent URL and exchanges the returned code.
func runLocalServerFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start local redirect listener: %w", err)
	}
	defer listener.Close()

	flowConf := *conf
	flowConf.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if query.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- callback{err: fmt.Errorf("oauth state mismatch")}
				return
			}
			if errMsg := query.Get("error"); errMsg != "" {
				http.Error(w, errMsg, http.StatusBadRequest)
				results <- callback{err: fmt.Errorf("authorization denied: %s", errMsg)}
				return
			}
			fmt.Fprintln(w, "Authentication complete. You can close this window.")
			results <- callback{code: query.Get("code")}
		}),
	}
	go server.Serve(listener)
	defer server.Shutdown(context.Background())

	authURL := flowConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open this URL in your browser to authorize access:\n\n  %s\n\n", authURL)

	select {
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		return flowConf.Exchange(ctx, result.code)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
