package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fedikit/fedigo/internal/auth"
	"github.com/fedikit/fedigo/pkg/fedi"
	"github.com/fedikit/fedigo/pkg/fediclient"
)

const (
	loginClientName  = "fedi"
	loginRedirectURI = "urn:ietf:wg:oauth:2.0:oob"
	loginScopes      = "read write follow push"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a server",
		Long:  "Register a client application, obtain a token with the password grant, and persist it",
		RunE:  runLogin,
	}

	return cmd
}

//nolint:funlen // Interactive flows read better as a single sequence
func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	server := viper.GetString("server")
	if server == "" {
		fmt.Print("Server (e.g. mastodon.social): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading server: %w", err)
		}

		server = strings.TrimSpace(line)
	}

	if server == "" {
		return ErrServerRequired
	}

	if !strings.Contains(server, "://") {
		server = "https://" + server
	}

	server = strings.TrimSuffix(server, "/")

	fmt.Print("Username (email): ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	username := strings.TrimSpace(line)

	fmt.Print("Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Println()

	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	// Register the client app with an unauthenticated client.
	anonClient, err := fediclient.NewWithServer(ctx, server)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	app, err := anonClient.Apps().Register(ctx, &fedi.AppRegisterRequest{
		ClientName:   loginClientName,
		RedirectURIs: loginRedirectURI,
		Scopes:       loginScopes,
	})
	if err != nil {
		return fmt.Errorf("registering application: %w", err)
	}

	tokenManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     server + "/oauth/token",
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		Username:     username,
		Password:     string(passwordBytes),
		Scopes:       loginScopes,
	})

	token, err := tokenManager.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("obtaining token: %w", err)
	}

	// Confirm the token works before persisting it.
	authedClient, err := fediclient.NewWithToken(ctx, server, token)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	account, err := authedClient.Accounts().VerifyCredentials(ctx)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}

	viper.Set("server", server)
	viper.Set("token", token)

	err = viper.WriteConfig()
	if err != nil {
		err = viper.SafeWriteConfig()
	}

	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Logged in as @%s on %s\n", account.Acct, server)

	return nil
}
