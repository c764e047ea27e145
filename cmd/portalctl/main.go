// Command portalctl talks to a running portal API: it checks connectivity,
// provisions admin accounts and keeps a signed-in session on disk.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/gateway"
	applog "refugee-portal/internal/pkg/logger"
	"refugee-portal/internal/session"
)

func main() {
	_ = godotenv.Load()

	zl, err := applog.New(os.Getenv("LOG_LEVEL"), "console", "portalctl")
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer zl.Sync()

	if err := newApp(zl).Run(os.Args); err != nil {
		zl.Fatal("portalctl failed", zap.Error(err))
	}
}

type runner struct {
	log *zap.Logger
}

func newApp(zl *zap.Logger) *cli.App {
	r := &runner{log: zl}
	return &cli.App{
		Name:  "portalctl",
		Usage: "operate a refugee portal deployment",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "API base URL", EnvVars: []string{"PORTAL_URL"}, Required: true},
			&cli.StringFlag{Name: "api-key", Usage: "public API key", EnvVars: []string{"PORTAL_API_KEY"}, Required: true},
			&cli.StringFlag{Name: "token-file", Usage: "where the session is kept", EnvVars: []string{"PORTAL_TOKEN_FILE"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "verify the API is reachable and read a few collections",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "password", EnvVars: []string{"PORTAL_PASSWORD"}},
				},
				Action: r.check,
			},
			{
				Name:  "create-admin",
				Usage: "register an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"PORTAL_ADMIN_PASSWORD"}},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "service-key", Required: true, EnvVars: []string{"PORTAL_SERVICE_KEY"}},
				},
				Action: r.createAdmin,
			},
			{
				Name:   "signout",
				Usage:  "end the stored session",
				Action: r.signOut,
			},
		},
	}
}

type env struct {
	log    *zap.Logger
	client *gateway.Client
	holder *session.Holder
}

func (r *runner) setup(c *cli.Context) (*env, error) {
	zl := r.log
	path := c.String("token-file")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "refugee-portal", "session.json")
	}

	client := gateway.New(c.String("url"), c.String("api-key"), zl.Named("gateway"))
	holder := session.New(client, session.NewFileStore(path), zl.Named("session"))
	client.SetTokenProvider(holder.AccessToken)

	return &env{log: zl, client: client, holder: holder}, nil
}

func (r *runner) check(c *cli.Context) error {
	e, err := r.setup(c)
	if err != nil {
		return err
	}
	defer e.holder.Close()
	ctx := c.Context

	if err := e.client.CheckConnection(ctx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	e.log.Info("API reachable", zap.String("url", c.String("url")))

	if err := e.holder.Init(ctx); err != nil {
		e.log.Warn("stored session not restored", zap.Error(err))
	}
	if email := c.String("email"); email != "" {
		if _, err := e.holder.SignIn(ctx, domain.SignInInput{Email: email, Password: c.String("password")}); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
	}

	if !e.holder.SignedIn() {
		e.log.Info("not signed in, skipping collection checks")
		return nil
	}

	p := e.holder.Profile()
	e.log.Info("signed in", zap.String("email", e.holder.Email()), zap.String("role", string(p.Role)))

	services, err := e.client.ListServices(ctx)
	if err != nil {
		return collectionError("services", err)
	}
	e.log.Info("services readable", zap.Int("count", len(services)))

	profiles, err := e.client.ListProfiles(ctx, gateway.Query{"page": "1", "page_size": "1"})
	if err != nil {
		return collectionError("profiles", err)
	}
	e.log.Info("profiles readable", zap.Int("count", len(profiles)))
	return nil
}

func collectionError(name string, err error) error {
	if gateway.IsStatus(err, http.StatusUnauthorized) || gateway.IsStatus(err, http.StatusForbidden) {
		return fmt.Errorf("%s rejected, check credentials: %w", name, err)
	}
	return fmt.Errorf("read %s: %w", name, err)
}

func (r *runner) createAdmin(c *cli.Context) error {
	e, err := r.setup(c)
	if err != nil {
		return err
	}
	defer e.holder.Close()

	res, err := e.client.SignUp(c.Context, domain.SignUpInput{
		Email:    c.String("email"),
		Password: c.String("password"),
		FullName: c.String("name"),
		Role:     domain.RoleAdmin,
	}, c.String("service-key"))
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("sign-up rejected (%s): %s", apiErr.Code, apiErr.Message)
		}
		return err
	}

	e.log.Info("admin created",
		zap.String("profile_id", res.Profile.ID.String()),
		zap.Bool("verification_pending", res.Tokens == nil),
	)
	return nil
}

func (r *runner) signOut(c *cli.Context) error {
	e, err := r.setup(c)
	if err != nil {
		return err
	}
	defer e.holder.Close()

	ctx := context.WithoutCancel(c.Context)
	if err := e.holder.Init(ctx); err != nil {
		e.log.Warn("stored session not restored", zap.Error(err))
	}
	if err := e.holder.Reset(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	e.log.Info("signed out")
	return nil
}
