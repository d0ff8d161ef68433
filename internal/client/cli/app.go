// Package cli implements the cybervault-cli commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/cybervault/internal/client/cache"
	"github.com/dmitrijs2005/cybervault/internal/client/client"
	"github.com/dmitrijs2005/cybervault/internal/common"
	pb "github.com/dmitrijs2005/cybervault/internal/vaultpb"
)

type Client interface {
	Status(ctx context.Context) (*pb.StatusResponse, error)
	Register(ctx context.Context, email, question, answer string) error
	RequestRecovery(ctx context.Context, email string) error
	SendTestEmail(ctx context.Context, email string) error
	GetVault(ctx context.Context) (string, error)
	SetVault(ctx context.Context, blob string) error
}

const usage = `usage: cybervault-cli [-a addr] [-t seconds] [-d cache] [-c config.json] <command>

commands:
  status              show server status
  register <email>    register a security question and answer
  recover <email>     mail the security question and answer to <email>
  testmail <email>    send a test email
  pull [file]         download the vault blob (stdout if no file)
  push <file|->       upload the vault blob`

var ErrUsage = errors.New(usage)

type App struct {
	client Client
	cache  cache.Repository
	in     *bufio.Reader
	out    io.Writer
}

// NewApp builds the CLI. cache may be nil.
func NewApp(c Client, r cache.Repository, in io.Reader, out io.Writer) *App {
	return &App{client: c, cache: r, in: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "status":
		return a.status(ctx)
	case "register":
		return a.withEmail(ctx, rest, a.register)
	case "recover":
		return a.withEmail(ctx, rest, a.recover)
	case "testmail":
		return a.withEmail(ctx, rest, a.testMail)
	case "pull":
		return a.pull(ctx, rest)
	case "push":
		if len(rest) != 1 {
			return ErrUsage
		}
		return a.push(ctx, rest[0])
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, ErrUsage)
	}
}

func (a *App) withEmail(ctx context.Context, args []string, fn func(context.Context, string) error) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return fn(ctx, args[0])
}

func (a *App) status(ctx context.Context) error {
	st, err := a.client.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s: %s\nencryption: %s\naddress: %s\n", st.Server, st.Version, st.Status, st.Encryption, st.Address)
	return nil
}

func (a *App) register(ctx context.Context, email string) error {
	question, err := getSimpleText(a.in, "Security question (empty to skip)", a.out)
	if err != nil {
		return err
	}
	answer, err := getSecret(a.in, "Security answer", a.out)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, email, question, answer); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registered. A confirmation email is on its way.")
	return nil
}

func (a *App) recover(ctx context.Context, email string) error {
	err := a.client.RequestRecovery(ctx, email)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Recovery email sent to", email)
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("%s is not registered: %w", email, err)
	default:
		return err
	}
}

func (a *App) testMail(ctx context.Context, email string) error {
	if err := a.client.SendTestEmail(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Test email sent to", email)
	return nil
}

func (a *App) pull(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}

	blob, err := a.client.GetVault(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) || a.cache == nil {
			return err
		}
		cached, cerr := a.cache.Get(ctx, cache.KeyVaultBlob)
		if cerr != nil || cached == nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "server unavailable, using cached vault blob")
		blob = string(cached)
	} else {
		a.remember(ctx, blob)
	}

	if len(args) == 0 {
		_, err = io.WriteString(a.out, blob)
		return err
	}
	return os.WriteFile(args[0], []byte(blob), 0o600)
}

func (a *App) push(ctx context.Context, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	if err := a.client.SetVault(ctx, string(data)); err != nil {
		return err
	}
	a.remember(ctx, string(data))
	fmt.Fprintf(a.out, "Vault uploaded (%d bytes)\n", len(data))
	return nil
}

// remember stores blob in the local cache. Cache errors are not fatal.
func (a *App) remember(ctx context.Context, blob string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, cache.KeyVaultBlob, []byte(blob)); err != nil {
		fmt.Fprintln(os.Stderr, "cache:", err)
		return
	}
	_ = a.cache.Set(ctx, cache.KeyVaultSynced, []byte(time.Now().UTC().Format(time.RFC3339)))
}
