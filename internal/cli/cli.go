// Package cli is the terminal client: it composes links and opens them with
// the same router the HTTP API uses.
package cli

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Composer builds share links, locally or through a remote service.
type Composer interface {
	Compose(ctx context.Context, l letter.Letter, strategy composer.Strategy) (*composer.Link, error)
}

// Env is what the commands run against.
type Env struct {
	Composer Composer
	Finder   letter.Finder
	Logger   *zap.Logger

	TypingInterval time.Duration
	EnvelopeDelay  time.Duration
	Rand           *rand.Rand
}

// EnvFunc builds the Env for a command once its flags are parsed.
type EnvFunc func(cmd *cobra.Command) (*Env, error)

// Commands returns the letter subcommands.
func Commands(env EnvFunc) []*cobra.Command {
	return []*cobra.Command{
		newEncodeCmd(),
		newDecodeCmd(),
		newComposeCmd(env),
		newOpenCmd(env),
	}
}

// Finally wraps the commands so cleanup runs after each of them returns,
// including when it fails.
func Finally(cmds []*cobra.Command, cleanup func()) []*cobra.Command {
	for _, cmd := range cmds {
		run := cmd.RunE
		if run == nil {
			continue
		}

		cmd.RunE = func(c *cobra.Command, args []string) error {
			defer cleanup()

			return run(c, args)
		}
	}

	return cmds
}

type letterFlags struct {
	sender    string
	recipient string
	message   string
}

func (f *letterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sender, "sender", "", "who signs the letter")
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "who receives the letter")
	cmd.Flags().StringVarP(&f.message, "message", "m", "", "the letter body")
}

func (f *letterFlags) letter() letter.Letter {
	return letter.Letter{Sender: f.sender, Recipient: f.recipient, Message: f.message}
}
