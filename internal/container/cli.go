package container

import (
	"github.com/samber/do"
	"github.com/serroba/love-letter-go/internal/cli"
	"github.com/serroba/love-letter-go/internal/client"
	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/reveal"
	"go.uber.org/zap"
)

// CLIPackage provides the terminal client's Env: a remote service when
// --server-url is set, the local store otherwise.
func CLIPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*cli.Env, error) {
		opts := do.MustInvoke[*Options](i)
		env := &cli.Env{
			Logger:         do.MustInvoke[*zap.Logger](i),
			TypingInterval: reveal.TypingInterval,
			EnvelopeDelay:  reveal.EnvelopeDelay,
		}

		if opts.ServerURL != "" {
			c, err := client.New(opts.ServerURL, nil)
			if err != nil {
				return nil, err
			}

			env.Composer = c
			env.Finder = c

			return env, nil
		}

		env.Composer = do.MustInvoke[*composer.Composer](i)
		env.Finder = do.MustInvoke[letter.Repository](i)

		return env, nil
	})
}
