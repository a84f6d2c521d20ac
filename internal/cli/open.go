package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/reveal"
	"github.com/serroba/love-letter-go/internal/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// ErrNoLetter is returned when a link opens on the composer.
	ErrNoLetter = errors.New("link carries no letter")

	// ErrNoAnswer is returned when input ends before the question is accepted.
	ErrNoAnswer = errors.New("no answer given")
)

const (
	answerYes = "oui"
	answerNo  = "non"
)

func newOpenCmd(env EnvFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url-or-fragment>",
		Short: "Open a share link and answer its question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			r := router.New(router.NewResolver(e.Finder, e.Logger), e.Logger)
			r.OnChange(func(v router.View) {
				if v.Mode == router.ModeLoading {
					fmt.Fprintln(out, reveal.LoadingText)
				}
			})

			select {
			case <-r.Navigate(ctx, fragmentOf(args[0])):
			case <-ctx.Done():
				return ctx.Err()
			}

			createOwn := fmt.Sprintf("%s : %s compose", reveal.CreateOwnLabel, cmd.Root().Name())

			view := r.View()
			if view.Mode != router.ModeReveal {
				if view.Advisory != "" {
					fmt.Fprintln(out, view.Advisory)
				}

				fmt.Fprintln(out, createOwn)

				return ErrNoLetter
			}

			if err := play(ctx, cmd.InOrStdin(), out, *view.Letter, e); err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, createOwn)

			return nil
		},
	}
}

// fragmentOf returns the fragment of a share URL, or raw itself when it has none.
func fragmentOf(raw string) string {
	if _, fragment, ok := strings.Cut(raw, "#"); ok {
		return fragment
	}

	return raw
}

// play asks the question until it is accepted, then types out the letter.
func play(ctx context.Context, in io.Reader, out io.Writer, l letter.Letter, e *Env) error {
	interaction := reveal.NewInteraction(e.Rand)
	answers := bufio.NewScanner(in)

	fmt.Fprintln(out, reveal.Question(l.Recipient))

	for !interaction.Accepted() {
		prompt(out, interaction)

		if !answers.Scan() {
			if err := answers.Err(); err != nil {
				return err
			}

			return ErrNoAnswer
		}

		switch strings.ToLower(strings.TrimSpace(answers.Text())) {
		case answerYes:
			interaction.Accept()
		case answerNo:
			if !interaction.ShowNo() {
				continue
			}

			n := interaction.Decline()
			off := interaction.Offset()

			e.Logger.Debug("declined",
				zap.Int("declines", n),
				zap.Float64("x", off.X),
				zap.Float64("y", off.Y),
			)
			fmt.Fprintln(out, interaction.Plea())
			fmt.Fprintln(out, reveal.DeclineCounter(n))
		}
	}

	fmt.Fprintln(out, reveal.Celebration)

	if err := sleep(ctx, e.EnvelopeDelay); err != nil {
		return err
	}

	fmt.Fprintln(out, reveal.EnvelopeTeaser)
	fmt.Fprintln(out)
	fmt.Fprintln(out, reveal.Salutation(l))

	typed := 0
	tw := reveal.NewTypewriter(l.Message)

	err := tw.Play(ctx, e.TypingInterval, func(text string) {
		fmt.Fprint(out, text[typed:])
		typed = len(text)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, reveal.Closing(l))

	return nil
}

// prompt offers the answers, the accept label growing and the decline label
// shrinking with every refusal.
func prompt(out io.Writer, interaction *reveal.Interaction) {
	accept := reveal.Sized(reveal.AcceptLabel, interaction.YesScale())

	if interaction.ShowNo() {
		fmt.Fprintf(out, "%s / %s > ", accept, reveal.Sized(reveal.DeclineLabel, interaction.NoScale()))

		return
	}

	fmt.Fprintf(out, "%s > ", accept)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
