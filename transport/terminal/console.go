package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	commandReset     = "r"
	commandNextRound = "n"
	commandQuit      = "q"
)

const (
	colorO   = "12"
	colorX   = "9"
	colorWin = "10"
)

// Console is a hot-seat game on one terminal: both players type into the same input.
type Console struct {
	logger *slog.Logger
	game   *tictactoe.Game
	in     *bufio.Scanner
	out    *termenv.Output

	outcome entity.Outcome
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, opts ...termenv.OutputOption) *Console {
	game := tictactoe.NewGame()

	return &Console{
		logger:  logger.With("component", "terminal"),
		game:    game,
		in:      bufio.NewScanner(in),
		out:     termenv.NewOutput(out, opts...),
		outcome: game.Outcome(),
	}
}

// Run - reads commands until quit, end of input or ctx cancellation.
func (that *Console) Run(ctx context.Context) error {
	that.render()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		that.prompt()

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		}

		input := strings.ToLower(strings.TrimSpace(that.in.Text()))
		if input == "" {
			continue
		}

		if input == commandQuit {
			that.println("Bye!")
			return nil
		}

		if err := that.handle(input); err != nil {
			that.logger.Debug("input rejected", "input", input, "error", err)
			that.println(that.out.String(err.Error()).Faint().String())

			continue
		}

		that.render()
	}
}

func (that *Console) handle(input string) error {
	switch input {
	case commandReset:
		that.game.ResetGame()
		that.outcome = that.game.Outcome()

		return nil
	case commandNextRound:
		that.game.NextRound()
		that.outcome = that.game.Outcome()

		return nil
	}

	number, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("unknown command %q", input)
	}

	outcome, err := tictactoe.TakeTurn(that.game, number-1)
	if errors.Is(err, tictactoe.ErrRoundFinished) {
		return errors.New("round is over: n for the next round, r to reset")
	}

	if err != nil {
		return err
	}

	that.outcome = outcome

	return nil
}

func (that *Console) prompt() {
	if that.outcome.IsFinished() {
		_, _ = fmt.Fprint(that.out, "n, r or q > ")
		return
	}

	player := that.game.ActivePlayer()
	_, _ = fmt.Fprintf(that.out, "%s (%s), cell 1-9 > ", player.Name, that.mark(player.Mark))
}

func (that *Console) println(line string) {
	_, _ = fmt.Fprintln(that.out, line)
}
