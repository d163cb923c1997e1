// Command play is the terminal front end for GuessMaster.
//
// It drives the same session registry and score store as the HTTP server,
// in-process: pick a difficulty and guess against the computer, or play
// pass-the-device multiplayer where each player sets a secret for the
// other. Round resolution and explicit score submission for multiplayer
// happen here, not in the core.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"guessmaster/internal/game"
	"guessmaster/internal/registry"
	"guessmaster/internal/scores"
)

func main() {
	// Keep registry/store logging out of the prompt flow.
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	cmd := &cli.Command{
		Name:  "play",
		Usage: "GuessMaster number guessing game",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data-dir", Value: "data", Usage: "directory holding the score tables"},
		},
		Commands: []*cli.Command{
			{
				Name:   "single",
				Usage:  "play a singleplayer game",
				Action: runSingle,
			},
			{
				Name:   "multi",
				Usage:  "play pass-the-device multiplayer",
				Action: runMulti,
			},
			{
				Name:  "scores",
				Usage: "show the high score table",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Value: "single", Usage: "single or multi"},
				},
				Action: runScores,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newCore wires a file-backed score store and a registry around it.
func newCore(dataDir string) (*registry.Registry, *scores.FileStore, error) {
	store, err := scores.NewFileStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return registry.New(store, registry.Config{}), store, nil
}

// ----------------------------- singleplayer ---------------------------------

func runSingle(ctx context.Context, cmd *cli.Command) error {
	reg, _, err := newCore(cmd.String("data-dir"))
	if err != nil {
		return err
	}
	defer reg.Close()

	p := newPrompter()
	difficulty, custom, err := chooseDifficulty(p)
	if err != nil {
		return err
	}

	created, err := reg.CreateSingle(difficulty, custom)
	if err != nil {
		return err
	}

	fmt.Printf("\n🤔 I have chosen a number between %d and %d. You have %d attempts!\n",
		created.Range.Min, created.Range.Max, created.MaxAttempts)

	for {
		guess, err := p.readInt("Enter your guess: ", created.Range.Min, created.Range.Max)
		if err != nil {
			return err
		}
		res, err := reg.Guess(created.ID, guess)
		if err != nil {
			return err
		}
		switch res.Outcome {
		case game.OutcomeWin:
			fmt.Printf("🎉 Congratulations! You guessed the number in %d attempts!\n", res.Attempts)
			return nil
		case game.OutcomeLose:
			fmt.Printf("❌ Out of attempts! The number was %d. Better luck next time!\n", res.Target)
			return nil
		default:
			direction := "Too low! Guess higher."
			if res.Hint == game.HintLower {
				direction = "Too high! Guess lower."
			}
			fmt.Printf("%s %d attempts remaining.\n", direction, res.Remaining)
		}
	}
}

// chooseDifficulty walks the difficulty menu; custom prompts for bounds.
func chooseDifficulty(p *prompter) (game.Difficulty, *game.Range, error) {
	fmt.Println("\n🎯 Choose a Difficulty Level 🎯")
	fmt.Println("1. Easy (1 to 50)")
	fmt.Println("2. Medium (1 to 100)")
	fmt.Println("3. Hard (1 to 500)")
	fmt.Println("4. Custom Range")

	choice, err := p.readInt("Enter 1-4: ", 1, 4)
	if err != nil {
		return "", nil, err
	}
	switch choice {
	case 1:
		return game.DifficultyEasy, nil, nil
	case 2:
		return game.DifficultyMedium, nil, nil
	case 3:
		return game.DifficultyHard, nil, nil
	}

	min, err := p.readInt("Enter the starting number: ", 1, game.CustomRangeCap)
	if err != nil {
		return "", nil, err
	}
	max, err := p.readInt(fmt.Sprintf("Enter a number greater than %d: ", min), min+1, game.CustomRangeCap)
	if err != nil {
		return "", nil, err
	}
	return game.DifficultyCustom, &game.Range{Min: min, Max: max}, nil
}

// ----------------------------- multiplayer ----------------------------------

func runMulti(ctx context.Context, cmd *cli.Command) error {
	reg, store, err := newCore(cmd.String("data-dir"))
	if err != nil {
		return err
	}
	defer reg.Close()

	p := newPrompter()
	fmt.Println("\n🎮 Multiplayer Mode: Player vs. Player 🎮")

	player1, err := p.readName("Enter Player 1's name: ")
	if err != nil {
		return err
	}
	var player2 string
	for {
		player2, err = p.readName("Enter Player 2's name: ")
		if err != nil {
			return err
		}
		if player2 != player1 {
			break
		}
		fmt.Println("❌ Player 2 must have a different name! Try again.")
	}

	// Round 1: player 1 picks, player 2 guesses; then swap.
	attemptsP2, err := playRound(reg, store, p, player1, player2)
	if err != nil {
		return err
	}
	attemptsP1, err := playRound(reg, store, p, player2, player1)
	if err != nil {
		return err
	}

	fmt.Println("\n🏆 Game Over! Final Results:")
	fmt.Printf("%s took %d attempts.\n", player1, attemptsP1)
	fmt.Printf("%s took %d attempts.\n", player2, attemptsP2)
	switch {
	case attemptsP1 < attemptsP2:
		fmt.Printf("🎉 %s wins!\n", player1)
	case attemptsP1 > attemptsP2:
		fmt.Printf("🎉 %s wins!\n", player2)
	default:
		fmt.Println("🤝 It's a tie!")
	}
	return nil
}

// playRound runs one multiplayer round: chooser sets the secret, guesser
// plays it out. Returns the attempts the guesser consumed (the full budget
// on a loss). A won round is submitted to the multiplayer score table
// under the guesser's name.
func playRound(reg *registry.Registry, store *scores.FileStore, p *prompter, chooser, guesser string) (int, error) {
	created, err := reg.CreateMulti(chooser, guesser)
	if err != nil {
		return 0, err
	}

	fmt.Printf("\n🔵 %s, pick a secret number for %s to guess!\n", chooser, guesser)
	secret, err := p.readInt(fmt.Sprintf("Enter a secret number (%d-%d): ", created.Range.Min, created.Range.Max),
		created.Range.Min, created.Range.Max)
	if err != nil {
		return 0, err
	}
	if err := reg.SetTarget(created.ID, secret); err != nil {
		return 0, err
	}
	clearScreen()

	for {
		guess, err := p.readInt(fmt.Sprintf("%s, enter your guess: ", guesser), created.Range.Min, created.Range.Max)
		if err != nil {
			return 0, err
		}
		res, err := reg.Guess(created.ID, guess)
		if err != nil {
			return 0, err
		}
		switch res.Outcome {
		case game.OutcomeWin:
			fmt.Printf("🎉 %s guessed it in %d attempts!\n", guesser, res.Attempts)
			if err := store.Put(game.ModeMulti, guesser, res.Attempts); err != nil {
				fmt.Printf("⚠️ Could not save the score: %v\n", err)
			}
			return res.Attempts, nil
		case game.OutcomeLose:
			fmt.Printf("\n❌ %s ran out of attempts! The correct number was %d.\n", guesser, res.Target)
			fmt.Printf("🏆 %s wins this round by default!\n", chooser)
			return created.MaxAttempts, nil
		default:
			direction := "⬆️ Too low!"
			if res.Hint == game.HintLower {
				direction = "⬇️ Too high!"
			}
			fmt.Printf("%s %d attempts remaining.\n", direction, res.Remaining)
		}
	}
}

// ------------------------------- scores -------------------------------------

func runScores(ctx context.Context, cmd *cli.Command) error {
	store, err := scores.NewFileStore(cmd.String("data-dir"))
	if err != nil {
		return err
	}

	mode := game.Mode(cmd.String("mode"))
	if mode != game.ModeSingle && mode != game.ModeMulti {
		return fmt.Errorf("invalid score mode %q", mode)
	}

	table := store.Load(mode)
	if len(table) == 0 {
		fmt.Println("🏆 No high scores yet. Be the first to set one!")
		return nil
	}

	type entry struct {
		key      string
		attempts int
	}
	entries := make([]entry, 0, len(table))
	for k, v := range table {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].attempts != entries[j].attempts {
			return entries[i].attempts < entries[j].attempts
		}
		return entries[i].key < entries[j].key
	})

	fmt.Println("\n🏆 High Scores 🏆")
	for _, e := range entries {
		fmt.Printf("%s: %d attempts\n", e.key, e.attempts)
	}
	return nil
}

// ------------------------------- prompting ----------------------------------

var errInterrupted = errors.New("input closed")

type prompter struct{ in *bufio.Scanner }

func newPrompter() *prompter { return &prompter{in: bufio.NewScanner(os.Stdin)} }

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	if !p.in.Scan() {
		fmt.Println()
		return "", errInterrupted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// readInt re-prompts until it gets an integer within [min, max].
func (p *prompter) readInt(prompt string, min, max int) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("⚠️ Invalid input! Please enter a valid integer.")
			continue
		}
		if n < min {
			fmt.Printf("❌ Please enter a number greater than or equal to %d.\n", min)
			continue
		}
		if n > max {
			fmt.Printf("❌ Please enter a number less than or equal to %d.\n", max)
			continue
		}
		return n, nil
	}
}

// readName re-prompts until it gets a non-empty name.
func (p *prompter) readName(prompt string) (string, error) {
	for {
		name, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		fmt.Println("❌ Player name cannot be empty! Try again.")
	}
}

// clearScreen keeps the secret off the guesser's screen.
func clearScreen() {
	fmt.Print("\033[2J\033[H")
}
