package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mememaster/lobby/internal/factory"
	"github.com/mememaster/lobby/internal/lobby"
	"github.com/mememaster/lobby/internal/model"
)

var demoNames = []string{"Dana", "Morgan", "Jamie", "Alex", "Sam", "Riley", "Quinn", "Casey"}

func newDemoCmd(cfg *Config) *cobra.Command {
	var (
		guests      int
		personality string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Drive a host and guests through a full lobby, in process",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), cfg, guests, model.Personality(personality))
		},
	}

	cmd.Flags().IntVar(&guests, "guests", 3, "number of guests to join")
	cmd.Flags().StringVar(&personality, "personality", string(model.PersonalityRoaster),
		"judge personality: ROASTER, GRANDMA or GEN_Z")

	return cmd
}

func runDemo(ctx context.Context, cfg *Config, guests int, personality model.Personality) error {
	app, err := factory.New(factory.Config{Logger: newLogger(cfg, cmdDiscard{})})
	if err != nil {
		return err
	}
	defer app.Bus.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	minPlayers := cfg.minPlayers
	if minPlayers <= 0 || minPlayers > guests {
		minPlayers = guests
	}

	started := make(chan struct{})
	host := app.NewSession(ctx, lobby.SessionConfig{
		MinPlayers: minPlayers,
		OnStart: func(roster []model.Player, p model.Personality, isHost bool) {
			fmt.Printf("game started: judge=%s players=%d\n", p, len(roster))
			for _, player := range roster {
				fmt.Printf("  %s (%s, avatar %s)\n", player.Name, player.ID, player.Avatar)
			}
			close(started)
		},
	})
	defer host.Close()

	code, err := host.CreateGame(personality)
	if err != nil {
		return err
	}
	fmt.Printf("room open: %s (judge %s)\n", code, personality)

	for i := 0; i < guests; i++ {
		name := demoNames[i%len(demoNames)]
		guest := app.NewSession(ctx, lobby.SessionConfig{})
		defer guest.Close()

		if err := guest.ChooseJoin(); err != nil {
			return err
		}
		// Guests type codes however they like
		if err := guest.SubmitJoin(strings.ToLower(string(code)), name); err != nil {
			return err
		}

		select {
		case acc := <-guest.Accepted():
			room, err := host.Room()
			if err != nil {
				return err
			}
			admitted := room.Roster[len(room.Roster)-1]
			fmt.Printf("joined: %s as player %s (%d in room)\n",
				admitted.Name, acc.PlayerID, len(room.Roster))
		case <-ctx.Done():
			return fmt.Errorf("guest %s was never admitted", name)
		}
	}

	if err := host.Start(); err != nil {
		return err
	}

	select {
	case <-started:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// cmdDiscard silences structured logs so demo output stays readable
type cmdDiscard struct{}

func (cmdDiscard) Write(p []byte) (int, error) { return len(p), nil }
