package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexajuno/pokerithm/internal/cli"
	"github.com/alexajuno/pokerithm/internal/config"
	"github.com/alexajuno/pokerithm/internal/util"
	"github.com/alexajuno/pokerithm/pkg/engine"
)

var (
	configName      string // --config flag: load config/{name}.yml when the tournament starts
	numBots         int    // --bots flag
	difficultyStr   string // --difficulty flag
	devMode         bool   // --dev flag
	seed            int64  // --seed flag: 0 means derive from wall-clock time
)

func runTournament(cmd *cobra.Command, args []string) {
	util.InitLogger(devMode)

	cfg := &config.TableConfig{NumBots: numBots, Difficulty: difficultyStr}
	if configName != "" {
		loaded, err := config.LoadTableConfigFromName(configName)
		if err != nil {
			logrus.Fatalf("Failed to load table config: %v", err)
		}
		cfg = loaded
	}
	if cfg.NumBots == 0 {
		cfg.NumBots = numBots
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = difficultyStr
	}

	fmt.Println("======== Texas Hold'em Tournament ========")

	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	engineCfg := cfg.ToEngineConfig()

	players := make([]*engine.Player, 0, cfg.NumBots+1)
	players = append(players, engine.NewPlayer("YOU", 0, engineCfg.StartingStack, false))

	profiles, err := engine.ProfilesForDifficulty(cfg.ParsedDifficulty(), cfg.NumBots)
	if err != nil {
		logrus.Fatalf("Failed to select bot profiles: %v", err)
	}
	botDeciders := make(map[int]*engine.BotDecider, cfg.NumBots)
	for i := 0; i < cfg.NumBots; i++ {
		seat := i + 1
		players = append(players, engine.NewPlayer(fmt.Sprintf("CPU %d", seat), seat, engineCfg.StartingStack, true))
		decider, err := engine.NewBotDecider(profiles[i], rng)
		if err != nil {
			logrus.Fatalf("Failed to build bot decider: %v", err)
		}
		botDeciders[seat] = decider
	}

	human := cli.NewTerminalDecider()
	decide := func(p *engine.Player) engine.Decider {
		if !p.IsCPU {
			return human
		}
		return botDeciders[p.Seat]
	}

	obs := cli.TerminalObserver{}
	t := engine.NewTournament(engineCfg, players, decide, rng, obs)

	if _, err := t.Run(context.Background()); err != nil {
		logrus.Fatalf("Tournament ended in error: %v", err)
	}
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pokerithm",
	Short: "Plays a Texas Hold'em tournament against bots",
	Long:  `Starts a No-Limit Texas Hold'em tournament with one human player and a configurable number of CPU opponents.`,
	Run:   runTournament,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configName, "config", "c", "", "Table config to load from config/{name}.yml (overrides --bots/--difficulty).")
	rootCmd.Flags().IntVarP(&numBots, "bots", "b", 5, "Number of CPU opponents seated with you.")
	rootCmd.Flags().StringVarP(&difficultyStr, "difficulty", "d", "medium", "Set bot difficulty (easy, medium, hard).")
	rootCmd.Flags().BoolVar(&devMode, "dev", false, "Enable development mode for verbose logging.")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the tournament. 0 derives a seed from the current time.")
}
