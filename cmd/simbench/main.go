// simbench: headless matchmaking batch runner.
//
// Drives the engine through a configured span of virtual time as fast as the
// host allows, then prints aggregate queue and match statistics. Useful for
// comparing draft algorithms and match parameters without the dashboard.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/matchsim/clock"
	"github.com/lixenwraith/matchsim/engine"
	"github.com/lixenwraith/matchsim/rng"
)

// stepMillis is the virtual advance per simulated frame
const stepMillis = 50

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "simbench",
		Short: "Run a headless matchmaking simulation and report statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg, _ := cmd.Flags().GetString("config"); cfg != "" {
				v.SetConfigFile(cfg)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
			}
			return runBench(v)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "optional config file (yaml/toml)")
	flags.Uint64("seed", 42, "PRNG seed")
	flags.String("algorithm", "FIFO", "draft algorithm: LIFO, FIFO, SkillBased, TraitGrouping")
	flags.Int("players", 1000, "player creation backlog")
	flags.Int("virtual-hours", 24, "virtual hours to simulate")
	flags.Int("num-teams", 0, "override team count (0 keeps default)")
	flags.Int("team-size", 0, "override team size (0 keeps default)")
	flags.Uint64("match-duration", 0, "override expected match duration ms (0 keeps default)")
	flags.Bool("verbose", false, "debug logging")

	v.BindPFlag("seed", flags.Lookup("seed"))
	v.BindPFlag("algorithm", flags.Lookup("algorithm"))
	v.BindPFlag("players", flags.Lookup("players"))
	v.BindPFlag("virtual_hours", flags.Lookup("virtual-hours"))
	v.BindPFlag("num_teams", flags.Lookup("num-teams"))
	v.BindPFlag("team_size", flags.Lookup("team-size"))
	v.BindPFlag("match_duration", flags.Lookup("match-duration"))
	v.BindPFlag("verbose", flags.Lookup("verbose"))

	return cmd
}

func runBench(v *viper.Viper) error {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if v.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	algorithm, ok := engine.ParseAlgorithm(v.GetString("algorithm"))
	if !ok {
		return fmt.Errorf("unknown algorithm %q", v.GetString("algorithm"))
	}

	// A mock provider lets the bench run virtual time as fast as it can
	// tick, independent of the wall clock
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	clk := clock.New(mock)
	sys := engine.New(algorithm, clk, rng.New(v.GetUint64("seed")), log)

	mset := sys.MatchSetting()
	if n := v.GetInt("num_teams"); n > 0 {
		mset.NumTeams = n
	}
	if n := v.GetInt("team_size"); n > 0 {
		mset.TeamSize = n
	}
	if d := v.GetUint64("match_duration"); d > 0 {
		mset.MatchDuration = d
	}
	sys.SetMatchSetting(mset)

	sys.AddToCreationQueue(v.GetInt("players"))

	target := uint64(v.GetInt("virtual_hours")) * clock.MillisPerHour
	log.WithFields(logrus.Fields{
		"algorithm": algorithm,
		"players":   v.GetInt("players"),
		"hours":     v.GetInt("virtual_hours"),
	}).Info("starting bench")

	start := time.Now()
	ticks := 0
	for clk.NowMillis() < target {
		mock.Advance(stepMillis * time.Millisecond)
		clk.Update()
		sys.Tick()
		ticks++
	}
	elapsed := time.Since(start)

	report(sys, clk, ticks, elapsed)
	return nil
}

func report(sys *engine.System, clk *clock.VirtualClock, ticks int, elapsed time.Duration) {
	players := sys.Players()
	now := clk.NowMillis()

	queueTimes := make([]float64, 0, len(players))
	gameTimes := make([]float64, 0, len(players))
	games := make([]float64, 0, len(players))
	for i := range players {
		queueTimes = append(queueTimes, players[i].AvgQueueTime(now))
		gameTimes = append(gameTimes, players[i].AvgGameTime(now))
		games = append(games, float64(players[i].GamesPlayed()))
	}

	completed := sys.Status().Ints.Get("engine.matches_completed").Load()

	fmt.Printf("simulated %s virtual (%d ticks) in %s real\n",
		virtualSpan(now), ticks, elapsed.Round(time.Millisecond))
	fmt.Printf("players:          %d\n", sys.PlayerCount())
	fmt.Printf("matches started:  %d\n", sys.MatchCount())
	fmt.Printf("matches finished: %d\n", completed)
	fmt.Printf("still queued:     %d  (pools %d)\n", sys.QueueLen(), len(sys.DraftedPools()))

	if len(players) > 0 {
		mq, sq := stat.MeanStdDev(queueTimes, nil)
		mg, _ := stat.MeanStdDev(gameTimes, nil)
		mp, _ := stat.MeanStdDev(games, nil)
		fmt.Printf("avg queue time:   %.0f ms (stddev %.0f)\n", mq, sq)
		fmt.Printf("avg game time:    %.0f ms\n", mg)
		fmt.Printf("games per player: %.2f\n", mp)
	}
}

func virtualSpan(ms uint64) string {
	hours := ms / clock.MillisPerHour
	minutes := (ms % clock.MillisPerHour) / clock.MillisPerMinute
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
