package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/meshmind/meshbot/cmd/meshbotd/bot"
	"github.com/meshmind/meshbot/cmd/meshbotd/diagnostics"
	"github.com/meshmind/meshbot/cmd/meshbotd/ethgateway"
	"github.com/meshmind/meshbot/cmd/meshbotd/health"
	"github.com/meshmind/meshbot/cmd/meshbotd/httpapi"
	"github.com/meshmind/meshbot/cmd/meshbotd/listener"
	"github.com/meshmind/meshbot/cmd/meshbotd/reconciler"
	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/common"
	"github.com/meshmind/meshbot/escrow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textileio/cli"
	"github.com/textileio/go-libp2p-pubsub-rpc/finalizer"
	golog "github.com/textileio/go-log/v2"
)

var (
	daemonName = "meshbotd"
	log        = golog.Logger(daemonName)
	v          = viper.New()
)

func init() {
	rootCmd.AddCommand(testCmd, monitorCmd, healthCmd, simulateCmd, completeCmd)

	flags := []cli.Flag{
		{Name: "rpc-url", DefValue: "https://sei-testnet.g.alchemy.com/v2/demo", Description: "Blockchain RPC endpoint"},
		{Name: "private-key", DefValue: "", Description: "Hex-encoded private key of the bot account"},
		{Name: "meshmind-contract-address", DefValue: "", Description: "MeshMind escrow contract address"},
		{
			Name:        "check-interval",
			DefValue:    "*/5 * * * *",
			Description: "How often to check for expired orders, as a cron expression or a duration",
		},
		{
			Name:        "max-gas-price",
			DefValue:    "",
			Description: "Gas price ceiling in wei or with a gwei suffix, e.g. 50gwei; empty means no ceiling",
		},
		{Name: "stats-interval", DefValue: "1m", Description: "How often to log stats"},
		{Name: "request-timeout", DefValue: "30s", Description: "Timeout of each RPC request"},
		{Name: "receipt-timeout", DefValue: "2m", Description: "How long to wait for a transaction receipt"},
		{Name: "event-poll-interval", DefValue: "15s", Description: "Event polling interval if subscriptions aren't supported"},
		{Name: "monitor-interval", DefValue: "30s", Description: "Polling interval of the monitor command"},
		{Name: "http-addr", DefValue: ":8888", Description: "Status API listen address; empty disables it"},
		{Name: "metrics-addr", DefValue: ":9090", Description: "Prometheus listen address"},
		{Name: "log-debug", DefValue: false, Description: "Enable debug level logging"},
		{Name: "log-json", DefValue: false, Description: "Enable structured logging"},
	}

	cobra.OnInitialize(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("loading .env file: %s", err)
		}
	})

	cli.ConfigureCLI(v, "", flags, rootCmd.PersistentFlags())
}

var rootCmd = &cobra.Command{
	Use:   daemonName,
	Short: "meshbotd auto-completes expired MeshMind escrow orders",
	Long: `meshbotd auto-completes expired MeshMind escrow orders.

meshbotd periodically asks the MeshMind contract for expired orders and
submits an autoCompleteOrder transaction for each of them, collecting the
bot reward. Configuration is read from flags, the environment and a .env
file in the working directory.
`,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		cli.ExpandEnvVars(v, v.AllSettings())
		err := cli.ConfigureLogging(v, nil)
		cli.CheckErrf("setting log levels: %v", err)
	},
	Run: func(c *cobra.Command, args []string) {
		settings, err := cli.MarshalConfig(v, !v.GetBool("log-json"), "private-key")
		cli.CheckErrf("marshaling config: %v", err)
		log.Infof("loaded config: %s", string(settings))

		fin := finalizer.NewFinalizer()

		metricsSrv, err := common.SetupInstrumentation(v.GetString("metrics-addr"))
		cli.CheckErrf("booting instrumentation: %v", err)
		fin.Add(metricsSrv)

		b, st, _, _ := build()
		fin.Add(&botCloser{b})
		st.ExportMetrics()

		ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("request-timeout"))
		err = b.Initialize(ctx)
		cancel()
		if err != nil {
			_ = fin.Cleanup(nil)
			cli.CheckErrf("initializing bot: %v", err)
		}
		b.Start()

		if addr := v.GetString("http-addr"); addr != "" {
			apiSrv, err := httpapi.NewServer(addr, st)
			cli.CheckErrf("starting http api: %v", err)
			fin.Add(apiSrv)
		}

		log.Info("bot is running, press Ctrl+C to stop")
		cli.HandleInterrupt(func() {
			forceExitOnSignal()
			if err := fin.Cleanup(nil); err != nil {
				log.Errorf("closing: %s", err)
			}
			st.LogStats()
		})
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run connectivity and contract checks",
	Long:  "Run connectivity and contract checks, printing a PASS or FAIL line for each of them.",
	Run: func(c *cobra.Command, args []string) {
		b, _, gw, _ := build()
		results := diagnostics.New(gw, b, os.Stdout, v.GetDuration("request-timeout")).RunTests(context.Background())
		shutdown(b)
		for _, r := range results {
			if !r.Passed {
				os.Exit(1)
			}
		}
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print the expired orders periodically",
	Long:  "Print the expired orders and their expiration time every monitor-interval until interrupted.",
	Run: func(c *cobra.Command, args []string) {
		b, _, gw, _ := build()
		defer shutdown(b)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		h := diagnostics.New(gw, b, os.Stdout, v.GetDuration("request-timeout"))
		err := h.Monitor(ctx, v.GetDuration("monitor-interval"))
		cli.CheckErrf("monitoring: %v", err)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the contract health",
	Long:  "Check the contract answers reads and count the auto-completions in the recent blocks.",
	Run: func(c *cobra.Command, args []string) {
		b, _, gw, _ := build()
		defer shutdown(b)

		r, err := health.CheckContractHealth(context.Background(), gw, v.GetDuration("request-timeout"))
		if err != nil {
			shutdown(b)
			cli.CheckErrf("checking contract health: %v", err)
		}
		out, err := json.MarshalIndent(r, "", "  ")
		cli.CheckErrf("marshaling report: %v", err)
		fmt.Println(string(out))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate order creation",
	Long:  "Simulate order creation. The contract has no test mode, so this only prints a notice.",
	Run: func(c *cobra.Command, args []string) {
		diagnostics.New(nil, nil, os.Stdout, 0).Simulate()
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <order-id>",
	Short: "Auto-complete a single order",
	Long: `Auto-complete a single order right away, going through the same gas price
check and receipt wait as the scheduled passes. Exits non-zero if the attempt fails.`,
	Args: cobra.ExactArgs(1),
	Run: func(c *cobra.Command, args []string) {
		id, err := parseOrderID(args[0])
		cli.CheckErrf("parsing order id: %v", err)

		b, _, _, rec := build()
		outcome := completeOrder(context.Background(), rec, id, os.Stdout)
		shutdown(b)
		if outcome == reconciler.OutcomeFailed {
			os.Exit(1)
		}
	},
}

// orderSettler makes a single settlement attempt.
type orderSettler interface {
	SettleOrder(ctx context.Context, id escrow.OrderID) reconciler.Outcome
}

func parseOrderID(s string) (escrow.OrderID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q isn't a valid order id: %s", s, err)
	}
	return escrow.OrderID(id), nil
}

func completeOrder(ctx context.Context, s orderSettler, id escrow.OrderID, out io.Writer) reconciler.Outcome {
	_, _ = fmt.Fprintf(out, "manually completing order %d\n", id)
	outcome := s.SettleOrder(ctx, id)
	_, _ = fmt.Fprintf(out, "order %d: %s\n", id, outcome)
	return outcome
}

// build validates the required settings and wires the bot. Any failure is fatal.
func build() (*bot.Bot, *stats.Stats, *ethgateway.Gateway, *reconciler.Reconciler) {
	privateKey := v.GetString("private-key")
	if privateKey == "" {
		cli.CheckErr(errors.New("private-key is required"))
	}
	contractAddr := v.GetString("meshmind-contract-address")
	if !ethcommon.IsHexAddress(contractAddr) {
		cli.CheckErr(fmt.Errorf("meshmind-contract-address %q is missing or invalid", contractAddr))
	}
	checkInterval, err := bot.ParseSchedule(v.GetString("check-interval"))
	cli.CheckErrf("parsing check-interval: %v", err)
	maxGasPrice, err := reconciler.ParseGasPrice(v.GetString("max-gas-price"))
	cli.CheckErrf("parsing max-gas-price: %v", err)
	requestTimeout := v.GetDuration("request-timeout")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	gw, err := ethgateway.Dial(ctx, v.GetString("rpc-url"), ethcommon.HexToAddress(contractAddr), privateKey)
	cancel()
	cli.CheckErrf("connecting to the blockchain: %v", err)

	st := stats.New()
	rec, err := reconciler.New(
		gw,
		st,
		reconciler.WithMaxGasPrice(maxGasPrice),
		reconciler.WithRequestTimeout(requestTimeout),
		reconciler.WithReceiptTimeout(v.GetDuration("receipt-timeout")),
	)
	cli.CheckErrf("creating reconciler: %v", err)

	lis, err := listener.New(gw, st, listener.WithPollInterval(v.GetDuration("event-poll-interval")))
	cli.CheckErrf("creating event listener: %v", err)

	b, err := bot.New(
		gw,
		rec,
		lis,
		st,
		bot.WithCheckInterval(checkInterval),
		bot.WithStatsInterval(v.GetDuration("stats-interval")),
		bot.WithRequestTimeout(requestTimeout),
	)
	cli.CheckErrf("creating bot: %v", err)

	return b, st, gw, rec
}

func shutdown(b *bot.Bot) {
	if err := b.Shutdown(); err != nil {
		log.Errorf("shutting down: %s", err)
	}
}

type botCloser struct {
	b *bot.Bot
}

func (bc *botCloser) Close() error {
	return bc.b.Shutdown()
}

// forceExitOnSignal exits right away on the next interrupt, so a stuck cleanup
// can be skipped.
func forceExitOnSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-quit
		os.Exit(1)
	}()
}

func main() {
	cli.CheckErr(rootCmd.Execute())
}
