package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// app carries what every command needs once the persistent pre-run has loaded it
type app struct {
	configFile string
	config     *Config
	env        EnvConfig
	session    *Session
	shutdown   func(context.Context) error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "simplepath",
		Short: "Simple Path Calculator",
		Long: `Simple Path Calculator

Enter the cost of something you're thinking about buying and see how much that
money could grow if it were invested in a total stock market index fund instead.
Two scenarios are projected over 10 years: the base annual return minus and plus
one percentage point. Augie the dog then suggests what the money could buy him.

With no command the embedded window opens; when that is unavailable the
interactive console calculator runs instead.`,
		Example: `  simplepath                       Embedded window (falls back to console)
  simplepath web --addr :8080      Web server mode (opens external browser)
  simplepath calc '$1,250' --pdf   One calculation with a PDF report
  simplepath interactive           Console calculator
  simplepath quote 500             A quote for an amount`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Start(cmd.Context())
			if err := runGUI(a.session); err != nil {
				fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
				fmt.Println("Falling back to console mode...")
				NewInteractivePrompt(a.session, os.Stdin, os.Stdout).Run(cmd.Context())
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "config.yaml", "path to YAML configuration file")

	root.AddCommand(
		a.uiCmd(),
		a.webCmd(),
		a.calcCmd(),
		a.interactiveCmd(),
		a.quoteCmd(),
		a.catalogCmd(),
		a.indicesCmd(),
	)
	return root
}

// setup loads configuration and environment, registers tracing and builds the session
func (a *app) setup(cmd *cobra.Command, args []string) error {
	config, err := LoadConfigOrDefault(a.configFile)
	if err != nil {
		return err
	}
	env, err := LoadEnvConfig()
	if err != nil {
		return err
	}
	env.ApplyTo(config)

	shutdown, err := SetupTracing(cmd.Context(), env)
	if err != nil {
		// Tracing is optional; carry on without it
		log.Printf("Tracing disabled: %v", err)
	}

	a.config = config
	a.env = env
	a.shutdown = shutdown
	a.session = NewSessionFromConfig(config, env, SystemClock{})
	return nil
}

func (a *app) close() error {
	if a.shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.shutdown(ctx)
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the calculator in an embedded browser window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Start(cmd.Context())
			if err := runEmbeddedUI(a.session); err != nil {
				return fmt.Errorf("embedded UI: %w", err)
			}
			return nil
		},
	}
}

func (a *app) webCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the calculator and open it in the default browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.session.Start(ctx)
			return NewWebServer(a.session, addr).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, :0 picks a free port (default server.addr)")
	return cmd
}

func (a *app) calcCmd() *cobra.Command {
	var (
		years int
		html  bool
		pdf   bool
	)
	cmd := &cobra.Command{
		Use:   "calc <amount>",
		Short: "Project one purchase amount and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if years > 0 {
				a.config.Calculator.HorizonYears = years
			}
			// A one-shot calculation waits for market data rather than using the fallback
			if err := a.session.Warm(cmd.Context()); err != nil {
				log.Printf("Warm-up: %v", err)
			}

			result, err := a.session.CalculateInput(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(RenderResult(result))

			paths, err := ExportReports(result, a.config.Reports.OutputDir, html, pdf)
			for _, p := range paths {
				fmt.Printf("Report saved to %s\n", p)
			}
			return err
		},
	}
	cmd.Flags().IntVar(&years, "years", 0, "projection horizon in years (default calculator.horizon_years)")
	cmd.Flags().BoolVar(&html, "html", false, "write an HTML report to reports.output_dir")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "write a PDF report to reports.output_dir")
	return cmd
}

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run the calculator in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Start(cmd.Context())
			NewInteractivePrompt(a.session, os.Stdin, os.Stdout).Run(cmd.Context())
			return nil
		},
	}
}

func (a *app) quoteCmd() *cobra.Command {
	var random bool
	cmd := &cobra.Command{
		Use:   "quote [amount]",
		Short: "Print a JL Collins quote (today's, or one picked for an amount)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			var quote string
			switch {
			case len(args) == 1:
				amount, err := ParseAmount(args[0], a.config.Calculator.MaxAmount)
				if err != nil {
					return err
				}
				quote = QuoteForAmount(amount, now)
			case random:
				quote = RandomQuote(rand.New(rand.NewSource(now.UnixNano())))
			default:
				quote = DailyQuote(now)
			}
			fmt.Println(RenderQuote(quote))
			return nil
		},
	}
	cmd.Flags().BoolVar(&random, "random", false, "pick any quote at random instead of today's")
	return cmd
}

func (a *app) catalogCmd() *cobra.Command {
	var (
		category string
		limit    int
		random   bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the pet products Augie chooses from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.session.Catalog()
			if random {
				item, ok := RandomCatalogItem(cmd.Context(), catalog, rand.New(rand.NewSource(time.Now().UnixNano())))
				if !ok {
					return fmt.Errorf("catalog %s returned no products", catalog.Name())
				}
				fmt.Println(RenderCatalog([]CatalogItem{item}))
				return nil
			}

			if category == "" {
				category = a.config.Catalog.Category
			}
			if limit <= 0 {
				limit = a.config.Catalog.Limit
			}
			items, err := catalog.ListItems(cmd.Context(), category, limit)
			if err != nil {
				return fmt.Errorf("list catalog %s: %w", catalog.Name(), err)
			}
			fmt.Println(RenderCatalog(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "product category, or all (default catalog.category)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum products to list (default catalog.limit)")
	cmd.Flags().BoolVar(&random, "random", false, "show one random product")
	return cmd
}

func (a *app) indicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "List the funds available to market_data.source: index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(RenderIndices(StockIndices))
			return nil
		},
	}
}

// openBrowser opens a URL or file in the platform's default browser
func openBrowser(filename string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", filename)
	case "darwin":
		cmd = exec.Command("open", filename)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", filename)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	err := cmd.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
