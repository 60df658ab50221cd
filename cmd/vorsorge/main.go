package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/config"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/internal/output"
	"github.com/vorsorge/vorsorge-rechner/internal/server"
	"github.com/vorsorge/vorsorge-rechner/internal/tui"
	money "github.com/vorsorge/vorsorge-rechner/pkg/decimal"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vorsorge %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "vorsorge",
	Short: "Retirement savings calculator CLI",
	Long: "Calculates the Altersvorsorgedepot subsidy, projects subsidised and private savings plans " +
		"(depot, Frühstart-Rente, ETF savings) and compares configured scenarios.",
	SilenceUsage: true,
}

// newEngine builds an engine honouring the persistent --debug flag.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

func writeJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

var subsidyCmd = &cobra.Command{
	Use:     "zulage",
	Aliases: []string{"subsidy"},
	Short:   "Calculate the yearly subsidy for an own contribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := money.NewMoneyFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amountStr, err)
		}
		if monthly, _ := cmd.Flags().GetBool("monthly"); monthly {
			amount = amount.Annual()
		}
		tierStr, _ := cmd.Flags().GetString("tier")
		tier, err := domain.ParseRateTier(tierStr)
		if err != nil {
			return err
		}
		children, _ := cmd.Flags().GetInt("children")
		bonus, _ := cmd.Flags().GetBool("bonus")

		res := newEngine(cmd).CalculateSubsidy(domain.ContributionInput{
			AnnualAmount:     amount.Decimal,
			ChildCount:       children,
			RateTier:         tier,
			EarlyCareerBonus: bonus,
		})
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, res)
		}
		printSubsidy(cmd.OutOrStdout(), res)
		return nil
	},
}

var depotCmd = &cobra.Command{
	Use:     "depot",
	Aliases: []string{"pension-plan"},
	Short:   "Project a subsidised pension depot",
	RunE: func(cmd *cobra.Command, args []string) error {
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := money.NewMoneyFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amountStr, err)
		}
		mode, _ := cmd.Flags().GetString("mode")
		inputMode := domain.InputMode(strings.ToLower(mode))
		if inputMode != domain.InputModeMonthly && inputMode != domain.InputModeYearly {
			return fmt.Errorf("unknown input mode %q (want %s or %s)", mode, domain.InputModeMonthly, domain.InputModeYearly)
		}
		tierStr, _ := cmd.Flags().GetString("tier")
		tier, err := domain.ParseRateTier(tierStr)
		if err != nil {
			return err
		}
		children, _ := cmd.Flags().GetInt("children")
		bonus, _ := cmd.Flags().GetBool("bonus")
		rate, _ := cmd.Flags().GetFloat64("return")
		years, _ := cmd.Flags().GetFloat64("years")

		res := newEngine(cmd).CalculatePensionPlan(domain.PensionPlanInput{
			Amount:           amount.Decimal,
			InputMode:        inputMode,
			ChildCount:       children,
			RateTier:         tier,
			EarlyCareerBonus: bonus,
			AnnualReturnPct:  rate,
			Years:            years,
		})
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, res)
		}
		printPensionPlan(cmd.OutOrStdout(), res)
		return nil
	},
}

var earlyStartCmd = &cobra.Command{
	Use:     "fruehstart",
	Aliases: []string{"early-start"},
	Short:   "Project a Frühstart-Rente children's savings plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := domain.EarlyStartInput{}
		in.BirthYear, _ = cmd.Flags().GetInt("birth-year")
		in.MonthlyState, _ = cmd.Flags().GetFloat64("state")
		in.MonthlyPrivate, _ = cmd.Flags().GetFloat64("private")
		in.ContinueAfter18, _ = cmd.Flags().GetBool("continue")
		in.PrivateAfter18, _ = cmd.Flags().GetFloat64("private-after")
		in.TargetAge, _ = cmd.Flags().GetInt("target-age")
		in.AnnualReturnPct, _ = cmd.Flags().GetFloat64("return")

		res := newEngine(cmd).CalculateEarlyStart(in)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, res)
		}
		printEarlyStart(cmd.OutOrStdout(), res)
		return nil
	},
}

var yieldCmd = &cobra.Command{
	Use:     "rendite",
	Aliases: []string{"yield"},
	Short:   "Project a savings plan with yearly snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := domain.YieldInput{}
		in.InitialBalance, _ = cmd.Flags().GetFloat64("initial")
		in.MonthlyContribution, _ = cmd.Flags().GetFloat64("monthly")
		in.Years, _ = cmd.Flags().GetFloat64("years")
		in.AnnualReturnPct, _ = cmd.Flags().GetFloat64("return")
		convStr, _ := cmd.Flags().GetString("convention")
		conv, err := domain.ParseRateConvention(convStr, domain.RateConventionEffective)
		if err != nil {
			return err
		}
		in.Convention = conv

		res := newEngine(cmd).CalculateYield(in)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, res)
		}
		printYield(cmd.OutOrStdout(), res)
		return nil
	},
}

var futureValueCmd = &cobra.Command{
	Use:   "fv",
	Short: "Compute the future value of a monthly contribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := domain.ProjectionInput{}
		in.MonthlyContribution, _ = cmd.Flags().GetFloat64("monthly")
		in.Months, _ = cmd.Flags().GetInt("months")
		in.AnnualReturnPct, _ = cmd.Flags().GetFloat64("return")
		in.InitialBalance, _ = cmd.Flags().GetFloat64("initial")
		in = calculation.ClampProjection(in)

		balance := newEngine(cmd).FutureValue(in)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, server.FutureValueResponse{
				Balance: balance,
				PaidIn:  calculation.NonNegative(in.InitialBalance) + in.PaidIn(),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Future value after %d months: %s\n", in.Months, output.FormatAmount(balance))
		return nil
	},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the scenarios of a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := newEngine(cmd)
		results, err := engine.RunScenarios(cmd.Context(), configData)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.GenerateReport(results, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}
		return output.RenderReport(cmd.OutOrStdout(), results, outputFormat)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d scenario(s)\n", len(configData.Scenarios))
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err == nil {
			if force, _ := cmd.Flags().GetBool("force"); !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
			}
		}
		parser := config.NewInputParser()
		if err := output.SaveConfiguration(parser.CreateExampleConfiguration(), args[0]); err != nil {
			return fmt.Errorf("failed to write example configuration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		if port == "" {
			port = os.Getenv("PORT")
		}
		if port == "" {
			port = "8080"
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := simpleCLILogger{}
		srv := server.New(newEngine(cmd), logger)
		log.Printf("Vorsorge API starting on port %s", port)
		if err := srv.Serve(ctx, ":"+port); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive calculators",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(newEngine(cmd))
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for calculations")

	subsidyCmd.Flags().String("amount", "1800", "Own contribution per year (per month with --monthly)")
	subsidyCmd.Flags().Bool("monthly", false, "Interpret --amount as a monthly contribution")
	subsidyCmd.Flags().Int("children", 0, "Number of eligible children")
	subsidyCmd.Flags().String("tier", string(domain.RateTier2027), "Rate tier: 2027 or 2029")
	subsidyCmd.Flags().Bool("bonus", false, "Include the early-career bonus")
	subsidyCmd.Flags().Bool("json", false, "Print the result as JSON")

	depotCmd.Flags().String("amount", "150", "Own contribution")
	depotCmd.Flags().String("mode", string(domain.InputModeMonthly), "Whether --amount is monthly or yearly")
	depotCmd.Flags().Int("children", 0, "Number of eligible children")
	depotCmd.Flags().String("tier", string(domain.RateTier2027), "Rate tier: 2027 or 2029")
	depotCmd.Flags().Bool("bonus", false, "Include the early-career bonus")
	depotCmd.Flags().Float64("return", 6, "Expected annual return in percent")
	depotCmd.Flags().Float64("years", 30, "Savings period in years")
	depotCmd.Flags().Bool("json", false, "Print the result as JSON")

	earlyStartCmd.Flags().Int("birth-year", 2020, "Birth year of the child")
	earlyStartCmd.Flags().Float64("state", calculation.DefaultStateAmount, "Monthly state contribution")
	earlyStartCmd.Flags().Float64("private", 0, "Additional monthly private contribution until 18")
	earlyStartCmd.Flags().Bool("continue", false, "Keep saving privately after the 18th birthday")
	earlyStartCmd.Flags().Float64("private-after", 0, "Monthly private contribution after 18")
	earlyStartCmd.Flags().Int("target-age", calculation.DefaultTargetAge, "Age at which the capital is reported")
	earlyStartCmd.Flags().Float64("return", 6, "Expected annual return in percent")
	earlyStartCmd.Flags().Bool("json", false, "Print the result as JSON")

	yieldCmd.Flags().Float64("initial", 0, "Initial balance")
	yieldCmd.Flags().Float64("monthly", 100, "Monthly contribution")
	yieldCmd.Flags().Float64("years", 20, "Savings period in years")
	yieldCmd.Flags().Float64("return", 7, "Expected annual return in percent")
	yieldCmd.Flags().String("convention", string(domain.RateConventionEffective), "Monthly rate convention: effective or nominal")
	yieldCmd.Flags().Bool("json", false, "Print the result as JSON")

	futureValueCmd.Flags().Float64("monthly", 100, "Monthly contribution")
	futureValueCmd.Flags().Int("months", 120, "Number of months")
	futureValueCmd.Flags().Float64("return", 6, "Expected annual return in percent")
	futureValueCmd.Flags().Float64("initial", 0, "Initial balance")
	futureValueCmd.Flags().Bool("json", false, "Print the result as JSON")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (or all with --save)")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	exampleCmd.Flags().Bool("force", false, "Overwrite an existing file")

	serveCmd.Flags().String("port", "", "Port to listen on (default $PORT or 8080)")

	rootCmd.AddCommand(subsidyCmd, depotCmd, earlyStartCmd, yieldCmd, futureValueCmd)
	rootCmd.AddCommand(calculateCmd, validateCmd, exampleCmd, serveCmd, tuiCmd, versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
