package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/propintel/underwrite"
	"github.com/propintel/underwrite/pdf"
	"github.com/propintel/underwrite/server"
	"github.com/propintel/underwrite/shutdown"
	"github.com/propintel/underwrite/store"
	"github.com/propintel/underwrite/underwriting"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "underwrite",
		Short: "Render property underwriting reports as PDF",
		Long: `underwrite turns property underwriting records into paginated PDF reports.

It can render a single report from a record file, serve the report API over
HTTP, and inspect generated documents.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			underwrite.Flags.UseFlags()
		},
	}

	underwrite.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newRenderCommand() *cobra.Command {
	var recordFile, address, output string
	var force bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report for a record file or a mocked address",
		Example: `  underwrite render --address "123 Main St" -o report.pdf
  underwrite render --record property.yaml -o - > report.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := underwrite.LoadConfig(underwrite.Flags.ConfigFile)
			if err != nil {
				return err
			}

			record, err := loadRecord(recordFile, address)
			if err != nil {
				return err
			}

			if output == "-" && !force && term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("refusing to write a PDF to a terminal, use --output or --force")
			}

			renderer, err := underwrite.NewRenderer(cfg)
			if err != nil {
				return err
			}
			data, err := renderer.RenderBytes(record)
			if err != nil {
				return err
			}

			if output == "-" {
				if _, err := os.Stdout.Write(data); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			} else if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Fprintln(os.Stderr, newSummary(os.Stderr, underwrite.Flags.NoColor).Render(record, output, len(data)))
			return nil
		},
	}

	cmd.Flags().StringVar(&recordFile, "record", "", "YAML or JSON file with the underwriting record")
	cmd.Flags().StringVar(&address, "address", "", "Render the mocked record of this address")
	cmd.Flags().StringVarP(&output, "output", "o", underwriting.ReportFilename, "Output file, - for stdout")
	cmd.Flags().BoolVar(&force, "force", false, "Write to stdout even when it is a terminal")
	cmd.MarkFlagsMutuallyExclusive("record", "address")
	cmd.MarkFlagsOneRequired("record", "address")
	return cmd
}

func loadRecord(path, address string) (underwriting.Record, error) {
	if path == "" {
		return underwriting.MockRecord(address), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return underwriting.Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	var record underwriting.Record
	// YAML is a superset of JSON
	if err := yaml.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("failed to parse record %s: %w", path, err)
	}
	return record, nil
}

func newServeCommand() *cobra.Command {
	var addr string
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := underwrite.LoadConfig(underwrite.Flags.ConfigFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			renderer, err := underwrite.NewRenderer(cfg)
			if err != nil {
				return err
			}

			var history server.History
			if !noHistory {
				st, err := store.New(cfg.Store)
				if err != nil {
					return err
				}
				if _, err := st.Prune(cmd.Context()); err != nil {
					logger.Warnf("failed to prune history: %v", err)
				}
				shutdown.AddHookWithPriority("history store", shutdown.PriorityDatabase, func(context.Context) error {
					return st.Close()
				})
				history = st
			}

			srv := server.New(cfg.Server, renderer, history)
			shutdown.AddHookWithPriority("http server", shutdown.PriorityIngress, srv.Shutdown)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.ListenAndServe()
				cancel()
			}()

			if err := shutdown.WaitForSignal(ctx, cfg.Server.ShutdownTimeout); err != nil {
				return err
			}
			select {
			case err := <-serveErr:
				return err
			default:
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config file")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record underwriting runs")
	return cmd
}

func newInspectCommand() *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Validate a PDF and print its page count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			info, err := pdf.Inspect(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Printf("%s: %d pages, %d bytes\n", args[0], info.Pages, info.Size)

			if showText {
				text, err := pdf.ExtractText(data)
				if err != nil {
					return err
				}
				fmt.Println(text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showText, "text", false, "Print the extracted text")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("underwrite %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
