package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sa-ameen/mcboms-optimization/internal/server"
	"github.com/sa-ameen/mcboms-optimization/pkg/scenario"
)

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "mcboms",
		Short: "Budget-constrained roadway improvement optimizer",
	}

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(enumerateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Select the optimal improvement program for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSolve(args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for result files (overrides scenario and MCBOMS_OUTPUT_DIR)")
	return cmd
}

func enumerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enumerate [project-path]",
		Short: "List the alternatives the scenario's catalog produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEnumerate(args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a scenario and its catalog without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local API server for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scn, err := scenario.LoadProject(args[0])
			if err != nil {
				return err
			}
			if err := scn.Validate(); err != nil {
				return err
			}
			srv, err := server.New(scn, port)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", defaultPort(), "HTTP server port")
	return cmd
}

func defaultPort() int {
	if raw := os.Getenv("MCBOMS_PORT"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			return p
		}
	}
	return 3000
}
