package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kovnat/sapodataoperator/cmd/odatafetch/config"
	"github.com/kovnat/sapodataoperator/internal/common"
	"github.com/kovnat/sapodataoperator/internal/fetch"
	"github.com/kovnat/sapodataoperator/internal/sink"
	"github.com/kovnat/sapodataoperator/pkg/resulttable"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "odatafetch",
	Short: "Fetch data from an SAP OData service into a result table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(context.Background())
	},
	SilenceUsage: true,
}

func init() {
	v := viper.GetViper()
	v.SetDefault("config", "./config/config.yaml")

	// Environment variables support: ODATAFETCH_CONFIG, ...
	v.SetEnvPrefix("ODATAFETCH")
	v.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml describing the connection and the fetch")
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func runFetch(ctx context.Context) error {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}
	common.SetDefaultLogger(cfg.NewLogger())
	logger := common.GetLogger().WithComponent("odatafetch")

	task, err := fetch.New(cfg.Fetch, cfg.Registry())
	if err != nil {
		return err
	}
	tbl, err := task.Execute(ctx)
	if err != nil {
		return err
	}
	logger.Info("fetch completed", "rows", tbl.Len(), "columns", len(tbl.Columns))

	var out io.Writer = os.Stdout
	if cfg.Output.Path != "" {
		f, ferr := os.Create(cfg.Output.Path)
		if ferr != nil {
			return ferr
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := emit(out, cfg.Output.Format, tbl); err != nil {
		return err
	}

	if cfg.Output.Sink.Driver != "" {
		return writeSink(cfg.Output.Sink, cfg.Fetch, tbl)
	}
	return nil
}

// writeSink materializes the table into the configured database sink. The
// target table name defaults to the function or entity name.
func writeSink(cfg sink.Config, spec fetch.Spec, tbl *resulttable.Table) error {
	name := cfg.Table
	if name == "" {
		if spec.Function != "" {
			name = spec.Function
		} else {
			name = spec.Entity
		}
	}
	name = strings.ToLower(name)
	if name == "" {
		return fmt.Errorf("sink requires a table name")
	}

	s, err := sink.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Ensure(name, tbl.Columns); err != nil {
		return err
	}
	n, err := s.Write(name, tbl)
	if err != nil {
		return err
	}
	common.GetLogger().WithSink(cfg.Driver).Info("result table persisted", "table", name, "rows", n)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
