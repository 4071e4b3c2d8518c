/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */
// Package cli implements the mms-etl command line tool. It runs the same services as the
// HTTP surface against a file on disk.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
)

const deploymentFile = "/repository/conf/deployment.yaml"

type rootOptions struct {
	serviceHome string
	sqlitePath  string
	logLevel    string
}

// NewRootCmd returns the mms-etl root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mms-etl",
		Short: "Load resident and order files into the gift-package registry",
		Long: `mms-etl reconciles resident files against the registry and resolves order
files into delivery pairs.

Examples:
  mms-etl init-db --sqlite ./registry.db
  mms-etl residents residents.xlsx
  mms-etl orders orders.csv
  mms-etl outer-orders outer.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.serviceHome, "service-home", "",
		"service home holding repository/conf/deployment.yaml (defaults to the working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "",
		"use a local sqlite registry at this path instead of the configured datasource")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"override the configured log level")

	rootCmd.AddCommand(InitDBCmd())
	rootCmd.AddCommand(ResidentsCmd())
	rootCmd.AddCommand(OrdersCmd())
	rootCmd.AddCommand(OuterOrdersCmd())
	return rootCmd
}

// initialize loads .env files and the deployment file when present and installs the runtime
// configuration and logger.
func (o *rootOptions) initialize(logOutput io.Writer) error {

	home := o.serviceHome
	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		home = dir
	}

	if envFiles, _ := filepath.Glob(filepath.Join(home, "config", "*.env")); len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg := config.DefaultConfig()
	if _, err := os.Stat(filepath.Join(home, deploymentFile)); err == nil {
		loaded, err := config.LoadConfig(home, deploymentFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = *loaded
	}
	if o.sqlitePath != "" {
		cfg.DataSource.Type = constants.SQLiteDBType
		cfg.DataSource.Path = o.sqlitePath
	}
	if o.logLevel != "" {
		cfg.Log.LogLevel = o.logLevel
	}

	config.OverrideRuntime(cfg)
	return log.Configure(log.Options{Level: cfg.Log.LogLevel, Format: cfg.Log.Format, Output: logOutput})
}
