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
package cli

import (
	"github.com/spf13/cobra"
	distributionService "github.com/wso2/resident-reconciliation-service/internal/distribution/service"
	orderService "github.com/wso2/resident-reconciliation-service/internal/orders/service"
	residentService "github.com/wso2/resident-reconciliation-service/internal/residents/service"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
)

// InitDBCmd creates the registry schema.
func InitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the registry tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closePool()
			if err := provider.InitSchema(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Registry schema is ready")
			return nil
		},
	}
}

// ResidentsCmd uploads a resident file and reconciles it into the registry.
func ResidentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "residents <file>",
		Short: "Stage and reconcile a resident file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closePool()
			file, err := readFile(args[0])
			if err != nil {
				return err
			}
			service, err := residentService.GetResidentService()
			if err != nil {
				return err
			}
			summary, err := service.UploadResidents(cmd.Context(), file)
			if err != nil {
				return err
			}
			printResidentSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

// OrdersCmd resolves an order file into delivery pairs.
func OrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders <file>",
		Short: "Resolve an order file into delivery pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closePool()
			file, err := readFile(args[0])
			if err != nil {
				return err
			}
			service, err := orderService.GetOrderService()
			if err != nil {
				return err
			}
			result, err := service.ImportOrders(cmd.Context(), file)
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// OuterOrdersCmd queues an outer order file and runs distribution.
func OuterOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outer-orders <file>",
		Short: "Queue outer orders and run distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closePool()
			file, err := readFile(args[0])
			if err != nil {
				return err
			}
			service, err := distributionService.GetDistributionService()
			if err != nil {
				return err
			}
			report, err := service.QueueOuterOrders(cmd.Context(), file)
			if err != nil {
				return err
			}
			printDistributionReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func closePool() {
	_ = provider.Shutdown()
}
