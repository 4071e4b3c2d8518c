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
	"fmt"
	"io"

	"github.com/fatih/color"
	distributionModel "github.com/wso2/resident-reconciliation-service/internal/distribution/model"
	orderService "github.com/wso2/resident-reconciliation-service/internal/orders/service"
	residentModel "github.com/wso2/resident-reconciliation-service/internal/residents/model"
	stagingModel "github.com/wso2/resident-reconciliation-service/internal/staging/model"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

var statusColors = map[stagingModel.Status]*color.Color{
	stagingModel.StatusInserted:     okColor,
	stagingModel.StatusMerged:       okColor,
	stagingModel.StatusPartialMatch: warnColor,
	stagingModel.StatusSkipped:      failColor,
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", okColor.Sprint("✓"), msg)
}

func printResidentSummary(w io.Writer, summary *residentModel.UploadSummary) {

	fmt.Fprintf(w, "Batch %s (%s)\n", summary.BatchID, summary.FileName)
	fmt.Fprintf(w, "  rows loaded: %d, staged: %d\n", summary.RowsLoaded, summary.RowsStaged)
	for _, status := range stagingModel.TerminalStatuses {
		c, ok := statusColors[status]
		if !ok {
			c = warnColor
		}
		fmt.Fprintf(w, "  %-14s %s\n", status, c.Sprint(summary.Counts.Get(status)))
	}
	fmt.Fprintf(w, "  archives created: %d\n", summary.ArchivesCreated)
	fmt.Fprintf(w, "  registry total:   %d\n", summary.RegistryTotal)
	for _, mapping := range summary.ColumnMappings {
		fmt.Fprintf(w, "  column %q -> %s\n", mapping.Original, mapping.Canonical)
	}
}

func printImportResult(w io.Writer, result *orderService.ImportResult) {

	stats := result.Statistics
	fmt.Fprintf(w, "Import %s (%s)\n", stats.ImportID, result.FileName)
	fmt.Fprintf(w, "  orders: %d, pairs: %d\n", stats.TotalOrders, stats.TotalPairs)
	fmt.Fprintf(w, "  successful pairs: %s\n", okColor.Sprint(stats.SuccessfulPairs))
	fmt.Fprintf(w, "  failed pairs:     %s\n", countColor(stats.FailedPairs).Sprint(stats.FailedPairs))
	if result.Preview.MissingSenders != "" {
		fmt.Fprintf(w, "  missing senders:   %s\n", warnColor.Sprint(result.Preview.MissingSenders))
	}
	if result.Preview.MissingReceivers != "" {
		fmt.Fprintf(w, "  missing receivers: %s\n", warnColor.Sprint(result.Preview.MissingReceivers))
	}
	if len(stats.InvalidSenders) > 0 {
		fmt.Fprintf(w, "  invalid senders:   %s\n", failColor.Sprint(stats.InvalidSenders))
	}
}

func printDistributionReport(w io.Writer, report *distributionModel.DistributionReport) {

	fmt.Fprintf(w, "Outer orders (%s)\n", report.FileName)
	fmt.Fprintf(w, "  queued: %s\n", okColor.Sprint(report.RowsQueued))
	if report.DistributionSkipped {
		fmt.Fprintf(w, "  distribution: %s\n", warnColor.Sprint("skipped"))
	} else {
		fmt.Fprintf(w, "  distributed: %s\n", okColor.Sprint(report.Distributed))
	}
	for _, status := range report.Statuses {
		fmt.Fprintf(w, "  %-12s %d\n", status.Status, status.Count)
	}
	for _, group := range report.Errors {
		fmt.Fprintf(w, "  %s %s %s\n", failColor.Sprint(group.Severity), group.ReasonCode,
			countColor(group.Count).Sprint(group.Count))
	}
}

func countColor(n int) *color.Color {
	if n == 0 {
		return okColor
	}
	return failColor
}
