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
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	orderService "github.com/wso2/resident-reconciliation-service/internal/orders/service"
	"github.com/wso2/resident-reconciliation-service/internal/system/config"
	"github.com/wso2/resident-reconciliation-service/internal/system/constants"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
	"github.com/wso2/resident-reconciliation-service/internal/system/log"
	"github.com/wso2/resident-reconciliation-service/internal/system/managers"
	"github.com/wso2/resident-reconciliation-service/internal/system/schedulers"
	"github.com/wso2/resident-reconciliation-service/internal/system/utils"
)

func main() {
	serviceHome := getServiceHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, _ := filepath.Glob(filepath.Join(serviceHome, "config", "*.env"))
	if len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	serviceConfig, err := config.LoadConfig(serviceHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitializeRuntime(serviceHome, serviceConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(log.Options{Level: serviceConfig.Log.LogLevel, Format: serviceConfig.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	if err := provider.InitSchema(); err != nil {
		logger.Fatal("Failed to prepare the registry database", log.Error(err))
	}
	defer func() {
		if err := provider.Shutdown(); err != nil {
			logger.Error("Failed to close the database pool", log.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go schedulers.StartCacheSweepScheduler(ctx, "order-import-results", orderService.ImportResultCache(),
		time.Minute)

	serverAddr := fmt.Sprintf("%s:%d", serviceConfig.Addr.Host, serviceConfig.Addr.Port)
	handler := enableCORS(utils.WithTrace(initMultiplexer()))

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("address", serverAddr), log.Error(err))
	}
	logger.Info("Resident reconciliation service started", log.String("address", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services", log.Error(err))
	}
	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+utils.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getServiceHome() string {

	serviceHomeFlag := flag.String("serviceHome", "", "Path to the reconciliation service home directory")
	flag.Parse()

	if *serviceHomeFlag != "" {
		return *serviceHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	return dir
}
