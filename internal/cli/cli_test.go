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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/resident-reconciliation-service/internal/system/database/provider"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "ERROR"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestETLCommands(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "registry.db")
	t.Cleanup(func() { _ = provider.Shutdown() })

	out, err := run(t, "init-db", "--service-home", dir, "--sqlite", registry)
	require.NoError(t, err)
	assert.Contains(t, out, "Registry schema is ready")

	residents := writeFile(t, dir, "residents.csv",
		"code,lastname,father_name,streetname,buildingnumber,apartmentnumber\n"+
			"270,כהן,משה,הרצל,12,3\n"+
			"364,לוי,דוד,ביאליק,4,1\n")
	out, err = run(t, "residents", residents, "--service-home", dir, "--sqlite", registry)
	require.NoError(t, err)
	assert.Contains(t, out, "registry total:   2")

	orders := writeFile(t, dir, "orders.csv", "order_code,guest_list\n270,364|5\n")
	out, err = run(t, "orders", orders, "--service-home", dir, "--sqlite", registry)
	require.NoError(t, err)
	assert.Contains(t, out, "successful pairs: 1")
	assert.Contains(t, out, "missing receivers: 5")

	outer := writeFile(t, dir, "outer.csv", "order_code,guest_list,rating\n270,364,3\n")
	out, err = run(t, "outer-orders", outer, "--service-home", dir, "--sqlite", registry)
	require.NoError(t, err)
	assert.Contains(t, out, "queued: 1")
	assert.Contains(t, out, "distribution: skipped")
}

func TestResidentsCmd_RejectsUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "residents.pdf", "code\n1\n")

	_, err := run(t, "residents", path, "--service-home", dir, "--sqlite", filepath.Join(dir, "r.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
