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

package scripts

const residentColumns = `code, lastname, father_name, mother_name, streetname, buildingnumber, entrance,
       apartmentnumber, phone, mobile, mobile2, email, standing_order`

// Staging

var TruncateRawResidents = map[string]string{
	"postgres": `TRUNCATE TABLE raw_residents RESTART IDENTITY`,
	"sqlite":   `DELETE FROM raw_residents`,
}

var TruncateStagedResidents = map[string]string{
	"postgres": `TRUNCATE TABLE staged_residents RESTART IDENTITY`,
	"sqlite":   `DELETE FROM staged_residents`,
}

var InsertRawResident = map[string]string{
	"postgres": `INSERT INTO raw_residents (` + residentColumns + `)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`,
	"sqlite": `INSERT INTO raw_residents (` + residentColumns + `)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
}

var ListRawResidents = map[string]string{
	"postgres": `SELECT id, ` + residentColumns + ` FROM raw_residents ORDER BY id`,
	"sqlite":   `SELECT id, ` + residentColumns + ` FROM raw_residents ORDER BY id`,
}

var CountRawResidents = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM raw_residents`,
	"sqlite":   `SELECT COUNT(*) AS count FROM raw_residents`,
}

var GetFirstRawResident = map[string]string{
	"postgres": `SELECT id, ` + residentColumns + ` FROM raw_residents ORDER BY id LIMIT 1`,
	"sqlite":   `SELECT id, ` + residentColumns + ` FROM raw_residents ORDER BY id LIMIT 1`,
}

var InsertStagedResident = map[string]string{
	"postgres": `INSERT INTO staged_residents (raw_id, ` + residentColumns + `, status)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
	"sqlite": `INSERT INTO staged_residents (raw_id, ` + residentColumns + `, status)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
}

var ListStagedResidents = map[string]string{
	"postgres": `SELECT id, raw_id, ` + residentColumns + `, status, email_valid, phone_flags, note
       FROM staged_residents ORDER BY id`,
	"sqlite": `SELECT id, raw_id, ` + residentColumns + `, status, email_valid, phone_flags, note
       FROM staged_residents ORDER BY id`,
}

var ListStagedResidentsByStatus = map[string]string{
	"postgres": `SELECT id, raw_id, ` + residentColumns + `, status, email_valid, phone_flags, note
       FROM staged_residents WHERE status = $1 ORDER BY id LIMIT $2`,
	"sqlite": `SELECT id, raw_id, ` + residentColumns + `, status, email_valid, phone_flags, note
       FROM staged_residents WHERE status = ? ORDER BY id LIMIT ?`,
}

var UpdateStagedResidentStatus = map[string]string{
	"postgres": `UPDATE staged_residents SET status = $1, email_valid = $2, phone_flags = $3, note = $4 WHERE id = $5`,
	"sqlite":   `UPDATE staged_residents SET status = ?, email_valid = ?, phone_flags = ?, note = ? WHERE id = ?`,
}

var CountStagedResidentsByStatus = map[string]string{
	"postgres": `SELECT status, COUNT(*) AS count FROM staged_residents GROUP BY status`,
	"sqlite":   `SELECT status, COUNT(*) AS count FROM staged_residents GROUP BY status`,
}

// Registry

const personColumns = `personid, ` + residentColumns + `, auto_return, created_at, updated_at`

var GetPersonByCode = map[string]string{
	"postgres": `SELECT ` + personColumns + ` FROM person WHERE code = $1`,
	"sqlite":   `SELECT ` + personColumns + ` FROM person WHERE code = ?`,
}

var FindPersonsBySecondaryKey = map[string]string{
	"postgres": `SELECT ` + personColumns + ` FROM person
       WHERE lastname = $1 AND father_name = $2 AND streetname = $3 AND buildingnumber = $4
         AND apartmentnumber = $5 ORDER BY personid`,
	"sqlite": `SELECT ` + personColumns + ` FROM person
       WHERE lastname = ? AND father_name = ? AND streetname = ? AND buildingnumber = ?
         AND apartmentnumber = ? ORDER BY personid`,
}

var FindUncodedPersonsBySecondaryKey = map[string]string{
	"postgres": `SELECT ` + personColumns + ` FROM person
       WHERE code IS NULL AND lastname = $1 AND father_name = $2 AND streetname = $3
         AND buildingnumber = $4 AND apartmentnumber = $5 ORDER BY personid`,
	"sqlite": `SELECT ` + personColumns + ` FROM person
       WHERE code IS NULL AND lastname = ? AND father_name = ? AND streetname = ?
         AND buildingnumber = ? AND apartmentnumber = ? ORDER BY personid`,
}

var InsertPerson = map[string]string{
	"postgres": `INSERT INTO person (` + residentColumns + `, created_at, updated_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING personid`,
	"sqlite": `INSERT INTO person (` + residentColumns + `, created_at, updated_at)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING personid`,
}

var UpdatePerson = map[string]string{
	"postgres": `UPDATE person SET code = $1, lastname = $2, father_name = $3, mother_name = $4, streetname = $5,
       buildingnumber = $6, entrance = $7, apartmentnumber = $8, phone = $9, mobile = $10, mobile2 = $11,
       email = $12, standing_order = $13, updated_at = $14 WHERE personid = $15`,
	"sqlite": `UPDATE person SET code = ?, lastname = ?, father_name = ?, mother_name = ?, streetname = ?,
       buildingnumber = ?, entrance = ?, apartmentnumber = ?, phone = ?, mobile = ?, mobile2 = ?,
       email = ?, standing_order = ?, updated_at = ? WHERE personid = ?`,
}

var InsertPersonArchive = map[string]string{
	"postgres": `INSERT INTO person_archive (personid, ` + residentColumns + `, archived_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING archive_id`,
	"sqlite": `INSERT INTO person_archive (personid, ` + residentColumns + `, archived_at)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING archive_id`,
}

var CountPersons = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM person`,
	"sqlite":   `SELECT COUNT(*) AS count FROM person`,
}

var GetLatestPerson = map[string]string{
	"postgres": `SELECT ` + personColumns + ` FROM person ORDER BY personid DESC LIMIT 1`,
	"sqlite":   `SELECT ` + personColumns + ` FROM person ORDER BY personid DESC LIMIT 1`,
}

var CountPersonArchives = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM person_archive`,
	"sqlite":   `SELECT COUNT(*) AS count FROM person_archive`,
}

var ListRecentPersonArchives = map[string]string{
	"postgres": `SELECT archive_id, personid, ` + residentColumns + `, archived_at FROM person_archive
       ORDER BY archived_at DESC, archive_id DESC LIMIT $1`,
	"sqlite": `SELECT archive_id, personid, ` + residentColumns + `, archived_at FROM person_archive
       ORDER BY archived_at DESC, archive_id DESC LIMIT ?`,
}

// Delivery pairs

var GetPersonIDByCode = map[string]string{
	"postgres": `SELECT personid FROM person WHERE code = $1`,
	"sqlite":   `SELECT personid FROM person WHERE code = ?`,
}

var GetDeliveryPair = map[string]string{
	"postgres": `SELECT order_id FROM delivery_pair WHERE delivery_sender_id = $1 AND delivery_getter_id = $2`,
	"sqlite":   `SELECT order_id FROM delivery_pair WHERE delivery_sender_id = ? AND delivery_getter_id = ?`,
}

var InsertDeliveryPair = map[string]string{
	"postgres": `INSERT INTO delivery_pair (delivery_sender_id, delivery_getter_id, order_date, origin_type)
       VALUES ($1, $2, $3, $4) RETURNING order_id`,
	"sqlite": `INSERT INTO delivery_pair (delivery_sender_id, delivery_getter_id, order_date, origin_type)
       VALUES (?, ?, ?, ?) RETURNING order_id`,
}

var CountDeliveryPairs = map[string]string{
	"postgres": `SELECT COUNT(*) AS count FROM delivery_pair`,
	"sqlite":   `SELECT COUNT(*) AS count FROM delivery_pair`,
}

// Outer orders

var InsertOuterOrder = map[string]string{
	"postgres": `INSERT INTO outer_orders (sender_code, invitees, package_size, origin, status, created_at)
       VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
	"sqlite": `INSERT INTO outer_orders (sender_code, invitees, package_size, origin, status, created_at)
       VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
}

var CountOuterOrdersByStatus = map[string]string{
	"postgres": `SELECT status, COUNT(*) AS count FROM outer_orders GROUP BY status ORDER BY status`,
	"sqlite":   `SELECT status, COUNT(*) AS count FROM outer_orders GROUP BY status ORDER BY status`,
}

var GroupOuterOrderErrors = map[string]string{
	"postgres": `SELECT severity, reason_code, COUNT(*) AS count FROM outer_order_error_log
       GROUP BY severity, reason_code ORDER BY severity, reason_code`,
	"sqlite": `SELECT severity, reason_code, COUNT(*) AS count FROM outer_order_error_log
       GROUP BY severity, reason_code ORDER BY severity, reason_code`,
}

var DistributeAllOuterOrders = map[string]string{
	"postgres": `SELECT distribute_all_outer_orders() AS distributed`,
}

// Health

var Ping = map[string]string{
	"postgres": `SELECT 1 AS ok`,
	"sqlite":   `SELECT 1 AS ok`,
}

var TryAdvisoryLock = map[string]string{
	"postgres": `SELECT pg_try_advisory_lock($1)`,
}

var AdvisoryUnlock = map[string]string{
	"postgres": `SELECT pg_advisory_unlock($1)`,
}
