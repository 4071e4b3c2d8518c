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

// SchemaDDL creates every table the service owns. The distribute_all_outer_orders()
// function is provided by the distribution deployment and is not part of this schema.
var SchemaDDL = map[string]string{
	"postgres": `
CREATE TABLE IF NOT EXISTS person (
    personid        BIGSERIAL PRIMARY KEY,
    code            BIGINT UNIQUE,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    auto_return     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_person_secondary_key
    ON person (lastname, father_name, streetname, buildingnumber, apartmentnumber);

CREATE TABLE IF NOT EXISTS person_archive (
    archive_id      BIGSERIAL PRIMARY KEY,
    personid        BIGINT NOT NULL REFERENCES person (personid),
    code            BIGINT,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    archived_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS raw_residents (
    id              BIGSERIAL PRIMARY KEY,
    code            TEXT,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  TEXT
);

CREATE TABLE IF NOT EXISTS staged_residents (
    id              BIGSERIAL PRIMARY KEY,
    raw_id          BIGINT NOT NULL,
    code            TEXT,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'unresolved',
    email_valid     BOOLEAN NOT NULL DEFAULT TRUE,
    phone_flags     TEXT,
    note            TEXT
);

CREATE TABLE IF NOT EXISTS delivery_pair (
    order_id           BIGSERIAL PRIMARY KEY,
    delivery_sender_id BIGINT NOT NULL REFERENCES person (personid),
    delivery_getter_id BIGINT NOT NULL REFERENCES person (personid),
    order_date         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    origin_type        TEXT NOT NULL,
    UNIQUE (delivery_sender_id, delivery_getter_id)
);

CREATE TABLE IF NOT EXISTS outer_orders (
    id           BIGSERIAL PRIMARY KEY,
    sender_code  TEXT,
    invitees     TEXT,
    package_size TEXT NOT NULL,
    origin       TEXT NOT NULL,
    status       TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS outer_order_error_log (
    id             BIGSERIAL PRIMARY KEY,
    outer_order_id BIGINT REFERENCES outer_orders (id),
    severity       TEXT NOT NULL,
    reason_code    TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`,
	"sqlite": `
CREATE TABLE IF NOT EXISTS person (
    personid        INTEGER PRIMARY KEY AUTOINCREMENT,
    code            INTEGER UNIQUE,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    auto_return     BOOLEAN NOT NULL DEFAULT 0,
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_person_secondary_key
    ON person (lastname, father_name, streetname, buildingnumber, apartmentnumber);

CREATE TABLE IF NOT EXISTS person_archive (
    archive_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    personid        INTEGER NOT NULL REFERENCES person (personid),
    code            INTEGER,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    archived_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS raw_residents (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    code            TEXT,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  TEXT
);

CREATE TABLE IF NOT EXISTS staged_residents (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    raw_id          INTEGER NOT NULL,
    code            TEXT,
    lastname        TEXT,
    father_name     TEXT,
    mother_name     TEXT,
    streetname      TEXT,
    buildingnumber  TEXT,
    entrance        TEXT,
    apartmentnumber TEXT,
    phone           TEXT,
    mobile          TEXT,
    mobile2         TEXT,
    email           TEXT,
    standing_order  INTEGER NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'unresolved',
    email_valid     BOOLEAN NOT NULL DEFAULT 1,
    phone_flags     TEXT,
    note            TEXT
);

CREATE TABLE IF NOT EXISTS delivery_pair (
    order_id           INTEGER PRIMARY KEY AUTOINCREMENT,
    delivery_sender_id INTEGER NOT NULL REFERENCES person (personid),
    delivery_getter_id INTEGER NOT NULL REFERENCES person (personid),
    order_date         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    origin_type        TEXT NOT NULL,
    UNIQUE (delivery_sender_id, delivery_getter_id)
);

CREATE TABLE IF NOT EXISTS outer_orders (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    sender_code  TEXT,
    invitees     TEXT,
    package_size TEXT NOT NULL,
    origin       TEXT NOT NULL,
    status       TEXT NOT NULL,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS outer_order_error_log (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    outer_order_id INTEGER REFERENCES outer_orders (id),
    severity       TEXT NOT NULL,
    reason_code    TEXT NOT NULL,
    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
}
