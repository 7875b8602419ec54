// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstore keeps a history of analysis runs in a SQL
// database. Only sqlite3 and mysql are explicitly supported; other
// database engines will receive MySQL query syntax which may or may
// not be compatible.
package benchstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/zmqbench/bindstat/benchparse"
)

// DB is a handle to the run-history database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertRun        *sql.Stmt
	insertLatency    *sql.Stmt
	insertThroughput *sql.Stmt
}

// OpenSQL opens the run-history database. The parameters are the same
// as the parameters for sql.Open. Missing tables are created.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Stamp BIGINT
);
CREATE TABLE IF NOT EXISTS Latency (
	RunID BIGINT UNSIGNED,
	Source VARCHAR(32),
	Size BIGINT,
	LatencyUS DOUBLE,
	PRIMARY KEY (RunID, Source, Size)
);
CREATE TABLE IF NOT EXISTS Throughput (
	RunID BIGINT UNSIGNED,
	Source VARCHAR(32),
	Size BIGINT,
	MsgPerSec DOUBLE,
	Mbps DOUBLE,
	PRIMARY KEY (RunID, Source, Size)
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Stamp) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertLatency, err = db.sql.Prepare(
		"INSERT INTO Latency(RunID, Source, Size, LatencyUS) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertThroughput, err = db.sql.Prepare(
		"INSERT INTO Throughput(RunID, Source, Size, MsgPerSec, Mbps) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// SaveRun stores one analysis run's extracted records and returns the
// new run's ID. The whole run is inserted in a single transaction.
func (db *DB) SaveRun(ctx context.Context, stamp time.Time, rs benchparse.ResultSet) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, stamp.Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, src := range benchparse.Sources {
		results, ok := rs[src]
		if !ok {
			continue
		}
		for _, rec := range results.Latency {
			if _, err = tx.StmtContext(ctx, db.insertLatency).ExecContext(ctx,
				id, string(src), rec.Size, rec.LatencyUS); err != nil {
				return 0, err
			}
		}
		for _, rec := range results.Throughput {
			if _, err = tx.StmtContext(ctx, db.insertThroughput).ExecContext(ctx,
				id, string(src), rec.Size, rec.MsgPerSec, rec.Mbps); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// LastRun loads the most recently saved run. It returns sql.ErrNoRows
// if the database holds no runs yet.
func (db *DB) LastRun(ctx context.Context) (stamp time.Time, rs benchparse.ResultSet, err error) {
	var id, unix int64
	err = db.sql.QueryRowContext(ctx,
		"SELECT RunID, Stamp FROM Runs ORDER BY RunID DESC LIMIT 1").Scan(&id, &unix)
	if err != nil {
		return time.Time{}, nil, err
	}
	rs, err = db.loadRun(ctx, id)
	if err != nil {
		return time.Time{}, nil, err
	}
	return time.Unix(unix, 0).UTC(), rs, nil
}

func (db *DB) loadRun(ctx context.Context, id int64) (benchparse.ResultSet, error) {
	rs := make(benchparse.ResultSet)

	rows, err := db.sql.QueryContext(ctx,
		"SELECT Source, Size, LatencyUS FROM Latency WHERE RunID = ? ORDER BY Size", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var src string
		var size int
		var us float64
		if err := rows.Scan(&src, &size, &us); err != nil {
			return nil, err
		}
		res := rs[benchparse.Source(src)]
		res.Latency = append(res.Latency, benchparse.LatencyRecord{Size: size, LatencyUS: us})
		rs[benchparse.Source(src)] = res
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trows, err := db.sql.QueryContext(ctx,
		"SELECT Source, Size, MsgPerSec, Mbps FROM Throughput WHERE RunID = ? ORDER BY Size", id)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var src string
		var size int
		var msgPerSec, mbps float64
		if err := trows.Scan(&src, &size, &msgPerSec, &mbps); err != nil {
			return nil, err
		}
		res := rs[benchparse.Source(src)]
		res.Throughput = append(res.Throughput, benchparse.ThroughputRecord{Size: size, MsgPerSec: msgPerSec, Mbps: mbps})
		rs[benchparse.Source(src)] = res
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	return db.sql.Close()
}
