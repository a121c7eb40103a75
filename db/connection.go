// Package db implements the schema catalog: it connects to PostgreSQL
// through pgx and answers the metadata questions the prompt builder
// asks (table listing, per-table details, EXPLAIN execution).
//
// Design decisions:
//   - Uses pgxpool for connection pooling (safe for concurrent access).
//   - All queries run through the Pool interface, keeping callers
//     unaware of connection details.
//   - SSH tunnel integration is transparent: when SSH is enabled we
//     first establish the tunnel, then connect pgx to the local endpoint.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgquill/pgquill/config"
	"github.com/pgquill/pgquill/ssh"
)

// DB wraps a pgx connection pool and optional SSH tunnel.
type DB struct {
	Pool   *pgxpool.Pool
	Tunnel *ssh.Tunnel
}

// Connect establishes a PostgreSQL connection, optionally through an
// SSH tunnel.
func Connect(ctx context.Context, dbCfg config.DatabaseConfig, sshCfg config.SSHConfig) (*DB, error) {
	d := &DB{}

	if sshCfg.Enabled {
		tunnel, err := ssh.NewTunnel(sshCfg, dbCfg.Host, dbCfg.Port)
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel: %w", err)
		}
		localAddr, err := tunnel.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel start: %w", err)
		}
		d.Tunnel = tunnel

		// Point pgx at the local tunnel endpoint
		dbCfg.Host = localAddr.Host
		dbCfg.Port = localAddr.Port
	}

	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("pgx connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx ping: %w", err)
	}

	d.Pool = pool
	return d, nil
}

// Close shuts down the pool and SSH tunnel.
func (d *DB) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Tunnel != nil {
		d.Tunnel.Stop()
	}
}
