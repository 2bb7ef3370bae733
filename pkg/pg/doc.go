// Package pg wires the pgx/v5 driver into the service: connection pooling
// with startup retries, embedded goose migrations, a pool healthcheck, and
// error helpers for translating driver errors into domain sentinels.
//
// Typical bootstrap:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//	    return err
//	}
//
// Query layers use IsNotFoundError and IsUniqueViolationError to map
// pgx.ErrNoRows and SQLSTATE 23505 into their own error taxonomy instead of
// leaking driver types upward.
package pg
