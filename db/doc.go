// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL file host.

# Schema Creation

CreateSchema initializes all required tables for the given database type:

	if err := db.CreateSchema(conn, db.TypePostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Database Types

  - TypePostgres: PostgreSQL via github.com/lib/pq (driver "postgres")
  - TypeSQLite: SQLite via modernc.org/sqlite (driver "sqlite")

DriverName returns the database/sql driver for a type.

# Tables

The schema has a single table:

  - hosted_file: one row per hosted path (content bytes, version token,
    last update time)

The version column holds the git blob sha of content and is the value
conditional writes compare against.
*/
package db
