package kv

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver string

	// Path is the JSON file (file) or database file (sqlite).
	Path string

	// Table is the SQL table name (sqlite).
	Table string

	// Bucket, Prefix, Region and Endpoint configure the s3 driver.
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file driver requires a path")
		}
		fs, err := NewFileStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a path")
		}
		var sqlOpts []SQLStoreOption
		if opts.Table != "" {
			sqlOpts = append(sqlOpts, WithSQLTableName(opts.Table))
		}
		ss, err := OpenSQLite(ctx, opts.Path, sqlOpts...)
		if err != nil {
			return nil, err
		}
		return ss, nil
	case DriverS3:
		if opts.Bucket == "" {
			return nil, fmt.Errorf("s3 driver requires a bucket")
		}
		return NewS3Store(NewS3Client(opts.Region, opts.Endpoint), opts.Bucket, opts.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
