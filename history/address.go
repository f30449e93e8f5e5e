package history

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrMalformedAddress = errors.New("malformed history address")
	ErrUnknownScheme    = errors.New("unknown history address scheme")
)

const (
	SchemeMemory   = "memory"
	SchemeSQLite   = "sqlite"
	SchemePostgres = "postgres"
	SchemeConsul   = "consul"
	SchemeS3       = "s3"
)

// Address is a parsed store address.
type Address struct {
	Scheme string
	// Host is the server address for consul and s3.
	Host string
	// Path is the sqlite file, the consul key prefix or the s3 bucket.
	Path string
	// DSN is the full connection string for postgres.
	DSN string

	Token     string
	AccessKey string
	SecretKey string
	Prefix    string
	SSL       bool
}

// ParseAddress understands
//
//	:memory:
//	sqlite://<path>                  (sqlite://:memory: for a throwaway database)
//	postgres://… postgresql://…      (passed on unchanged)
//	consul://<host:port>/<prefix>?token=<token>
//	s3://<endpoint>/<bucket>?access_key=…&secret_key=…&ssl=true&prefix=…
func ParseAddress(address string) (*Address, error) {
	address = strings.TrimSpace(address)
	if !strings.Contains(address, ":") {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
	}

	switch address {
	case ":memory:", "memory://":
		return &Address{Scheme: SchemeMemory}, nil
	}

	switch {
	case strings.HasPrefix(address, "sqlite://"):
		path := strings.TrimPrefix(address, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
		}
		return &Address{Scheme: SchemeSQLite, Path: path}, nil

	case strings.HasPrefix(address, "postgres://"), strings.HasPrefix(address, "postgresql://"):
		return &Address{Scheme: SchemePostgres, DSN: address}, nil

	case strings.HasPrefix(address, "consul://"):
		u, err := url.Parse(address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse address '%s': %w", address, errors.Join(ErrMalformedAddress, err))
		}
		return &Address{
			Scheme: SchemeConsul,
			Host:   u.Host,
			Path:   strings.Trim(u.Path, "/"),
			Token:  u.Query().Get("token"),
		}, nil

	case strings.HasPrefix(address, "s3://"), strings.HasPrefix(address, "minio://"):
		u, err := url.Parse(address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse address '%s': %w", address, errors.Join(ErrMalformedAddress, err))
		}
		bucket := strings.Trim(u.Path, "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
		}

		query := u.Query()
		ssl := false
		if value := query.Get("ssl"); value != "" {
			if ssl, err = strconv.ParseBool(value); err != nil {
				return nil, fmt.Errorf("failed to parse address '%s': %w", address, errors.Join(ErrMalformedAddress, err))
			}
		}
		return &Address{
			Scheme:    SchemeS3,
			Host:      u.Host,
			Path:      bucket,
			AccessKey: query.Get("access_key"),
			SecretKey: query.Get("secret_key"),
			Prefix:    query.Get("prefix"),
			SSL:       ssl,
		}, nil
	}

	return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrUnknownScheme)
}
