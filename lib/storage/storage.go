// Package storage persists certificate and node information in a
// SQLite database under the configured working directory.
package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/gravitational/trace"
	_ "github.com/mattn/go-sqlite3"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/edgefleet/fleetiam"
	"github.com/edgefleet/fleetiam/api/iamv5"
	"github.com/edgefleet/fleetiam/lib/config"
)

const dbFileName = "iam.db"

// Storage is a SQLite backed store for certificate info and node info
// records.
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens (creating if needed) the database under
// cfg.WorkingDir. Schema bootstrap is automatic; the migration
// directories in cfg are accepted for compatibility and not consumed
// here.
func New(cfg config.DatabaseConfig) (*Storage, error) {
	if cfg.WorkingDir == "" {
		return nil, trace.BadParameter("missing database working dir")
	}

	if err := os.MkdirAll(cfg.WorkingDir, 0o700); err != nil {
		return nil, trace.ConvertSystemError(err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.WorkingDir, dbFileName))
	if err != nil {
		return nil, trace.Wrap(err)
	}

	s := &Storage{
		db:  db,
		log: slog.With(fleetiam.ComponentKey, fleetiam.ComponentStorage),
	}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, trace.Wrap(err)
	}

	if cfg.Migration.MigrationPath != "" {
		s.log.Debug("Migration directory configured", "path", cfg.Migration.MigrationPath)
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return trace.Wrap(s.db.Close())
}

func (s *Storage) createTables() error {
	const schema = `
CREATE TABLE IF NOT EXISTS certificates (
	type TEXT NOT NULL,
	issuer BLOB NOT NULL,
	serial TEXT NOT NULL,
	certURL TEXT,
	keyURL TEXT,
	notAfter INTEGER,
	PRIMARY KEY (issuer, serial));
CREATE TABLE IF NOT EXISTS nodes (
	id TEXT NOT NULL PRIMARY KEY,
	info BLOB NOT NULL);`

	_, err := s.db.Exec(schema)
	return trace.Wrap(err)
}

// AddCertInfo inserts a certificate record of the given type.
func (s *Storage) AddCertInfo(certType string, cert *iamv5.CertInfo) error {
	var notAfter int64
	if cert.GetNotAfter() != nil {
		notAfter = cert.GetNotAfter().AsTime().UnixNano()
	}

	_, err := s.db.Exec(
		"INSERT INTO certificates (type, issuer, serial, certURL, keyURL, notAfter) VALUES (?, ?, ?, ?, ?, ?)",
		certType, cert.GetIssuer(), cert.GetSerial(), cert.GetCertUrl(), cert.GetKeyUrl(), notAfter)
	return trace.Wrap(err)
}

// RemoveCertInfo removes the certificate of the given type stored at
// certURL.
func (s *Storage) RemoveCertInfo(certType, certURL string) error {
	_, err := s.db.Exec("DELETE FROM certificates WHERE type = ? AND certURL = ?", certType, certURL)
	return trace.Wrap(err)
}

// RemoveAllCertsInfo removes all certificates of the given type.
func (s *Storage) RemoveAllCertsInfo(certType string) error {
	_, err := s.db.Exec("DELETE FROM certificates WHERE type = ?", certType)
	return trace.Wrap(err)
}

// GetCertInfo looks a certificate up by issuer and serial.
func (s *Storage) GetCertInfo(issuer []byte, serial string) (*iamv5.CertInfo, error) {
	row := s.db.QueryRow(
		"SELECT type, issuer, serial, certURL, keyURL, notAfter FROM certificates WHERE issuer = ? AND serial = ?",
		issuer, serial)

	cert, err := scanCertInfo(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, trace.NotFound("certificate with serial %q is not found", serial)
		}
		return nil, trace.Wrap(err)
	}

	return cert, nil
}

// GetCertsInfo returns all certificates of the given type.
func (s *Storage) GetCertsInfo(certType string) ([]*iamv5.CertInfo, error) {
	rows, err := s.db.Query(
		"SELECT type, issuer, serial, certURL, keyURL, notAfter FROM certificates WHERE type = ?", certType)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer rows.Close()

	var certs []*iamv5.CertInfo
	for rows.Next() {
		cert, err := scanCertInfo(rows)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		certs = append(certs, cert)
	}

	return certs, trace.Wrap(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertInfo(row rowScanner) (*iamv5.CertInfo, error) {
	var (
		cert     iamv5.CertInfo
		notAfter int64
	)
	if err := row.Scan(&cert.Type, &cert.Issuer, &cert.Serial, &cert.CertUrl, &cert.KeyUrl, &notAfter); err != nil {
		return nil, err
	}
	if notAfter != 0 {
		cert.NotAfter = timestamppb.New(time.Unix(0, notAfter))
	}

	return &cert, nil
}

// SetNodeInfo inserts or replaces the stored info of a node.
func (s *Storage) SetNodeInfo(info *iamv5.NodeInfo) error {
	if info.GetNodeId() == "" {
		return trace.BadParameter("missing node ID")
	}

	data, err := proto.Marshal(info)
	if err != nil {
		return trace.Wrap(err)
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO nodes (id, info) VALUES (?, ?)", info.GetNodeId(), data)
	return trace.Wrap(err)
}

// GetNodeInfo returns the stored info of a node.
func (s *Storage) GetNodeInfo(nodeID string) (*iamv5.NodeInfo, error) {
	var data []byte
	if err := s.db.QueryRow("SELECT info FROM nodes WHERE id = ?", nodeID).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, trace.NotFound("node %q is not found", nodeID)
		}
		return nil, trace.Wrap(err)
	}

	var info iamv5.NodeInfo
	if err := proto.Unmarshal(data, &info); err != nil {
		return nil, trace.Wrap(err)
	}

	return &info, nil
}

// GetAllNodeInfos returns the stored info of every known node.
func (s *Storage) GetAllNodeInfos() ([]*iamv5.NodeInfo, error) {
	rows, err := s.db.Query("SELECT info FROM nodes ORDER BY id")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer rows.Close()

	var infos []*iamv5.NodeInfo
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, trace.Wrap(err)
		}

		var info iamv5.NodeInfo
		if err := proto.Unmarshal(data, &info); err != nil {
			return nil, trace.Wrap(err)
		}
		infos = append(infos, &info)
	}

	return infos, trace.Wrap(rows.Err())
}

// RemoveNodeInfo removes the stored info of a node.
func (s *Storage) RemoveNodeInfo(nodeID string) error {
	result, err := s.db.Exec("DELETE FROM nodes WHERE id = ?", nodeID)
	if err != nil {
		return trace.Wrap(err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return trace.NotFound("node %q is not found", nodeID)
	}

	return nil
}
