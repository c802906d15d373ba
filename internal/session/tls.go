package session

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/nautica/battleship-zk/internal/env"
)

// ServerTLSConfig builds a *tls.Config for the listening side from cfg:
// it always presents ServerCert/ServerKey, requires TLS 1.2+, and trusts
// client certificates signed by CACert when a client certificate pair is
// configured, matching spec.md §4.4's "client certificates are optional
// and, if provided, validated".
func ServerTLSConfig(cfg *env.SessionConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.ServerCertPath, cfg.ServerKeyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: loading server certificate: %v", ErrTransport, err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.ClientCertPath != "" {
		pool, err := loadCAPool(cfg.CACertPath)
		if err != nil {
			return nil, err
		}
		tlsCfg.ClientCAs = pool
		tlsCfg.ClientAuth = tls.VerifyClientCertIfGiven
	}

	return tlsCfg, nil
}

// ClientTLSConfig builds a *tls.Config for the dialing side: it trusts
// CACert as the root of trust for the server's certificate, and presents
// a client certificate when ClientCert/ClientKey are configured.
func ClientTLSConfig(cfg *env.SessionConfig) (*tls.Config, error) {
	pool, err := loadCAPool(cfg.CACertPath)
	if err != nil {
		return nil, err
	}

	tlsCfg := &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: loading client certificate: %v", ErrTransport, err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return tlsCfg, nil
}

func loadCAPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading CA certificate: %v", ErrTransport, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: CA certificate file contains no usable certificates", ErrTransport)
	}
	return pool, nil
}
