// Package tlsutil loads gRPC transport credentials and mints development
// certificates.
package tlsutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc/credentials"
)

// File names written by GenerateDevCertificates.
const (
	CAFile        = "ca.pem"
	CAKeyFile     = "ca-key.pem"
	ServerFile    = "server.pem"
	ServerKeyFile = "server-key.pem"
	ClientFile    = "client.pem"
	ClientKeyFile = "client-key.pem"
)

// ServerTLSConfig loads TLS credentials for a gRPC server from cert and key files.
// A non-empty clientCAFile requires every client to present a certificate
// signed by that CA.
func ServerTLSConfig(certFile, keyFile, clientCAFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if clientCAFile != "" {
		pool, err := loadCertPool(clientCAFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.ClientCAs = pool
		tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return credentials.NewTLS(tlsCfg), nil
}

// ClientOptions selects the files a gRPC client trusts and presents.
// An empty CAFile falls back to the system pool. CertFile and KeyFile are
// set together when the server requires mutual TLS.
type ClientOptions struct {
	CAFile             string
	CertFile           string
	KeyFile            string
	InsecureSkipVerify bool
}

// Configured reports whether any TLS file or flag was set.
func (o ClientOptions) Configured() bool {
	return o.CAFile != "" || o.CertFile != "" || o.KeyFile != "" || o.InsecureSkipVerify
}

// ClientTLSConfig loads TLS credentials for a gRPC client.
func ClientTLSConfig(opts ClientOptions) (credentials.TransportCredentials, error) {
	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // opt-in for development
	}

	if opts.CAFile != "" {
		pool, err := loadCertPool(opts.CAFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.RootCAs = pool
	}

	switch {
	case opts.CertFile != "" && opts.KeyFile != "":
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: load client key pair: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	case opts.CertFile != "" || opts.KeyFile != "":
		return nil, errors.New("tlsutil: client certificate and key must be set together")
	}

	return credentials.NewTLS(tlsCfg), nil
}

func loadCertPool(caFile string) (*x509.CertPool, error) {
	caPEM, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("tlsutil: no certificate found in %s", caFile)
	}
	return pool, nil
}

// GenerateDevCertificates writes a development CA plus a server certificate
// for hosts and a client certificate named clientName, both signed by the CA.
// See the *File constants for the names written to outDir.
func GenerateDevCertificates(hosts []string, clientName, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("tlsutil: mkdir %s: %w", outDir, err)
	}

	now := time.Now()
	ca, err := issue(&x509.Certificate{
		Subject:               pkix.Name{Organization: []string{"Decision Engine Dev CA"}},
		NotBefore:             now,
		NotAfter:              now.AddDate(10, 0, 0),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}, nil)
	if err != nil {
		return fmt.Errorf("tlsutil: issue CA: %w", err)
	}

	server := &x509.Certificate{
		Subject:     pkix.Name{Organization: []string{"Decision Engine Dev"}, CommonName: "engined"},
		NotBefore:   now,
		NotAfter:    now.AddDate(1, 0, 0),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			server.IPAddresses = append(server.IPAddresses, ip)
		} else {
			server.DNSNames = append(server.DNSNames, h)
		}
	}
	serverPair, err := issue(server, ca)
	if err != nil {
		return fmt.Errorf("tlsutil: issue server certificate: %w", err)
	}

	clientPair, err := issue(&x509.Certificate{
		Subject:     pkix.Name{Organization: []string{"Decision Engine Dev"}, CommonName: clientName},
		NotBefore:   now,
		NotAfter:    now.AddDate(1, 0, 0),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}, ca)
	if err != nil {
		return fmt.Errorf("tlsutil: issue client certificate: %w", err)
	}

	for _, out := range []struct {
		pair          *keyPair
		cert, keyFile string
	}{
		{ca, CAFile, CAKeyFile},
		{serverPair, ServerFile, ServerKeyFile},
		{clientPair, ClientFile, ClientKeyFile},
	} {
		if err := out.pair.write(filepath.Join(outDir, out.cert), filepath.Join(outDir, out.keyFile)); err != nil {
			return err
		}
	}
	return nil
}

type keyPair struct {
	cert *x509.Certificate
	der  []byte
	key  *ecdsa.PrivateKey
}

// issue signs template with parent, or self-signs when parent is nil.
func issue(template *x509.Certificate, parent *keyPair) (*keyPair, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	template.SerialNumber, err = rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("generate serial: %w", err)
	}

	signer, signerKey := template, key
	if parent != nil {
		signer, signerKey = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, template, signer, &key.PublicKey, signerKey)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	return &keyPair{cert: cert, der: der, key: key}, nil
}

func (p *keyPair) write(certPath, keyPath string) error {
	keyDER, err := x509.MarshalECPrivateKey(p.key)
	if err != nil {
		return fmt.Errorf("tlsutil: marshal key for %s: %w", certPath, err)
	}
	if err := os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: p.der}), 0o644); err != nil {
		return fmt.Errorf("tlsutil: write %s: %w", certPath, err)
	}
	if err := os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600); err != nil {
		return fmt.Errorf("tlsutil: write %s: %w", keyPath, err)
	}
	return nil
}
