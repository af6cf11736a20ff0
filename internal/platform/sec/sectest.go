// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTestKeyPair generates a throwaway RSA key pair in dir and returns the
// PEM file paths. It exists for tests in packages that need signed tokens.
func WriteTestKeyPair(dir string) (privateKeyPath, publicKeyPath string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", "", fmt.Errorf("sec: generate key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("sec: marshal public key: %w", err)
	}

	privateKeyPath = filepath.Join(dir, "jwt.key")
	publicKeyPath = filepath.Join(dir, "jwt.pub")

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	if err := os.WriteFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return "", "", fmt.Errorf("sec: write private key: %w", err)
	}
	if err := os.WriteFile(publicKeyPath, publicPEM, 0o644); err != nil {
		return "", "", fmt.Errorf("sec: write public key: %w", err)
	}

	return privateKeyPath, publicKeyPath, nil
}
