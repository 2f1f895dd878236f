/*
 * shardkeeper: hierarchical Shamir secret sharing over GF(2^8)
 * Copyright (C) 2024 The shardkeeper Authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package crypto provides the passphrase-based AEAD envelope that
// pkg/container optionally wraps around a version-1 share record: a
// ChaCha20-Poly1305 seal keyed by an Argon2id-derived key, so a share
// file can additionally require "something you know" on top of
// "something you hold" to be usable.
package crypto

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// SaltSize is the length, in bytes, of the random salt fed to Argon2id
// alongside the passphrase.
const SaltSize = 16

// Argon2id parameters. These are deliberately heavier than the 2018
// RFC-recommended minimums, since key derivation happens once per
// share open/seal, not on any hot path.
const (
	argonTime    = 8
	argonMemory  = 128 * 1024
	argonThreads = 4
)

func generateBytes(size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, errors.Wrap(err, "read random bytes")
	}
	return buf, nil
}

// GenerateSalt returns a fresh random salt suitable for DeriveKey.
func GenerateSalt() ([]byte, error) {
	return generateBytes(SaltSize)
}

// DeriveKey stretches passphrase into a chacha20poly1305 key using
// Argon2id, salted with salt. The same (passphrase, salt) pair always
// derives the same key, so salt must be stored alongside the sealed
// envelope.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

// Envelope is a sealed ChaCha20-Poly1305 AEAD message: Salt is the
// Argon2id salt used to derive the key from the caller's passphrase,
// Nonce is the AEAD nonce, and Ciphertext is the sealed payload
// (authentication tag included, per chacha20poly1305.Seal).
type Envelope struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Seal derives a key from passphrase and a fresh salt, then encrypts
// plaintext under that key with additionalData bound into the AEAD tag
// (so tampering with additionalData -- in pkg/container, the record's
// magic and version bytes -- is detected on Open even though it travels
// unencrypted).
func Seal(plaintext, passphrase, additionalData []byte) (Envelope, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Envelope{}, errors.Wrap(err, "generate salt")
	}
	key := DeriveKey(passphrase, salt)

	nonce, err := generateBytes(chacha20poly1305.NonceSize)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "generate nonce")
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "construct chacha20poly1305 aead")
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, additionalData)
	return Envelope{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}, nil
}

// Open derives the key from passphrase and env.Salt, then decrypts and
// authenticates env.Ciphertext against additionalData. An authentication
// failure (wrong passphrase, or any tampering with the ciphertext or
// additionalData) is reported as an opaque error, never distinguished
// from a wrong passphrase, per standard AEAD practice.
func Open(env Envelope, passphrase, additionalData []byte) ([]byte, error) {
	key := DeriveKey(passphrase, env.Salt)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "construct chacha20poly1305 aead")
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, additionalData)
	if err != nil {
		return nil, errors.Wrap(ErrBadPassphrase, err.Error())
	}
	return plaintext, nil
}

// ErrBadPassphrase is returned by Open when AEAD authentication fails.
var ErrBadPassphrase = errors.New("incorrect passphrase or corrupted envelope")
