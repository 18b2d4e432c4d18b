// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResetTokenBytes is the number of random bytes appended to a reset token.
const ResetTokenBytes = 16

// GenerateResetToken returns an opaque single-use token for password resets.
// The UUID prefix keeps tokens unique across restarts; the random suffix
// makes them unguessable even if the UUID source were predictable.
func GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + hex.EncodeToString(buf), nil
}
