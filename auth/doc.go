// Copyright (c) 2025 Rafael Maffei.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, bearer tokens, and ID generation.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Bearer Tokens

Tokens are HS256-signed JWTs carrying the user id, email, and role:

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, secret, 24*time.Hour)
	claims, err := auth.VerifyToken(token, secret)

VerifyToken rejects unexpected signing methods and returns ErrExpiredToken
for expired tokens so callers can distinguish them from malformed ones.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
