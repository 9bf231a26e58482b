// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides JWT issuing/parsing and password hashing.

# Tokens

Tokens are HS256-signed JWTs carrying the user ID, username, and role:

	token, err := auth.CreateToken(secret, user.ID, user.Username, role, 24*time.Hour)
	claims, err := auth.ParseToken(secret, token)

ParseToken distinguishes expiry from every other failure: an expired
token returns ErrTokenExpired (mapped to 401 upstream), anything else
returns ErrTokenInvalid (mapped to 403). Each token carries a random
jti claim.

# Passwords

Passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)
*/
package auth
