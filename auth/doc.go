// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the credential check guarding admin operations.

# Authorizer

Protected operations (listing and erasing submissions) call an Authorizer
before touching storage:

	var a auth.Authorizer = auth.NewSharedSecret(cfg.AdminPassword)
	if err := a.Authorize(credential); err != nil {
		// err is auth.ErrUnauthorized
	}

Store code depends only on the interface, so the comparison strategy can be
swapped (AuthorizerFunc, an external identity provider) without touching it.

# Shared Secret

SharedSecret is the single static admin password. Both the configured
secret and the presented credential are hashed with SHA-256 and compared
with hmac.Equal, which keeps the comparison constant time regardless of
where the strings differ or how long they are.

An empty configured secret authorizes nobody, and an empty credential is
always rejected.

A single shared password is a weak scheme: it cannot be rotated per user
and anyone holding it has full admin access. It is kept because the quiz
front end only knows how to send one password.
*/
package auth
