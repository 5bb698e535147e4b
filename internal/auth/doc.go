// Package auth implements accounts and sessions for the marketplace.
//
// Passwords are hashed with bcrypt. A successful login issues a signed,
// time-limited token (HS256) whose subject is the user id, and the token
// travels in an HttpOnly cookie. Tokens are stateless: logout only clears
// the cookie, and a token stays valid until it expires.
//
// # Configuration
//
//	AUTH_TOKEN_SECRET=<hex>        # Required in production, generated otherwise
//	AUTH_TOKEN_TTL=168h            # Token and cookie lifetime
//	AUTH_BCRYPT_COST=10            # bcrypt cost factor
//	AUTH_COOKIE_NAME=token
//	AUTH_COOKIE_SAMESITE=none      # none | lax | strict
//	AUTH_SECURE_COOKIES=true       # Defaults to true in production
//
// SameSite=None lets a frontend on another origin send the cookie, but
// browsers only accept it together with Secure, so over plain HTTP in
// development use AUTH_COOKIE_SAMESITE=lax.
//
// # Usage
//
//	tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
//	cookie := auth.NewSessionCookie(cfg.Auth, tokens.TTL())
//	guard := auth.NewGuard(cookie, tokens, usersRepo)
//	service := auth.NewService(usersRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
//
// Protected routes run behind the guard:
//
//	router.GET("/user/me", guard.Handler(), handler)
//	userID := auth.GetUserID(c)
package auth
