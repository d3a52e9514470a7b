// Package auth resolves request credentials into an Identity.
//
// The settings service does not log users in. It only verifies credentials issued
// elsewhere and turns them into an opaque token identifier that is looked up in the
// users table by the settings core. Supported credentials:
//   - OIDC ID tokens, verified against the issuer's published keys
//   - HS256 JWTs minted by first-party backends sharing a secret
//   - Local API keys issued by the CLI and checked against an Argon2id hash
//   - LDAP username and password through HTTP basic auth
//
// Providers are tried in order by Service. A credential no provider accepts resolves
// to no identity, which the settings core reports as unauthenticated.
//
// Example usage:
//
//	jwtProvider, err := auth.NewJWTProvider(&cfg.Auth.JWT)
//	service := auth.NewService(nil, jwtProvider, auth.NewLocalProvider(db))
//
//	app.Use(auth.Middleware(service))
//
//	app.Put("/api/settings/:key", func(c fiber.Ctx) error {
//	    identity := auth.FromContext(c)
//	    ...
//	})
package auth
