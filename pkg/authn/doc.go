// Package authn verifies identity token signatures before their claims are
// trusted for authorization.
//
// Package tokens can read a token's claims without the secret; this
// package is the side that holds the secret and rejects anything forged,
// tampered with or expired. Mount the middleware on the routes that need
// an authenticated user:
//
//	verifier := authn.NewVerifier(secret, tokens.SystemClock(), logger)
//
//	r := mux.NewRouter()
//	api := r.PathPrefix("/api").Subrouter()
//	api.Use(verifier.Middleware())
//	api.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
//	    identity, _ := authn.IdentityFromContext(r.Context())
//	    fmt.Fprintf(w, "hello %s", identity.Subject)
//	})
package authn
