// Package auth provides credential strategies for apiclient.
//
// Static strategies (Bearer, Basic, APIKey) only inject. Session strategies
// (TokenExchange, FormLogin) sign in once through the client and then
// inject what the sign-in produced. QuerySigner and JWTAssertion compute
// fresh proof for every call.
//
//	creds := &auth.TokenExchange{
//	    Path:        "/oauth/token",
//	    Credentials: apiclient.Form(url.Values{"grant_type": {"client_credentials"}}),
//	}
//	client, err := apiclient.New(cfg, apiclient.WithCredentials(creds))
package auth
