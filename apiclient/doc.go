// Package apiclient is a base for typed clients of HTTP(S) web APIs that
// speak JSON or XML.
//
// A Client owns the root URL, the character encoding and the default
// content kind. Each call goes through the same pipeline:
//
//	validate -> serialize -> sign in (once) -> inject query credentials
//	  -> build *http.Request -> inject header credentials -> send
//	  -> status check -> decode
//
// Sign-in is lazy. The first call runs the Authenticator; concurrent first
// calls share that attempt, and calls the Authenticator itself makes
// through the same client pass through without credentials. A failed
// sign-in leaves the client signed out, so the next call tries again.
//
// Only 200 and 201 count as success. Any other status is returned as a
// transport *Error carrying the status code and the response body.
//
// # Usage
//
//	c, err := apiclient.New(apiclient.Config{RootURL: "https://api.example.com/"},
//	    apiclient.WithCredentials(&auth.Bearer{Token: token}))
//	if err != nil {
//	    return err
//	}
//	res, err := apiclient.Get[User](ctx, c, "/users/42")
//	// res.Data is a *User, nil for an empty body.
package apiclient
