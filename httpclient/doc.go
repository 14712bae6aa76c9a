// Package httpclient builds HTTP clients that authenticate through a
// tokenprovider.Provider.
//
// The Transport injects "Authorization: Bearer <token>" into every outgoing
// request, acquiring or refreshing the token as needed, and the Builder wraps
// it into a configured http.Client.
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithProvider(provider).
//	    WithTimeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com/data")
//
// # Notes
//
//   - Requests are cloned before the header is added; the caller's request is
//     never modified.
//   - TLS, proxies and connection pooling belong on the base transport passed
//     via WithBaseTransport.
package httpclient
