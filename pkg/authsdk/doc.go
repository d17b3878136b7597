// Package authsdk is the client side of the authorization server. Services
// that call protected resources embed a TokenSource, which acquires tokens
// under the client_credentials grant, caches them until near expiry, and
// hands out the bearer string to attach to outgoing requests.
package authsdk
