// Package fediclient provides the primary entry point for constructing a
// client for a Mastodon-compatible server that implements the fedi.Client
// interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the fedi package. Most
// applications should import fediclient to build a client, then use the
// returned fedi.Client to access resource-specific clients, for example
// Timelines(), Statuses(), Streaming(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fedikit/fedigo/pkg/fedi"
//	  "github.com/fedikit/fedigo/pkg/fediclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just a server (no auth, public endpoints only).
//	  cli, err := fediclient.New(ctx, &fedi.Config{Server: "https://mastodon.example"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = fediclient.New(ctx, &fedi.Config{
//	    Server:      "https://mastodon.example",
//	    AccessToken: "eyJhbGciOi...", // bearer token
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Walk the home timeline page by page.
//	  pager := cli.Timelines().Home(fedi.NewQueryParams().WithLimit(40))
//	  statuses, err := pager.Advance(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = statuses
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithServer,
// NewWithToken, NewWithPassword, and NewWithClientCredentials that wrap New
// with the appropriate configuration.
package fediclient
