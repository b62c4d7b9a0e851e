// Package fedi defines the public API surface of the fedigo client for
// Mastodon-compatible servers: resource entities, the error taxonomy, the
// Link-header pagination engine, the streaming decoder and session, the
// response cache, and the Client interface implemented by the internal
// client.
//
// Create clients with the fediclient package:
//
//	client, err := fediclient.New(ctx, &fedi.Config{
//		Server:      "https://mastodon.example",
//		AccessToken: token,
//	})
//
// List endpoints return lazily-advancing pagers driven by the server's
// Link header:
//
//	pager := client.Timelines().Home(fedi.NewQueryParams().WithLimit(40))
//	for pager.HasNext() {
//		statuses, err := pager.Advance(ctx, nil)
//		...
//	}
//
// Streaming sessions fan decoded events out to named-event handlers and
// reconnect transparently:
//
//	session := client.Streaming().User()
//	session.On(fedi.EventUpdate, func(frame fedi.EventFrame) { ... })
//	err := session.Connect(ctx)
//	defer session.Close()
package fedi
