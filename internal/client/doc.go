// ABOUTME: Package documentation for the client facade
// ABOUTME: Describes composition and the typical call sequence

// Package client assembles the access layer for a conversational
// messaging deployment.
//
// # Usage
//
//	c, err := client.New(config.Config{
//		BaseURL:       "https://example.my.salesforce-scrt.com",
//		OrgID:         "00Dxx0000000001",
//		DeveloperName: "Embedded_Messaging",
//	}, client.WithLogger(logger))
//
//	tok, err := c.Token.Create(ctx, token.CreateParams{})
//	convID, err := c.Conversation.Create(ctx, tok.AccessToken, nil)
//	conn, err := c.Stream.CreateStream(ctx, tok.AccessToken, stream.Options{
//		LastEventID: tok.LastEventID,
//		OnEvent:     handleEvent,
//	})
//
// # Ordering and concurrency
//
// Operations issued concurrently against the same conversation are not
// serialized by this layer; await each call before issuing the next if
// ordering matters. Nothing is retried internally and no token or
// conversation state is cached — callers own both.
package client
