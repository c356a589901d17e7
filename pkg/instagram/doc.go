// Package instagram is the client for Instagram's web, GraphQL and private
// mobile endpoints.
//
// Every operation follows the same pattern: build the session headers,
// issue the request, classify the response (404 becomes a NotFoundError,
// any other non-2xx a RequestError) and hydrate the payload into model
// entities, paginating where the endpoint is a listing.
//
// Example usage:
//
//	cfg, _ := config.Load("", nil)
//	client, err := instagram.NewClient(cfg, logger.GetLogger())
//	if err != nil {
//	    return err
//	}
//
//	account, err := client.GetAccount(ctx, "kevin")
//	if errors.IsNotFound(err) {
//	    // no such account
//	}
//
//	medias, err := client.GetMediasByTag(ctx, "youneverknow", 20, "", 0)
package instagram
