// Package client provides the plugin side of the session protocol.
//
// A Client multiplexes calls over one connection: each request carries a
// fresh id and a single reader goroutine routes responses back to the
// waiting caller. Calls are safe for concurrent use and honor their
// context.
//
//	c, err := client.Dial(ctx, "localhost:9140")
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	cs, err := c.GetConfigSpec(ctx, "my-project")
//
// Errors returned by the host are *api.Error values and can be matched with
// errors.Is against the api sentinels, for instance api.ErrNotFound.
package client
