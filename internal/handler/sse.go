package handler

import (
	"io"

	"github.com/gin-gonic/gin"
)

// streamSnapshots relays a live snapshot subscription over SSE. Each
// element received on ch is sent as one "snapshot" event. The
// subscription is always cancelled when the client goes away or the
// channel closes.
func streamSnapshots[T any](c *gin.Context, ch <-chan []T, cancel func()) {
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
