package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewAccessToken generates an opaque bearer token as a KSUID string.
func NewAccessToken() string {
	return ksuid.New().String()
}

// NewRecordID generates a snowflake ID string. The node is created once, from
// the SNOWFLAKE_NODE environment variable (default 1), and reused so the
// per-millisecond sequence counter keeps IDs unique under rapid generation.
// If the node cannot be initialized, every call falls back to a KSUID string.
func NewRecordID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			return
		}
		node = n
	})
	if node == nil {
		return ksuid.New().String()
	}
	return node.Generate().String()
}
