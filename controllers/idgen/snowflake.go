package idgen

import (
	"log"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

func Init() {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			log.Fatalf("Failed to init Snowflake: %v", err)
		}
	})
}

// GenerateSerial returns a new snowflake id in the string form stamped on
// every item unit at receipt.
func GenerateSerial() string {
	Init()
	return node.Generate().String()
}
