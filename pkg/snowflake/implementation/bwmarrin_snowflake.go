package implementation

import (
	"fmt"

	bwmarrin "github.com/bwmarrin/snowflake"
	"github.com/jt828/hello-metrics/pkg/snowflake"
)

type bwmarrinSnowflake struct {
	node *bwmarrin.Node
}

func NewSnowflake(nodeID int64) (snowflake.Snowflake, error) {
	node, err := bwmarrin.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &bwmarrinSnowflake{node: node}, nil
}

func (s *bwmarrinSnowflake) GenerateString() string {
	return s.node.Generate().Base32()
}
