package bootstrap

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/jt828/hello-metrics/pkg/snowflake"
	snowflakeImpl "github.com/jt828/hello-metrics/pkg/snowflake/implementation"
)

func InitializeSnowflake() (snowflake.Snowflake, error) {
	nodeID, err := PodNodeID()
	if err != nil {
		return nil, err
	}
	return snowflakeImpl.NewSnowflake(nodeID)
}

// PodNodeID derives a snowflake node ID in [0, 1023] from HOSTNAME, falling
// back to the kernel hostname when the variable is not exported.
func PodNodeID() (int64, error) {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		var err error
		if hostname, err = os.Hostname(); err != nil {
			return 0, fmt.Errorf("resolve hostname: %w", err)
		}
	}
	if hostname == "" {
		return 0, fmt.Errorf("hostname is empty")
	}

	h := fnv.New64a()
	h.Write([]byte(hostname))
	nodeID := int64(binary.BigEndian.Uint64(h.Sum(nil)) % 1024)

	return nodeID, nil
}
