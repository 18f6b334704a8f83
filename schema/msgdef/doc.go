// Package msgdef parses ROS 2 message definitions (.msg files).
//
// Each non-empty line declares a field or a constant:
//
//	# leading comments document the message
//	int32 count 5           # field with a default
//	string<=16 label "none"
//	float64[3] position
//	geometry_msgs/Point[] path
//	uint8 MODE_IDLE=0       # constant
//
// Supported types are the primitives bool, byte, char, float32, float64,
// int8..uint64, string and wstring, bounded strings (string<=N), and
// references to other messages, either in the same package (Point) or
// qualified (geometry_msgs/Point). Any type may carry an array suffix: [N]
// for a fixed array, [] for an unbounded sequence, [<=N] for a bounded one.
//
// Referenced messages are resolved through a Resolver, which lets a loader
// read dependencies on demand.
package msgdef
