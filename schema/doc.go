// Package schema loads message definitions from disk into a registry.
//
// A Loader reads ROS 2 .msg files and IEC 61499 .dtp files, resolving type
// references on demand by searching its source directories. Dependencies are
// registered before the types that use them.
//
// A reference pkg/Type is looked up as, in each directory:
//
//	<dir>/<pkg>/msg/<Type>.msg
//	<dir>/<Type>.msg
//	<dir>/<Type>.dtp
//
// Data types named ROS2_<pkg>_msg_<Type>, the form used when ROS messages
// are exported to IEC 61499 tools, resolve to the matching .msg file.
//
// A Loader is not safe for concurrent use. Freeze the registry once loading
// is done to share it between goroutines.
package schema
