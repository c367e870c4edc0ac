// Package meta is the metadata layer expression trees refer to: method, property and
// indexer descriptors declared on class types, plus the lookup table the accessor
// normalizer resolves them through.
//
// Descriptors are immutable once created and are compared by pointer identity: the
// getter stored on a Property is the very *Method a call node carries when the call
// was built from that property.
//
// A Table is built single-threaded (Declare*, Add*), then sealed. A sealed table is
// read-only and safe for concurrent lookups.
//
// Tables are usually built from a TOML schema file:
//
//	schema = "1.0.0"
//
//	[[type]]
//	name = "Widget"
//
//	  [[type.property]]
//	  name = "Name"
//	  type = "string"
//
//	  [[type.indexer]]
//	  type = "string"
//	  params = ["int"]
//
//	  [[type.method]]
//	  name = "Resize"
//	  params = ["int", "int"]
//	  returns = "void"
package meta
