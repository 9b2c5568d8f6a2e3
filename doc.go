// Package dynmsg builds protobuf messages from untyped values using only the
// message descriptors available at runtime. No generated code is required.
//
// A [Registry] indexes the message descriptors of a FileDescriptorSet. A [Decoder]
// builds one [DecodeFunc] per message type. Building walks the message's fields once
// and captures a setter per field; the function is cached by message name, so
// decoding the same type again does not walk the schema again. Recursive message types
// are supported.
//
// The input is a [Source], usually a [Value] produced by one of the parser adapters
// in the source directory. The decoder pulls data out of the [Source] using
// functions like [Source.Int], [Source.String] and [Source.Get]:
//
//	reg, err := dynmsg.LoadRegistry(descriptorSetBytes)
//	decoders, err := dynmsg.BuildDecoders(reg)
//
//	value, err := jsonsource.Parse([]byte(`{"number": 1, "text": "foo"}`))
//	msg, err := decoders["fixture.MessageFixture"](value)
//
// Scalar fields (int32, int64, uint32, uint64, float, double, bool, string), nested
// messages and repeated fields of those are supported. Every field must be present
// in the input, a repeated field as an array. Keys without a field are ignored. Map, enum and bytes fields
// always fail with an [UnsupportedFieldKindError].
package dynmsg
