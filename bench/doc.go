// Package bench runs one measurement pass over a record set.
//
// A Pipeline encodes its record set with the requested encoding, then compresses the
// encoded payload with every codec of its compression suite. Each stage is timed and
// reported as a Sample to the configured Sink:
//
//	pipeline, err := bench.NewPipeline(set,
//	    bench.WithSink(sink),
//	    bench.WithCompressors(compress.DefaultSuite()...),
//	)
//	result, err := pipeline.Run(format.TypeBinary)
//	// result.Payload is the encoded, uncompressed payload.
//
// Compression is measured for observability only and never changes the payload. A codec
// that fails or panics is reported as an unavailable sample; the remaining codecs and
// the returned payload are unaffected. An encoder failure fails the run with an error
// wrapping ErrEncode.
//
// Samples reach the sink in a fixed order: the encode sample first, then one sample per
// codec in suite order, whether the codecs ran concurrently or not.
package bench
