/*
Error model shared by services and clients that exchange negotiated payloads.

This package defines two main objects for handling errors:

• SpanErrorType defines an error type: a name, an API code and an HTTP status.

• SpanError is an instance of an error which carries a SpanErrorType.

A SpanError can be written to response headers with ToHeader and rebuilt on the
client side with ErrorFromHeaders. Bodies are never used for errors, so a failed
request never has to be decoded in a representation the client did not ask for.
*/
package spanerrors
