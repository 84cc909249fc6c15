// Content negotiated payloads for HTTP handlers.
/*
A Payload holds a value together with the representation it travelled in, or will
travel in: protocol buffers under "application/octet-stream", or JSON under
"application/json". Those are the only two descriptors recognized, and they are
compared exactly.

Reading

Decode reads the request's Content-Type, picks the matching codec, and returns the
value tagged with that representation. A missing or unrecognized Content-Type, or a
body that does not parse, is rejected with a single generic RequestValidationError
(HTTP 400). The cause is kept as the wrapped error and logged at debug level, but it
never reaches the client.

Writing

Render writes a payload with the codec matching its tag and sets Content-Type to the
matching descriptor. Responses usually follow the client's Accept header:

	response := payload.FromAcceptHeader(message, request.Header)
	err := payload.Render(negotiator, writer, response)

FromAcceptHeader never fails. It only picks protocol buffers when Accept is exactly
"application/octet-stream", and falls back to JSON otherwise.

Both directions require the value type to be a proto.Message, which is checked at
compile time by the type parameters of Decode and Render.
*/
package payload
