// Arbitrarily encode and decode message body content.
/*
The encoding package holds the codec capabilities used by payload negotiation. A
ContentEngine maps a mimetype to an Encoder and a Decoder, so callers can hand it a
descriptor read from a message header and a value, and never call a format-specific
function directly.

Default Mimetypes

• application/octet-stream (protocol buffers)

• application/json

• application/bson

• application/msgpack

• application/cbor

• application/yaml

• text/plain

New formats are added once, with SetEncoder and SetDecoder, and every service that
shares the engine picks them up.
*/
package encoding
